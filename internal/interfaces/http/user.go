package http

import (
	"log"
	"net/http"

	"fintrack/internal/domain/user"
	"fintrack/internal/shared/middleware"
)

type UserHandler struct {
	userRepo user.Repository
}

func NewUserHandler(userRepo user.Repository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// HandleMe returns the authenticated account's profile.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), accountID)
	if err != nil {
		log.Printf("Error fetching user %d: %v", accountID, err)
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondJSON(w, http.StatusOK, u)
}
