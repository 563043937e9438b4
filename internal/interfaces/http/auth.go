package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fintrack/internal/domain/user"
	"fintrack/internal/shared/auth"
)

// invalidCredentials is the only message a failed login ever produces.
// Unknown email and wrong password are indistinguishable to the caller.
const invalidCredentials = "invalid email or password"

type AuthHandler struct {
	userRepo user.Repository
	codec    auth.TokenCodec
}

func NewAuthHandler(userRepo user.Repository, codec auth.TokenCodec) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		codec:    codec,
	}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleSignup registers a new account. The password is hashed before it
// ever reaches the store; no session is started here, matching the
// signup-then-login flow.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password during signup: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	u, err := h.userRepo.Create(r.Context(), user.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, user.ErrEmailTaken) {
		respondError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		log.Printf("Error creating user: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	respondJSON(w, http.StatusCreated, u)
}

// HandleLogin authenticates with email and password, mints a session
// token and sets it as an HttpOnly cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			log.Printf("Error fetching user at login: %v", err)
		}
		respondError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	token, err := h.codec.Issue(u.ID, u.Email)
	if err != nil {
		log.Printf("Error issuing token for user %d: %v", u.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	setAuthCookie(w, r, token)
	respondJSON(w, http.StatusOK, AuthResponse{Token: token, User: u})
}

// HandleLogout clears the session cookie. Tokens are not tracked server
// side, so discarding the client's copy is the whole logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	clearAuthCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// HandleResetPassword replaces the credential for the given email. The
// response does not reveal whether the email was registered.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "email and newPassword are required")
		return
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("Error hashing password during reset: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	err = h.userRepo.UpdatePassword(r.Context(), req.Email, passwordHash)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		log.Printf("Error updating password: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setAuthCookie sets the session token as an HttpOnly cookie. Its
// lifetime matches the token's validity window.
func setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	// Only set Secure flag when actually using HTTPS
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.TokenTTL.Seconds()),
	})
}

func clearAuthCookie(w http.ResponseWriter, r *http.Request) {
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
