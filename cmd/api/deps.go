package main

import (
	"log"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/infrastructure/postgres"
	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler   *httphandlers.AuthHandler
	UserHandler   *httphandlers.UserHandler
	LedgerHandler *httphandlers.LedgerHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)

	// Initialize domain services
	ledgerService := ledger.NewService(ledgerRepo)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt)
	userHandler := httphandlers.NewUserHandler(userRepo)
	ledgerHandler := httphandlers.NewLedgerHandler(ledgerService)

	return &Dependencies{
		DB:            db,
		AuthHandler:   authHandler,
		UserHandler:   userHandler,
		LedgerHandler: ledgerHandler,
		JWT:           jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
