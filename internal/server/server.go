// Package server provides the HTTP server setup for go-imagepdf.
//
// NewServer creates and configures the HTTP server, the session manager and
// the PDF generator.
//
// Expected outputs:
// - Server listens on the configured port (default 8080)
// - Expired sessions are dropped periodically
//
// Usage:
//
//	server := server.NewServer(config.Load())
//	server.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"go-imagepdf/internal/config"
	"go-imagepdf/internal/intake"
	"go-imagepdf/internal/pdf"
	"go-imagepdf/internal/session"
)

type Server struct {
	port           int
	SessionManager *session.SessionManager
	Generator      *pdf.Generator
	Validator      intake.Validator
}

func NewServer(cfg config.Config) *http.Server {
	srv := &Server{
		port:           cfg.Port,
		SessionManager: session.NewSessionManager(),
		Generator:      pdf.NewGenerator(),
		Validator:      intake.NewValidator(cfg.MaxImageSize),
	}

	// Cleanup goroutine for expired sessions
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n := srv.SessionManager.Expire(cfg.SessionTTL); n > 0 {
				log.Printf("Expired %d sessions, %d active", n, srv.SessionManager.Len())
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	return server
}
