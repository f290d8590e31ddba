package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/RajSapale04/Meditrack/internal/auth"
	"github.com/RajSapale04/Meditrack/internal/config"
	"github.com/RajSapale04/Meditrack/internal/handler"
	"github.com/RajSapale04/Meditrack/internal/middleware"
	"github.com/RajSapale04/Meditrack/internal/oauth"
	"github.com/RajSapale04/Meditrack/internal/store"
	ws "github.com/RajSapale04/Meditrack/internal/websocket"
	"github.com/go-chi/cors"
)

type Server struct {
	cfg           config.Config
	hub           *ws.Hub
	tokens        *auth.Tokens
	userStore     *store.UserStore
	authH         *handler.AuthHandler
	profileH      *handler.ProfileHandler
	medicationH   *handler.MedicationHandler
	doctorH       *handler.DoctorHandler
	prescriptionH *handler.PrescriptionHandler
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	tokens := auth.NewTokens(cfg.JWTSecret)

	userStore := store.NewUserStore(db)
	profileStore := store.NewProfileStore(db)
	medicationStore := store.NewMedicationStore(db)
	doctorStore := store.NewDoctorStore(db)
	prescriptionStore := store.NewPrescriptionStore(db)

	var google *oauth.Google
	if cfg.GoogleEnabled() {
		google = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL)
	} else {
		logger.Warn("google login disabled: client id/secret not configured")
	}

	return &Server{
		cfg:           cfg,
		hub:           hub,
		tokens:        tokens,
		userStore:     userStore,
		authH:         handler.NewAuthHandler(userStore, tokens, google, cfg.ClientURL, cfg.Production(), logger.With("component", "auth")),
		profileH:      handler.NewProfileHandler(profileStore, hub, logger.With("component", "profile")),
		medicationH:   handler.NewMedicationHandler(medicationStore, profileStore, doctorStore, hub, logger.With("component", "medication")),
		doctorH:       handler.NewDoctorHandler(doctorStore, hub, logger.With("component", "doctor")),
		prescriptionH: handler.NewPrescriptionHandler(prescriptionStore, profileStore, hub, logger.With("component", "prescription")),
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /auth/google", s.authH.GoogleRedirect)
	outerMux.HandleFunc("GET /auth/google/callback", s.authH.GoogleCallback)
	outerMux.HandleFunc("POST /auth/logout", s.authH.Logout)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens, s.userStore, s.logger.With("component", "auth_middleware"))
	outerMux.Handle("/", authMiddleware(protectedMux))

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	return middleware.RequestLogger(s.logger.With("component", "http"))(corsMiddleware(outerMux))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /auth/me", s.authH.Me)

	// Profile API routes
	mux.HandleFunc("GET /profiles", s.profileH.List)
	mux.HandleFunc("POST /profiles", s.profileH.Create)
	mux.HandleFunc("GET /profiles/{id}", s.profileH.Get)
	mux.HandleFunc("PUT /profiles/{id}", s.profileH.Update)
	mux.HandleFunc("DELETE /profiles/{id}", s.profileH.Delete)

	// Medication API routes (nested under the owning profile for list/create)
	mux.HandleFunc("GET /profiles/{id}/medications", s.medicationH.ListByProfile)
	mux.HandleFunc("POST /profiles/{id}/medications", s.medicationH.Create)
	mux.HandleFunc("GET /medications/{id}", s.medicationH.Get)
	mux.HandleFunc("PUT /medications/{id}", s.medicationH.Update)
	mux.HandleFunc("DELETE /medications/{id}", s.medicationH.Delete)

	// Doctor API routes
	mux.HandleFunc("GET /doctors", s.doctorH.List)
	mux.HandleFunc("POST /doctors", s.doctorH.Create)
	mux.HandleFunc("GET /doctors/{id}", s.doctorH.Get)
	mux.HandleFunc("PUT /doctors/{id}", s.doctorH.Update)
	mux.HandleFunc("DELETE /doctors/{id}", s.doctorH.Delete)

	// Prescription API routes — create and delete only, records are immutable
	mux.HandleFunc("GET /profiles/{id}/prescriptions", s.prescriptionH.ListByProfile)
	mux.HandleFunc("POST /profiles/{id}/prescriptions", s.prescriptionH.Create)
	mux.HandleFunc("GET /prescriptions/{id}", s.prescriptionH.Get)
	mux.HandleFunc("DELETE /prescriptions/{id}", s.prescriptionH.Delete)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.cfg.ClientURL))
}
