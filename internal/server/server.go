package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	adminapp "github.com/sngm3741/smartform-services/api/internal/admin/application"
	"github.com/sngm3741/smartform-services/api/internal/config"
	googleinfra "github.com/sngm3741/smartform-services/api/internal/infrastructure/google"
	mongodoc "github.com/sngm3741/smartform-services/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/smartform-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/smartform-services/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/smartform-services/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/smartform-services/api/internal/public/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server is the composition root: it owns the HTTP lifecycle and injects
// application services into the public and admin handler sets.
type Server struct {
	logger            *log.Logger
	client            *mongo.Client
	database          *mongo.Database
	forms             *mongo.Collection
	submissions       *mongo.Collection
	formQueries       publicapp.FormQueryService
	submissionService publicapp.SubmissionService
	adminFormService  adminapp.FormService
	jwtConfigs        []config.JWTConfig
	jwtAudience       string
	publicBaseURL     string
	addr              string
	allowedOrigins    []string
}

type authenticatedUser = commonhttp.AuthenticatedUser

// Run starts the HTTP server and assembles routing and middleware. Only
// infrastructure setup lives here; domain logic stays in the inner layers.
func (s *Server) Run() error {
	if err := s.ensureIndexes(context.Background()); err != nil {
		s.logger.Printf("failed to ensure indexes: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:        s.logger,
		Forms:         s.formQueries,
		Submissions:   s.submissionService,
		PublicBaseURL: s.publicBaseURL,
	})
	publicHandler.Register(router)
	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:        s.logger,
		FormService:   s.adminFormService,
		PublicBaseURL: s.publicBaseURL,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS returns a middleware applying CORS headers for allowed origins.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler answers monitoring probes with the MongoDB connection state.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware verifies the bearer JWT and stores the authenticated user
// on the request context. Admin routes all run behind it.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Bearer token is required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "access token is empty"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := authenticatedUser{
			ID:       claims.Subject,
			Name:     claims.Name,
			Username: claims.PreferredUsername,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken tries each configured JWT issuer in turn, checking the
// signature plus issuer and audience consistency.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, fmt.Errorf("authentication is not configured")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}

		now := time.Now()
		if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
			continue
		}
		if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, fmt.Errorf("access token is invalid")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// ensureIndexes keeps slug lookups and per-form submission queries fast, and
// guards slug uniqueness at the storage level.
func (s *Server) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.forms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shareSlug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "formId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// writeJSON centralizes JSON response writing for server-level handlers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("failed to encode JSON response: %v", err)
	}
}

// shutdown disconnects the MongoDB client with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("error disconnecting MongoDB: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals for a graceful stop.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server exited abnormally: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("error during server shutdown: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New wires repositories, Google clients and application services into a
// ready-to-run Server. Google clients are constructed once at startup and
// shared by every request.
func New(cfg config.Config, client *mongo.Client, sheets *googleinfra.SheetsClient, drive *googleinfra.DriveStore) *Server {
	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		publicBaseURL:  cfg.PublicBaseURL,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
	srv.forms = srv.database.Collection(cfg.FormCollection)
	srv.submissions = srv.database.Collection(cfg.SubmissionCollection)

	formRepo := mongodoc.NewFormRepository(srv.database, cfg.FormCollection)
	srv.formQueries = publicapp.NewFormQueryService(formRepo)

	submissionRepo := mongodoc.NewSubmissionRepository(srv.database, cfg.SubmissionCollection)
	mirrorFailures := mongodoc.NewMirrorFailureLog(cfg.ServerLog, srv.database, cfg.FailedMirrorCollection)
	srv.submissionService = publicapp.NewSubmissionService(cfg.ServerLog, formRepo, submissionRepo, drive, sheets, mirrorFailures)

	adminFormRepo := mongodoc.NewAdminFormRepository(srv.database, cfg.FormCollection)
	adminSubmissionRepo := mongodoc.NewAdminSubmissionRepository(srv.database, cfg.SubmissionCollection)
	srv.adminFormService = adminapp.NewFormService(adminFormRepo, adminSubmissionRepo, sheets)

	return srv
}
