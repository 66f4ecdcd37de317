package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/cybermarket/server/internal/auth"
	"github.com/cybermarket/server/internal/blob"
	"github.com/cybermarket/server/internal/catalog"
	"github.com/cybermarket/server/internal/database"
	"github.com/cybermarket/server/internal/handler"
	"github.com/cybermarket/server/internal/loadout"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/metrics"
	"github.com/cybermarket/server/internal/middleware"
	"github.com/cybermarket/server/internal/profile"
	"github.com/cybermarket/server/internal/store"
)

// Server wraps the HTTP server and its route wiring
type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// Services bundles the domain services the router depends on
type Services struct {
	Auth    auth.Service
	Catalog catalog.Service
	Store   store.Service
	Loadout loadout.Service
	Profile profile.Service
	Blobs   *blob.Store
}

// New builds the router and returns a ready-to-start server
func New(port int, dbPool database.Pool, svcs Services) *Server {
	handler.InitValidator()

	r := chi.NewRouter()

	r.Use(middleware.SecurityHeaders)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Uploaded images are served as plain static files
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(svcs.Blobs.Dir()))))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequestSizeLimit(MaxRequestBytes))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/signup", handler.HandleSignup(svcs.Auth))
				r.Post("/login", handler.HandleLogin(svcs.Auth))
			})

			// Public catalog browsing
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", handler.HandleListItems(svcs.Catalog))
				r.Get("/{id}", handler.HandleGetItem(svcs.Catalog))
			})
		})

		// Everything below requires a valid session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(svcs.Auth))
			r.Use(middleware.RequestSizeLimit(MaxRequestBytes))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", handler.HandleGetCart(svcs.Store))
				r.Post("/", handler.HandleAddToCart(svcs.Store))
				r.Delete("/", handler.HandleClearCart(svcs.Store))
				r.Post("/remove", handler.HandleRemoveFromCart(svcs.Store))
				r.Post("/checkout", handler.HandleCheckout(svcs.Store))
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", handler.HandleListFavorites(svcs.Store))
				r.Post("/toggle", handler.HandleToggleFavorite(svcs.Store))
			})

			r.Get("/inventory", handler.HandleGetInventory(svcs.Store))
			r.Get("/wallet", handler.HandleGetBalance(svcs.Store))
			r.Get("/transactions", handler.HandleListTransactions(svcs.Store))

			r.Route("/loadout", func(r chi.Router) {
				r.Get("/", handler.HandleGetLoadout(svcs.Loadout))
				r.Post("/equip", handler.HandleEquip(svcs.Loadout))
				r.Post("/unequip", handler.HandleUnequip(svcs.Loadout))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", handler.HandleGetProfile(svcs.Profile))
				r.Put("/", handler.HandleUpdateProfile(svcs.Profile))
				r.Post("/xp", handler.HandleAddXP(svcs.Profile))
				r.Route("/achievements", func(r chi.Router) {
					r.Get("/", handler.HandleListAchievements(svcs.Profile))
					r.Post("/unlock", handler.HandleUnlockAchievement(svcs.Profile))
					r.Post("/evaluate", handler.HandleEvaluateAchievements(svcs.Profile))
				})
			})

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/products", func(r chi.Router) {
					r.Post("/", handler.HandleCreateProduct(svcs.Catalog))
					r.Put("/{id}", handler.HandleUpdateProduct(svcs.Catalog))
					r.Delete("/{id}", handler.HandleDeleteProduct(svcs.Catalog))
				})
			})
		})

		// Multipart uploads get a larger body cap than the JSON routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(svcs.Auth))
			r.Use(middleware.RequestSizeLimit(MaxUploadRequestBytes))

			// Avatar uploads are available to every signed-in user
			r.Post("/uploads/avatars", handler.HandleUpload(svcs.Blobs, blob.KindAvatar))

			r.With(middleware.RequireAdmin).
				Post("/uploads/products", handler.HandleUpload(svcs.Blobs, blob.KindProduct))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// loggingMiddleware tags every request with an ID and logs start/completion
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for debug logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
