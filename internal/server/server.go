// Package server exposes the JSON HTTP API over the domain services.
package server

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/corelia/retail-intel/internal/analytics"
	"github.com/corelia/retail-intel/internal/inventory"
	"github.com/corelia/retail-intel/internal/review"
	"github.com/corelia/retail-intel/internal/shop"
	"github.com/corelia/retail-intel/internal/user"
)

// defaultUser identifies requests when basic auth is not configured
const defaultUser = "demo@corelia.dev"

// Server handles HTTP requests for the retail API
type Server struct {
	inventory *inventory.Service
	shops     *shop.Service
	reviews   *review.Service
	users     *user.Service
	analytics *analytics.Service
	basicAuth BasicAuth
	mux       *http.ServeMux
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(inv *inventory.Service, shops *shop.Service, reviews *review.Service, users *user.Service, stats *analytics.Service, basicAuth BasicAuth) *Server {
	return NewServerWithMux(inv, shops, reviews, users, stats, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(inv *inventory.Service, shops *shop.Service, reviews *review.Service, users *user.Service, stats *analytics.Service, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		inventory: inv,
		shops:     shops,
		reviews:   reviews,
		users:     users,
		analytics: stats,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

// currentUser identifies the requesting account from the auth credentials
func (s *Server) currentUser(r *http.Request) string {
	if username, _, ok := r.BasicAuth(); ok && username != "" {
		return username
	}
	return defaultUser
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			setCORSHeaders(w)
			w.Header().Set("WWW-Authenticate", `Basic realm="Corelia"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// registerRoutes registers all API routes on the server's mux
// Routes must be registered from most specific to least specific to avoid conflicts
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Inventory (most specific paths first)
	s.mux.HandleFunc("POST /api/inventory/ocr-scan", s.requireAuth(s.handleScanBill))
	s.mux.HandleFunc("PUT /api/inventory/{id}", s.requireAuth(s.handleUpdateItem))
	s.mux.HandleFunc("DELETE /api/inventory/{id}", s.requireAuth(s.handleDeleteItem))
	s.mux.HandleFunc("GET /api/inventory", s.requireAuth(s.handleListItems))
	s.mux.HandleFunc("POST /api/inventory", s.requireAuth(s.handleCreateItem))

	// Shops
	s.mux.HandleFunc("GET /api/shops/search", s.requireAuth(s.handleSearchShops))
	s.mux.HandleFunc("POST /api/shops/match", s.requireAuth(s.handleMatchShops))
	s.mux.HandleFunc("GET /api/shops/{id}", s.requireAuth(s.handleGetShop))
	s.mux.HandleFunc("GET /api/shops", s.requireAuth(s.handleListShops))
	s.mux.HandleFunc("POST /api/shops", s.requireAuth(s.handleCreateShop))

	// Reviews
	s.mux.HandleFunc("GET /api/reviews/shop/{id}", s.requireAuth(s.handleShopReviews))
	s.mux.HandleFunc("GET /api/reviews", s.requireAuth(s.handleRecentReviews))
	s.mux.HandleFunc("POST /api/reviews", s.requireAuth(s.handleCreateReview))

	// User
	s.mux.HandleFunc("GET /api/user/profile", s.requireAuth(s.handleProfile))
	s.mux.HandleFunc("GET /api/user/loyalty", s.requireAuth(s.handleLoyalty))
	s.mux.HandleFunc("GET /api/user/expiring-items", s.requireAuth(s.handleExpiringItems))
	s.mux.HandleFunc("GET /api/user/reviews", s.requireAuth(s.handleUserReviews))

	// Expiry catalog
	s.mux.HandleFunc("GET /api/expiry/{category}", s.requireAuth(s.handleExpiryInfo))
	s.mux.HandleFunc("GET /api/expiry", s.requireAuth(s.handleExpiryCatalog))

	// Analytics
	s.mux.HandleFunc("GET /api/analytics/stats", s.requireAuth(s.handleSellerStats))
	s.mux.HandleFunc("GET /api/analytics/top-selling", s.requireAuth(s.handleTopSelling))
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.mux.ServeHTTP(w, r)
		})(w, r)
	}))
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
