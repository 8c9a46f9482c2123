package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/corelia/retail-intel/internal/expiry"
	"github.com/corelia/retail-intel/internal/inventory"
	"github.com/corelia/retail-intel/internal/review"
	"github.com/corelia/retail-intel/internal/shop"
)

// maxUploadSize caps bill uploads; high-resolution phone photos need room
const maxUploadSize = int64(50 << 20) // 50MB

// expiringHorizonDays is the default look-ahead for the expiring-items report
const expiringHorizonDays = 7

// writeJSON writes a JSON response with CORS headers set
func writeJSON(w http.ResponseWriter, status int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// errorJSON writes an error response with CORS headers set
func errorJSON(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// --- Inventory ---

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.inventory.ListItems(s.currentUser(r))
	if err != nil {
		slog.Error("Error listing items", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var item inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		errorJSON(w, "Invalid item payload", http.StatusBadRequest)
		return
	}

	created, err := s.inventory.CreateItem(&item, s.currentUser(r))
	if err != nil {
		slog.Error("Error creating item", "error", err)
		errorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"id":          created.ID,
		"expiry_date": created.ExpiryDate,
		"created_at":  created.CreatedAt,
	})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var changes inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		errorJSON(w, "Invalid item payload", http.StatusBadRequest)
		return
	}

	item, err := s.inventory.UpdateItem(r.PathValue("id"), s.currentUser(r), &changes)
	if err != nil {
		errorJSON(w, "Item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "item": item})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.inventory.DeleteItem(r.PathValue("id"), s.currentUser(r)); err != nil {
		errorJSON(w, "Item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleScanBill accepts a multipart bill upload and runs the extraction
// pipeline over it
func (s *Server) handleScanBill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB."
		}
		errorJSON(w, errorMsg, http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		errorJSON(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer f.Close()

	if header.Size > maxUploadSize {
		errorJSON(w, "File is too large. Maximum size is 50MB.", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		errorJSON(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExt(header.Filename)
	}

	result, err := s.inventory.ScanBill(r.Context(), header.Filename, data, contentType)
	if err != nil {
		errorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Demo fallback items are placeholders, not sales
	if !result.DemoMode {
		if _, err := s.analytics.Record(s.currentUser(r), result.Items); err != nil {
			slog.Warn("Failed to record bill for analytics", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// contentTypeFromExt guesses a MIME type from the uploaded filename
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic", ".heif":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}

// --- Shops ---

func (s *Server) handleListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := s.shops.List(r.URL.Query().Get("category"))
	if err != nil {
		slog.Error("Error listing shops", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shops": shops})
}

func (s *Server) handleGetShop(w http.ResponseWriter, r *http.Request) {
	sh, items, err := s.shops.Get(r.PathValue("id"))
	if err != nil {
		errorJSON(w, "Shop not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shop": sh, "inventory": items})
}

func (s *Server) handleCreateShop(w http.ResponseWriter, r *http.Request) {
	var sh shop.Shop
	if err := json.NewDecoder(r.Body).Decode(&sh); err != nil {
		errorJSON(w, "Invalid shop payload", http.StatusBadRequest)
		return
	}
	if err := s.shops.Create(&sh); err != nil {
		slog.Error("Error creating shop", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": sh.ID})
}

func (s *Server) handleSearchShops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		errorJSON(w, "Query parameter q is required", http.StatusBadRequest)
		return
	}
	shops, err := s.shops.Search(q)
	if err != nil {
		slog.Error("Error searching shops", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shops": shops})
}

func (s *Server) handleMatchShops(w http.ResponseWriter, r *http.Request) {
	var req shop.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid match payload", http.StatusBadRequest)
		return
	}
	matches, err := s.shops.Match(req)
	if err != nil {
		errorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"matches":     matches,
		"total_shops": len(matches),
	})
}

// --- Reviews ---

func (s *Server) handleShopReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.ListByShop(r.PathValue("id"), queryLimit(r, 50))
	if err != nil {
		slog.Error("Error listing shop reviews", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

func (s *Server) handleRecentReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.ListRecent(queryLimit(r, 20))
	if err != nil {
		slog.Error("Error listing reviews", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var rv review.Review
	if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
		errorJSON(w, "Invalid review payload", http.StatusBadRequest)
		return
	}
	rv.UserEmail = s.currentUser(r)

	created, err := s.reviews.Create(&rv)
	if err != nil {
		slog.Error("Error creating review", "error", err)
		errorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "review_id": created.ID})
}

func (s *Server) handleUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.ListByUser(s.currentUser(r))
	if err != nil {
		slog.Error("Error listing user reviews", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

// --- User ---

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.Profile(s.currentUser(r))
	if err != nil {
		slog.Error("Error loading profile", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (s *Server) handleLoyalty(w http.ResponseWriter, r *http.Request) {
	summary, err := s.users.Loyalty(s.currentUser(r))
	if err != nil {
		slog.Error("Error loading loyalty summary", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExpiringItems(w http.ResponseWriter, r *http.Request) {
	days := expiringHorizonDays
	if v := r.URL.Query().Get("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	items, err := s.users.ExpiringItems(s.currentUser(r), days)
	if err != nil {
		slog.Error("Error listing expiring items", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// --- Expiry catalog ---

func (s *Server) handleExpiryInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, expiry.Info(r.PathValue("category"), time.Now().UTC()))
}

func (s *Server) handleExpiryCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": expiry.All()})
}

// --- Analytics ---

func (s *Server) handleSellerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analytics.Stats(s.currentUser(r))
	if err != nil {
		slog.Error("Error computing seller stats", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTopSelling(w http.ResponseWriter, r *http.Request) {
	products, err := s.analytics.TopSelling(s.currentUser(r))
	if err != nil {
		slog.Error("Error ranking top sellers", "error", err)
		errorJSON(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func queryLimit(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
