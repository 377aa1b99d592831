package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kimianj/Continuum/internal/http/respond"
	"github.com/kimianj/Continuum/internal/storage"
)

// AdminHandler owns the read-only admin surface. Cross-tenant visibility is
// granted here and nowhere else, and no mutation is exposed.
type AdminHandler struct {
	store  storage.NoteStore
	logger *slog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(store storage.NoteStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: store, logger: logger}
}

// Notes handles GET /admin/notes: every note with its owner attached.
func (h *AdminHandler) Notes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.store.ListAllNotes(r.Context())
	if err != nil {
		h.logger.Error("admin list notes", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch notes.")
		return
	}
	respond.JSON(w, http.StatusOK, notes)
}

// Users handles GET /admin/users: every account with its note count.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("admin list users", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch users.")
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.logger.Error("admin stats", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch stats.")
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}
