package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kimianj/Continuum/internal/auth"
	"github.com/kimianj/Continuum/internal/http/respond"
	"github.com/kimianj/Continuum/internal/models/dto"
	"github.com/kimianj/Continuum/internal/storage"
)

// NotesHandler owns the per-user note endpoints. Every operation is scoped to
// the authenticated owner inside the store query; a foreign note is
// indistinguishable from a missing one.
type NotesHandler struct {
	store  storage.NoteStore
	logger *slog.Logger
}

// NewNotesHandler constructs the handler.
func NewNotesHandler(store storage.NoteStore, logger *slog.Logger) *NotesHandler {
	return &NotesHandler{store: store, logger: logger}
}

// List handles GET /notes.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	notes, err := h.store.ListForOwner(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch notes.")
		return
	}
	respond.JSON(w, http.StatusOK, notes)
}

// Get handles GET /notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id, ok := noteID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.store.GetForOwner(r.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Note not found.")
			return
		}
		h.logger.Error("get note", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch note.")
		return
	}
	respond.JSON(w, http.StatusOK, note)
}

// Create handles POST /notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	var req dto.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	note, err := h.store.CreateNote(r.Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, storage.ErrMissingFields) {
			respond.Error(w, http.StatusBadRequest, "Title and content are required.")
			return
		}
		h.logger.Error("create note", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to create note.")
		return
	}
	respond.JSON(w, http.StatusCreated, note)
}

// Update handles PUT /notes/{id}.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id, ok := noteID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	var req dto.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	note, err := h.store.UpdateNote(r.Context(), id, claims.UserID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrMissingFields):
			respond.Error(w, http.StatusBadRequest, "Title and content are required.")
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Note not found.")
		default:
			h.logger.Error("update note", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Failed to update note.")
		}
		return
	}
	respond.JSON(w, http.StatusOK, note)
}

// Delete handles DELETE /notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id, ok := noteID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	deleted, err := h.store.DeleteNote(r.Context(), id, claims.UserID)
	if err != nil {
		h.logger.Error("delete note", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to delete note.")
		return
	}
	if !deleted {
		respond.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Note deleted successfully."})
}

// noteID parses the {id} path segment. A non-numeric ID cannot match a row,
// so it reports the same way as a missing note.
func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
