package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kimianj/Continuum/internal/auth"
	"github.com/kimianj/Continuum/internal/http/respond"
	"github.com/kimianj/Continuum/internal/models/dto"
	"github.com/kimianj/Continuum/internal/storage"
)

// AuthHandler owns signup/login/me endpoints.
type AuthHandler struct {
	store          storage.UserStore
	tokens         *auth.TokenManager
	logger         *slog.Logger
	minPasswordLen int
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, logger *slog.Logger, minPasswordLen int) *AuthHandler {
	return &AuthHandler{
		store:          store,
		tokens:         tokens,
		logger:         logger,
		minPasswordLen: minPasswordLen,
	}
}

// Signup handles POST /auth/signup. Self-signup never grants the admin flag.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		respond.Error(w, http.StatusBadRequest, "Email, password, and name are required.")
		return
	}
	if len(req.Password) < h.minPasswordLen {
		respond.Error(w, http.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters.", h.minPasswordLen))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error during signup.")
		return
	}

	user, err := h.store.CreateUser(r.Context(), email, string(hash), name, false)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "Email already registered.")
			return
		}
		h.logger.Error("create user", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error during signup.")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error during signup.")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    userPayload(user),
	})
}

// Login handles POST /auth/login. Unknown email and wrong password answer
// with the same message so accounts cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		h.logger.Error("find user", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error during login.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Server error during login.")
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    userPayload(user),
	})
}

// Me handles GET /auth/me. The response is built from the verified claims
// alone; no store lookup.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respond.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respond.JSON(w, http.StatusOK, dto.MeResponse{
		User: dto.UserPayload{
			ID:      claims.UserID,
			Email:   claims.Email,
			Name:    claims.Name,
			IsAdmin: claims.IsAdmin,
		},
	})
}
