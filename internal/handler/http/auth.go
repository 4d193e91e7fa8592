package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tiagomuniz-ia/agendapro-final/internal/domain"
	"github.com/tiagomuniz-ia/agendapro-final/internal/service"
	apperrors "github.com/tiagomuniz-ia/agendapro-final/pkg/errors"
	"github.com/tiagomuniz-ia/agendapro-final/pkg/logger"
	"github.com/tiagomuniz-ia/agendapro-final/pkg/middleware"
	"github.com/tiagomuniz-ia/agendapro-final/pkg/validator"
)

// AuthHandler handles HTTP requests for the auth endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// LoginRequest is the JSON request body for login. Field names follow the
// AgendaPro wire format.
type LoginRequest struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// LoginResponse is the JSON response body for a successful login.
type LoginResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    domain.Profile `json:"user"`
}

// VerifyResponse is the JSON response body for a successful verification.
type VerifyResponse struct {
	Success bool              `json:"success"`
	User    middleware.Claims `json:"user"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	// Missing fields short-circuit before any store round-trip.
	if err := validator.Validate(req); err != nil {
		writeFailure(w, http.StatusBadRequest, service.MsgMissingCredentials)
		return
	}

	result, err := h.service.Login(r.Context(), service.LoginInput{
		Email: req.Email,
		Senha: req.Senha,
	})
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Token:   result.Token,
		User:    result.User,
	})
}

// VerifyToken handles GET /api/verify-token. The Auth middleware has already
// validated the bearer token and stored the claims in context; this handler
// only echoes them.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeFailure(w, http.StatusUnauthorized, "Token não fornecido")
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{
		Success: true,
		User:    *claims,
	})
}

// --- Shared response helpers ---

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureResponse{Success: false, Message: message})
}

func writeAppError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	status := apperrors.HTTPStatus(err)
	message := service.MsgServerError

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	// Internal errors keep a generic client message; full detail is logged
	// server-side only.
	if status == http.StatusInternalServerError {
		message = service.MsgServerError
		l := logger.FromContext(r.Context())
		if l == slog.Default() {
			l = fallback
		}
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	writeFailure(w, status, message)
}
