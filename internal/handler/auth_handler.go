package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/PortfolioApp/internal/usecase"
)

// AuthHandler — обработчик HTTP-запросов регистрации и входа.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: uc, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register — POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Name, email and password are required.", h.logger)
		return
	}

	user, token, err := h.authUseCase.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, "User with this email already exists.", h.logger)
			return
		}
		h.logger.Error("failed to register user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error creating user.", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully.",
		"user":    user.Public(),
		"token":   token,
	}, h.logger)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login — POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Email and password are required.", h.logger)
		return
	}

	user, token, err := h.authUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// Единый ответ для неизвестного email и неверного пароля
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password.", h.logger)
			return
		}
		h.logger.Error("failed to login user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while logging in.", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful.",
		"user":    user.Public(),
		"token":   token,
	}, h.logger)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword — POST /api/auth/forgot-password
// Ответ одинаков для существующего и несуществующего email.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "Email is required.", h.logger)
		return
	}

	if err := h.authUseCase.ForgotPassword(r.Context(), req.Email); err != nil {
		h.logger.Error("failed to process forgot-password", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error while processing request.", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "If this email exists, reset instructions will be sent.",
	}, h.logger)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword — POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Token and new password are required.", h.logger)
		return
	}

	if err := h.authUseCase.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidResetToken):
			respondWithError(w, http.StatusBadRequest, "Reset token is invalid or expired.", h.logger)
		case errors.Is(err, usecase.ErrUserNotFound):
			respondWithError(w, http.StatusNotFound, "User not found.", h.logger)
		default:
			h.logger.Error("failed to reset password", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Error updating password.", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Password has been reset successfully.",
	}, h.logger)
}
