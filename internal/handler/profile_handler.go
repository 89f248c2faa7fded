package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/GoArmGo/PortfolioApp/internal/usecase"
)

// Файлы формы держим в памяти, как и остальные поля
const maxMultipartMemory = 32 << 20 // 32MB

// ProfileHandler — обработчик HTTP-запросов профиля портфолио.
type ProfileHandler struct {
	authUseCase    usecase.AuthUseCase
	profileUseCase usecase.ProfileUseCase
	logger         *slog.Logger
}

// NewProfileHandler создаёт новый экземпляр ProfileHandler.
func NewProfileHandler(auc usecase.AuthUseCase, puc usecase.ProfileUseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{authUseCase: auc, profileUseCase: puc, logger: logger}
}

// Token — GET /api/profile/token
// Выпускает общий read-only токен портфолио.
func (h *ProfileHandler) Token(w http.ResponseWriter, r *http.Request) {
	token, err := h.authUseCase.PublicToken(r.Context())
	if err != nil {
		h.logger.Error("failed to generate portfolio token", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate portfolio token", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	}, h.logger)
}

// GetMyProfile — GET /api/profile/getMyProfile
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", h.logger)
		return
	}

	profile, err := h.profileUseCase.GetMyProfile(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to fetch profile", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error fetching profile", h.logger)
		return
	}

	// profile может быть nil: строка создается лениво при первом обновлении
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"profile": profile}, h.logger)
}

// SaveUpdateMyProfile — PUT /api/profile/saveUpdateMyProfile
// Принимает multipart-форму с разреженными полями профиля и файлами avatar/resume.
func (h *ProfileHandler) SaveUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form", h.logger)
		return
	}

	input := usecase.ProfileInput{
		Name:           r.FormValue("name"),
		FullName:       r.FormValue("full_name"),
		Description:    r.FormValue("description"),
		Email:          r.FormValue("email"),
		PrimaryPhone:   firstFormValue(r, "primaryPhone", "primary_phone"),
		SecondaryPhone: firstFormValue(r, "secondaryPhone", "secondary_phone"),
		Location:       r.FormValue("location"),
		Website:        r.FormValue("website"),
		Linkedin:       r.FormValue("linkedin"),
		Github:         r.FormValue("github"),
		LogoInitials:   r.FormValue("logo_initials"),
		OpenToWork:     firstFormValue(r, "openToWork", "open_to_work"),
		CurrentTheme:   r.FormValue("currenttheme"),
		Themes:         r.FormValue("themes"),
		Skills:         r.FormValue("skills"),
		Experiences:    r.FormValue("experiences"),
	}

	avatar, err := readUpload(r, "avatar")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid avatar upload", h.logger)
		return
	}
	input.Avatar = avatar

	resume, err := readUpload(r, "resume")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid resume upload", h.logger)
		return
	}
	input.Resume = resume

	profile, err := h.profileUseCase.UpdateMyProfile(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, usecase.ErrResumeNotPDF) {
			respondWithError(w, http.StatusBadRequest, "Resume must be a PDF", h.logger)
			return
		}
		h.logger.Error("failed to update profile", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error updating profile", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"profile": profile}, h.logger)
}

// DownloadResume — GET /api/profile/me/resume
// Возвращает подписанную ссылку вместо постоянного публичного URL.
func (h *ProfileHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", h.logger)
		return
	}

	url, expiresIn, err := h.profileUseCase.ResumeDownloadURL(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoResume) {
			respondWithError(w, http.StatusNotFound, "No resume available", h.logger)
			return
		}
		h.logger.Error("failed to create signed resume url", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error creating signed url", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"url":        url,
		"expires_in": expiresIn,
	}, h.logger)
}

// currentUserID достает идентичность из контекста и разбирает subject токена.
func currentUserID(r *http.Request) (uuid.UUID, bool) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func firstFormValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.FormValue(name); v != "" {
			return v
		}
	}
	return ""
}

// readUpload читает файл из multipart-формы целиком в память.
// (nil, nil), если файл не приложен.
func readUpload(r *http.Request, field string) (*usecase.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &usecase.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
