package handler

import (
	"io"
	"net/http"

	"github.com/cybermarket/server/internal/blob"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/middleware"
)

// Multipart form field carrying the image
const uploadFileField = "file"

type UploadResponse struct {
	URL string `json:"url"`
}

// HandleUpload stores a PNG/JPEG/WebP image and returns its public URL.
// The kind path segment selects the storage bucket (avatars or products).
// @Summary Upload image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "Upload kind (avatars or products)"
// @Param file formData file true "Image file"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /uploads/{kind} [post]
func HandleUpload(st *blob.Store, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		if err := r.ParseMultipartForm(domain.MaxUploadBytes); err != nil {
			log.Warn("Failed to parse multipart form", "error", err, "user_id", userID)
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgUploadTooLargeError)
			return
		}

		file, _, err := r.FormFile(uploadFileField)
		if err != nil {
			log.Warn("Missing upload file field", "error", err, "user_id", userID)
			respondError(w, http.StatusBadRequest, ErrMsgMissingUploadFile)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, domain.MaxUploadBytes+1))
		if err != nil {
			log.Error("Failed to read upload", "error", err, "user_id", userID)
			respondError(w, http.StatusInternalServerError, ErrMsgUploadFailed)
			return
		}

		url, err := st.Save(r.Context(), kind, data)
		if err != nil {
			log.Warn("Failed to store upload", "error", err, "user_id", userID, "kind", kind)
			respondServiceError(w, err)
			return
		}

		log.Info("Upload stored", "user_id", userID, "kind", kind, "url", url, "bytes", len(data))

		respondJSON(w, http.StatusCreated, UploadResponse{URL: url})
	}
}
