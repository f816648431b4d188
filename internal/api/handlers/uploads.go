package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lnm-board/server/internal/api/respond"
	"github.com/lnm-board/server/internal/images"
	"github.com/lnm-board/server/internal/metrics"
)

// UploadsHandler relays image files to the external image host and
// hands the hosted URL back to the client.
type UploadsHandler struct {
	Client *images.Client
}

func NewUploadsHandler(client *images.Client) *UploadsHandler {
	return &UploadsHandler{Client: client}
}

func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, images.MaxUploadBytes)
	if err := r.ParseMultipartForm(images.MaxUploadBytes); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "image file is required", err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "image file is required", err)
		return
	}
	defer file.Close()

	if !allowedImageType(header.Header.Get("Content-Type")) {
		respond.Error(w, r, http.StatusBadRequest, "only image uploads are accepted", nil)
		return
	}

	image, err := h.Client.Upload(r.Context(), header.Filename, file)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	metrics.ImageUploads.WithLabelValues("success").Inc()
	respond.JSON(w, r, http.StatusCreated, image)
}

type deleteImageRequest struct {
	PublicID string `json:"public_id"`
}

func (h *UploadsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.PublicID) == "" {
		respond.Error(w, r, http.StatusBadRequest, "public_id is required", nil)
		return
	}

	if err := h.Client.Delete(r.Context(), req.PublicID); err != nil {
		metrics.ImageDeletes.WithLabelValues("error").Inc()
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	metrics.ImageDeletes.WithLabelValues("success").Inc()
	respond.JSON(w, r, http.StatusOK, respond.Message{Message: "image deleted"})
}

func allowedImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
