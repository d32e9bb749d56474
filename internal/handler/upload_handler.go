package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/harvestx-backend/internal/media"
	appmw "github.com/shinyyama/harvestx-backend/internal/middleware"
	"github.com/shinyyama/harvestx-backend/internal/service"
	"go.uber.org/zap"
)

type UploadHandler struct {
	svc service.MediaService
	log *zap.Logger
}

func NewUploadHandler(svc service.MediaService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, log: log}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// OfferImage accepts a multipart form with the file in "image".
func (h *UploadHandler) OfferImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "image file is required")
	}
	if fh.Size > media.MaxImageSize {
		return errorJSON(c, http.StatusBadRequest, "image exceeds 5 MiB")
	}
	f, err := fh.Open()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "image file is unreadable")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, media.MaxImageSize+1))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "image file is unreadable")
	}
	url, err := h.svc.UploadOfferImage(c.Request().Context(), appmw.UID(c), data)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusCreated, UploadResponse{URL: url})
}
