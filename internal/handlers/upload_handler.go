package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/storage"
)

const maxUploadImages = 5

// UploadHandler stores images attached to donations and reports
type UploadHandler struct {
	uploader storage.Uploader
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.UploadImages)
}

// UploadImages stores up to five "images" form files and returns their URLs
func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Expected a multipart form")
	}
	files := form.File["images"]
	if len(files) > maxUploadImages {
		return echo.NewHTTPError(http.StatusBadRequest, "At most 5 images can be uploaded at once")
	}
	for _, fh := range files {
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			return echo.NewHTTPError(http.StatusBadRequest, "Only image files are accepted")
		}
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := h.uploader.Save(c.Request().Context(), fh)
		if err != nil {
			return internalError(err)
		}
		urls = append(urls, url)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "urls": urls})
}
