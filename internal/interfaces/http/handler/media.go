package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	appmedia "github.com/atedres/boldnet-sub000/internal/application/media"
	"github.com/gin-gonic/gin"
)

// MultipartOverhead is the allowance for form boundaries and headers on top
// of the file size limit
const MultipartOverhead int64 = 64 << 10

// MediaHandler handles image uploads and icon generation
type MediaHandler struct {
	BaseHandler
	mediaService *appmedia.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *appmedia.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// BodyLimit returns the request size the upload route should accept
func (h *MediaHandler) BodyLimit() int64 {
	return int64(h.mediaService.MaxBytes()) + MultipartOverhead
}

// UploadImage accepts a multipart "file" with optional width and height
// form fields and returns the hosted URL.
func (h *MediaHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleError(c, appmedia.ErrFileTooLarge)
			return
		}
		h.BadRequest(c, "A multipart file field named \"file\" is required")
		return
	}
	if fh.Size > int64(h.mediaService.MaxBytes()) {
		h.HandleError(c, appmedia.ErrFileTooLarge)
		return
	}

	width, ok := h.dimension(c, "width")
	if !ok {
		return
	}
	height, ok := h.dimension(c, "height")
	if !ok {
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer f.Close()

	// one byte past the limit lets the service report the overflow
	data, err := io.ReadAll(io.LimitReader(f, int64(h.mediaService.MaxBytes())+1))
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}

	result, err := h.mediaService.UploadImage(c.Request.Context(), appmedia.UploadImageInput{
		Filename: fh.Filename,
		Data:     data,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GenerateIcon produces and hosts an icon for a service name
func (h *MediaHandler) GenerateIcon(c *gin.Context) {
	var req appmedia.GenerateIconRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.mediaService.GenerateIcon(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

func (h *MediaHandler) dimension(c *gin.Context, field string) (int, bool) {
	raw := c.PostForm(field)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 4096 {
		h.BadRequest(c, field+" must be an integer between 1 and 4096")
		return 0, false
	}
	return v, true
}
