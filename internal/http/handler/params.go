package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/internal/http/dto"
	"knowvalue.app/server/internal/service"
)

const (
	maxUploadBytes    = 5 << 20
	imagesFormField   = "images"
	multipartMaxBytes = (service.MaxImages + 1) * maxUploadBytes
)

func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func bodyID(c *gin.Context, field, raw string) (int64, bool) {
	v, err := id.Parse(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+field)
		return 0, false
	}
	return v, true
}

// optionalID parses an id that may be absent; an empty string yields nil.
func optionalID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := id.Parse(raw)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("invalid id %q", raw)
	}
	return &v, nil
}

func bindPage(c *gin.Context) (dto.PageQuery, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid pagination")
		return q, false
	}
	return q, true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindForm binds a JSON or multipart body into req. Multipart bodies are capped at
// multipartMaxBytes; a larger one is answered with 413.
func bindForm(c *gin.Context, req any) bool {
	if isMultipart(c) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, multipartMaxBytes)
	}
	if err := c.ShouldBind(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		badRequest(c, err.Error())
		return false
	}
	return true
}

// readUploads opens every file under the images field, skipping any larger than
// maxUploadBytes. The returned func closes them and must be called once the
// service is done reading.
func readUploads(c *gin.Context) ([]service.Upload, func(), error) {
	noop := func() {}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, fmt.Errorf("parse multipart form: %w", err)
	}

	headers := form.File[imagesFormField]
	if len(headers) > service.MaxImages {
		return nil, noop, fmt.Errorf("at most %d images are allowed", service.MaxImages)
	}

	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, h := range headers {
		if h.Size > maxUploadBytes {
			slog.WarnContext(c.Request.Context(), "skipping oversized image",
				"file_name", h.Filename, "size", h.Size, "limit", maxUploadBytes)
			continue
		}
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, noop, fmt.Errorf("open %s: %w", h.Filename, err)
		}
		files = append(files, f)
		uploads = append(uploads, service.Upload{FileName: h.Filename, Reader: f})
	}
	return uploads, closeAll, nil
}
