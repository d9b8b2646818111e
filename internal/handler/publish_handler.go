package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/service"
	"github.com/campus-routine/routine-api/pkg/config"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
	"github.com/campus-routine/routine-api/pkg/response"
)

type publishService interface {
	Upload(ctx context.Context, kind, originalName string, r io.Reader, meta models.UploadMeta) (models.UploadItem, string, error)
	Publish(ctx context.Context, req service.PublishRequest) (models.PublishStatus, error)
	Status(ctx context.Context) (models.PublishStatus, error)
	Unpublish(ctx context.Context) error
	Published(ctx context.Context, name string) (interface{}, error)
	Files(ctx context.Context) ([]models.UploadItem, error)
	DeleteUpload(ctx context.Context, kind string) error
}

// PublishHandler manages upload and publication endpoints.
type PublishHandler struct {
	service publishService
	metrics *service.MetricsService
	cfg     config.UploadsConfig
}

// NewPublishHandler constructs the handler.
func NewPublishHandler(svc publishService, metrics *service.MetricsService, cfg config.UploadsConfig) *PublishHandler {
	return &PublishHandler{service: svc, metrics: metrics, cfg: cfg}
}

// Files godoc
// @Summary List stored spreadsheet uploads
// @Tags Publish
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /files [get]
func (h *PublishHandler) Files(c *gin.Context) {
	items, err := h.service.Files(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Upload godoc
// @Summary Upload a routine or teacher-info spreadsheet
// @Tags Publish
// @Accept multipart/form-data
// @Produce json
// @Param kind formData string true "routine or tif"
// @Param file formData file true "Spreadsheet"
// @Param version formData string false "Version tag"
// @Param effectiveFrom formData string false "Effective date"
// @Success 200 {object} response.Envelope
// @Router /files [post]
func (h *PublishHandler) Upload(c *gin.Context) {
	kind := c.PostForm("kind")
	meta := models.UploadMeta{
		Version:       c.PostForm("version"),
		EffectiveFrom: c.PostForm("effectiveFrom"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if h.cfg.MaxFileSizeBytes > 0 && fileHeader.Size > h.cfg.MaxFileSizeBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds the maximum allowed size"))
		return
	}
	if len(h.cfg.AllowedMIMEs) > 0 {
		contentType := fileHeader.Header.Get("Content-Type")
		allowed := false
		for _, mime := range h.cfg.AllowedMIMEs {
			if contentType == mime {
				allowed = true
				break
			}
		}
		if !allowed {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported file type"))
			return
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open uploaded file"))
		return
	}
	defer src.Close() //nolint:errcheck

	item, warn, err := h.service.Upload(c.Request.Context(), kind, fileHeader.Filename, src, meta)
	if err != nil {
		response.Error(c, err)
		return
	}

	if warn != "" {
		h.metrics.RecordUpload(kind, "warned")
		response.Warned(c, item, warn)
		return
	}
	h.metrics.RecordUpload(kind, "published")
	h.metrics.RecordPublish(kind)
	response.JSON(c, http.StatusOK, item)
}

// DeleteFile godoc
// @Summary Delete a stored upload and its published payload
// @Tags Publish
// @Produce json
// @Param kind query string true "routine or tif"
// @Success 204
// @Router /files [delete]
func (h *PublishHandler) DeleteFile(c *gin.Context) {
	if err := h.service.DeleteUpload(c.Request.Context(), c.Query("kind")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Publish godoc
// @Summary Publish from stored uploads or request arrays
// @Tags Publish
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /publish [post]
func (h *PublishHandler) Publish(c *gin.Context) {
	var req service.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid publish payload"))
		return
	}

	status, err := h.service.Publish(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if status.Routine {
		h.metrics.RecordPublish(models.KindRoutine)
	}
	if status.TeacherInfo {
		h.metrics.RecordPublish(models.KindTeacherInfo)
	}
	response.JSON(c, http.StatusOK, status)
}

// Status godoc
// @Summary Publication status
// @Tags Publish
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /publish [get]
func (h *PublishHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Unpublish godoc
// @Summary Clear both published payloads
// @Tags Publish
// @Produce json
// @Success 204
// @Router /publish [delete]
func (h *PublishHandler) Unpublish(c *gin.Context) {
	if err := h.service.Unpublish(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Published godoc
// @Summary Published payload for a name
// @Tags Publish
// @Produce json
// @Param name path string true "routine or tif"
// @Success 200 {object} models.RoutinePayload
// @Router /published/{name} [get]
func (h *PublishHandler) Published(c *gin.Context) {
	payload, err := h.service.Published(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	// Raw payload shape, not the envelope: read-only clients consume
	// {data, meta, updatedAt} directly.
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, payload)
}
