package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/service"
	"github.com/campus-routine/routine-api/pkg/config"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
)

type fakePublishService struct {
	warn     string
	uploaded models.UploadItem
	status   models.PublishStatus
}

func (f *fakePublishService) Upload(_ context.Context, kind, originalName string, _ io.Reader, meta models.UploadMeta) (models.UploadItem, string, error) {
	if kind != models.KindRoutine && kind != models.KindTeacherInfo {
		return models.UploadItem{}, "", appErrors.ErrValidation
	}
	f.uploaded = models.UploadItem{Key: kind + ".xlsx", Kind: kind, Meta: meta}
	return f.uploaded, f.warn, nil
}

func (f *fakePublishService) Publish(context.Context, service.PublishRequest) (models.PublishStatus, error) {
	return f.status, nil
}

func (f *fakePublishService) Status(context.Context) (models.PublishStatus, error) {
	return f.status, nil
}

func (f *fakePublishService) Unpublish(context.Context) error { return nil }

func (f *fakePublishService) Published(_ context.Context, name string) (interface{}, error) {
	switch name {
	case models.KindRoutine:
		return models.RoutinePayload{
			Data:      []models.ClassRow{{Day: "Saturday", Slot: "08:30-10:00", Room: "KT-501"}},
			Meta:      models.PublishMeta{FileName: "Summer Routine.xlsx"},
			UpdatedAt: "2024-06-13T08:00:00Z",
		}, nil
	case models.KindTeacherInfo:
		return models.TeacherInfoPayload{Data: []models.TeacherInfo{}}, nil
	default:
		return nil, appErrors.ErrNotFound
	}
}

func (f *fakePublishService) Files(context.Context) ([]models.UploadItem, error) {
	return []models.UploadItem{{Key: "routine.xlsx", Kind: models.KindRoutine}}, nil
}

func (f *fakePublishService) DeleteUpload(_ context.Context, kind string) error {
	if kind != models.KindRoutine && kind != models.KindTeacherInfo {
		return appErrors.ErrValidation
	}
	return nil
}

func multipartUpload(t *testing.T, kind, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("kind", kind))
	require.NoError(t, writer.WriteField("version", "v2"))
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newTestPublishHandler(svc publishService) *PublishHandler {
	return NewPublishHandler(svc, nil, config.UploadsConfig{MaxFileSizeBytes: 1024})
}

func TestPublishHandlerUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("upload succeeds", func(t *testing.T) {
		h := newTestPublishHandler(&fakePublishService{})
		w := performRequest(t, h.Upload, multipartUpload(t, "routine", "routine.xlsx", []byte("data")))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"routine.xlsx"`)
	})

	t.Run("parse warning surfaces in the envelope", func(t *testing.T) {
		h := newTestPublishHandler(&fakePublishService{warn: "file saved, but it could not be parsed"})
		w := performRequest(t, h.Upload, multipartUpload(t, "routine", "broken.xlsx", []byte("junk")))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"warn"`)
	})

	t.Run("missing file rejected", func(t *testing.T) {
		h := newTestPublishHandler(&fakePublishService{})
		req := httptest.NewRequest(http.MethodPost, "/api/files", strings.NewReader(""))
		w := performRequest(t, h.Upload, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized file rejected", func(t *testing.T) {
		h := newTestPublishHandler(&fakePublishService{})
		w := performRequest(t, h.Upload, multipartUpload(t, "routine", "big.xlsx", make([]byte, 2048)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPublishHandlerPublished(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestPublishHandler(&fakePublishService{})

	t.Run("routine payload is served raw", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/published/routine", nil)
		w := performRequest(t, h.Published, req, gin.Param{Key: "name", Value: "routine"})
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"data"`)
		assert.Contains(t, body, `"updatedAt"`)
		assert.Contains(t, body, "Summer Routine.xlsx")
		assert.NotContains(t, body, `"error"`)
	})

	t.Run("unknown name yields 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/published/grades", nil)
		w := performRequest(t, h.Published, req, gin.Param{Key: "name", Value: "grades"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPublishHandlerStatusAndFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestPublishHandler(&fakePublishService{status: models.PublishStatus{Routine: true}})

	w := performRequest(t, h.Status, httptest.NewRequest(http.MethodGet, "/api/publish", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"routine":true`)
	assert.Contains(t, w.Body.String(), `"tif":false`)

	w = performRequest(t, h.Files, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "routine.xlsx")

	w = performRequest(t, h.DeleteFile, httptest.NewRequest(http.MethodDelete, "/api/files?kind=routine", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(t, h.DeleteFile, httptest.NewRequest(http.MethodDelete, "/api/files?kind=grades", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
