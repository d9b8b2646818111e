package service

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/routine"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
)

type publicationStore interface {
	SetPublished(ctx context.Context, kind string, payload interface{}) error
	GetPublished(ctx context.Context, kind string, dest interface{}) error
	DeletePublished(ctx context.Context, kind string) error
	IsPublished(ctx context.Context, kind string) (bool, error)
	SetUploadMeta(ctx context.Context, kind string, meta interface{}) error
	GetUploadMeta(ctx context.Context, kind string, dest interface{}) error
	SetUploadFile(ctx context.Context, kind, fileName string) error
	GetUploadFile(ctx context.Context, kind string) (string, error)
	ClearUpload(ctx context.Context, kind string) error
}

type uploadStorage interface {
	SaveUpload(kind, originalName string, r io.Reader) (string, error)
	FindUpload(kind string) (string, error)
	OpenUpload(kind string) (*os.File, string, error)
	DeleteUpload(kind string) error
}

// PublishRequest optionally carries pre-parsed arrays; when a slice is nil
// the corresponding kind is re-published from its latest stored upload.
type PublishRequest struct {
	Routine     []models.ClassRow    `json:"routine"`
	TeacherInfo []models.TeacherInfo `json:"tif"`
}

// PublishService owns the upload → parse → publish pipeline.
type PublishService struct {
	store   publicationStore
	uploads uploadStorage
	logger  *zap.Logger
}

// NewPublishService constructs a PublishService.
func NewPublishService(store publicationStore, uploads uploadStorage, logger *zap.Logger) *PublishService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublishService{store: store, uploads: uploads, logger: logger}
}

func validKind(kind string) bool {
	return kind == models.KindRoutine || kind == models.KindTeacherInfo
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Upload saves the raw spreadsheet first, then attempts to parse and publish
// it. A parse failure never loses the raw file: the upload is kept and a
// warning is returned. On failure the routine keeps its previous published
// payload, while the teacher directory publishes an empty list.
func (s *PublishService) Upload(ctx context.Context, kind, originalName string, r io.Reader, meta models.UploadMeta) (models.UploadItem, string, error) {
	if !validKind(kind) {
		return models.UploadItem{}, "", appErrors.Clone(appErrors.ErrValidation, "kind must be routine or tif")
	}

	key, err := s.uploads.SaveUpload(kind, originalName, r)
	if err != nil {
		return models.UploadItem{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "save upload")
	}
	if err := s.store.SetUploadMeta(ctx, kind, meta); err != nil {
		return models.UploadItem{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store upload meta")
	}
	if err := s.store.SetUploadFile(ctx, kind, originalName); err != nil {
		return models.UploadItem{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store upload file name")
	}

	item := models.UploadItem{Key: key, Kind: kind, Meta: meta}

	if err := s.publishFromUpload(ctx, kind); err != nil {
		s.logger.Warn("upload saved but publish failed",
			zap.String("kind", kind),
			zap.String("file", originalName),
			zap.Error(err))
		warn := "file saved, but it could not be parsed; previous published data is unchanged"
		if kind == models.KindTeacherInfo {
			warn = "file saved, but it could not be parsed; an empty teacher directory was published"
			if pubErr := s.store.SetPublished(ctx, kind, models.TeacherInfoPayload{
				Data:      []models.TeacherInfo{},
				Meta:      s.publishMeta(ctx, kind),
				UpdatedAt: nowStamp(),
			}); pubErr != nil {
				return models.UploadItem{}, "", appErrors.Wrap(pubErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "publish empty directory")
			}
		}
		return item, warn, nil
	}

	return item, "", nil
}

// publishMeta assembles the published meta block from the stored upload tag
// and file name.
func (s *PublishService) publishMeta(ctx context.Context, kind string) models.PublishMeta {
	var meta models.UploadMeta
	if err := s.store.GetUploadMeta(ctx, kind, &meta); err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("load upload meta", zap.String("kind", kind), zap.Error(err))
	}
	fileName, err := s.store.GetUploadFile(ctx, kind)
	if err != nil {
		s.logger.Warn("load upload file name", zap.String("kind", kind), zap.Error(err))
	}
	return models.PublishMeta{
		FileName:      fileName,
		Version:       meta.Version,
		EffectiveFrom: meta.EffectiveFrom,
	}
}

// publishFromUpload parses the stored upload for a kind and replaces the
// published payload.
func (s *PublishService) publishFromUpload(ctx context.Context, kind string) error {
	file, _, err := s.uploads.OpenUpload(kind)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck

	rows, err := routine.ReadSheet(file)
	if err != nil {
		return err
	}

	switch kind {
	case models.KindRoutine:
		return s.store.SetPublished(ctx, kind, models.RoutinePayload{
			Data:      routine.Normalize(rows),
			Meta:      s.publishMeta(ctx, kind),
			UpdatedAt: nowStamp(),
		})
	default:
		return s.store.SetPublished(ctx, kind, models.TeacherInfoPayload{
			Data:      routine.ParseTeacherInfo(rows),
			Meta:      s.publishMeta(ctx, kind),
			UpdatedAt: nowStamp(),
		})
	}
}

// Publish re-publishes from the request's arrays when present, otherwise
// from the latest stored uploads. Kinds with neither an array nor an upload
// are skipped.
func (s *PublishService) Publish(ctx context.Context, req PublishRequest) (models.PublishStatus, error) {
	if req.Routine != nil {
		if err := s.store.SetPublished(ctx, models.KindRoutine, models.RoutinePayload{
			Data:      req.Routine,
			Meta:      s.publishMeta(ctx, models.KindRoutine),
			UpdatedAt: nowStamp(),
		}); err != nil {
			return models.PublishStatus{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "publish routine")
		}
	} else if err := s.republishKind(ctx, models.KindRoutine); err != nil {
		return models.PublishStatus{}, err
	}

	if req.TeacherInfo != nil {
		if err := s.store.SetPublished(ctx, models.KindTeacherInfo, models.TeacherInfoPayload{
			Data:      req.TeacherInfo,
			Meta:      s.publishMeta(ctx, models.KindTeacherInfo),
			UpdatedAt: nowStamp(),
		}); err != nil {
			return models.PublishStatus{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "publish teacher directory")
		}
	} else if err := s.republishKind(ctx, models.KindTeacherInfo); err != nil {
		return models.PublishStatus{}, err
	}

	return s.Status(ctx)
}

func (s *PublishService) republishKind(ctx context.Context, kind string) error {
	key, err := s.uploads.FindUpload(kind)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "scan uploads")
	}
	if key == "" {
		return nil
	}
	if err := s.publishFromUpload(ctx, kind); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "stored "+kind+" upload could not be parsed")
	}
	return nil
}

// Status reports which payloads are currently published.
func (s *PublishService) Status(ctx context.Context) (models.PublishStatus, error) {
	routinePublished, err := s.store.IsPublished(ctx, models.KindRoutine)
	if err != nil {
		return models.PublishStatus{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check routine status")
	}
	tifPublished, err := s.store.IsPublished(ctx, models.KindTeacherInfo)
	if err != nil {
		return models.PublishStatus{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check directory status")
	}
	return models.PublishStatus{Routine: routinePublished, TeacherInfo: tifPublished}, nil
}

// Unpublish clears both published payloads. Raw uploads are kept.
func (s *PublishService) Unpublish(ctx context.Context) error {
	for _, kind := range []string{models.KindRoutine, models.KindTeacherInfo} {
		if err := s.store.DeletePublished(ctx, kind); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clear published payload")
		}
	}
	return nil
}

// Published returns the published payload for a name. Absence yields the
// empty payload, never an error: nothing-published is a state the clients
// render, not a failure.
func (s *PublishService) Published(ctx context.Context, name string) (interface{}, error) {
	switch name {
	case models.KindRoutine:
		payload := models.RoutinePayload{Data: []models.ClassRow{}}
		err := s.store.GetPublished(ctx, name, &payload)
		if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load published routine")
		}
		if payload.Data == nil {
			payload.Data = []models.ClassRow{}
		}
		s.reflectFileName(ctx, name, &payload.Meta)
		return payload, nil
	case models.KindTeacherInfo:
		payload := models.TeacherInfoPayload{Data: []models.TeacherInfo{}}
		err := s.store.GetPublished(ctx, name, &payload)
		if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load published directory")
		}
		if payload.Data == nil {
			payload.Data = []models.TeacherInfo{}
		}
		s.reflectFileName(ctx, name, &payload.Meta)
		return payload, nil
	default:
		return nil, appErrors.ErrNotFound
	}
}

// reflectFileName keeps meta.fileName in step with the current upload, so a
// re-uploaded file is visible even before a re-publish.
func (s *PublishService) reflectFileName(ctx context.Context, kind string, meta *models.PublishMeta) {
	fileName, err := s.store.GetUploadFile(ctx, kind)
	if err != nil {
		s.logger.Warn("load upload file name", zap.String("kind", kind), zap.Error(err))
		return
	}
	if fileName != "" {
		meta.FileName = fileName
	}
}

// PublishedRoutine is a typed convenience for the export paths.
func (s *PublishService) PublishedRoutine(ctx context.Context) (models.RoutinePayload, error) {
	payload := models.RoutinePayload{Data: []models.ClassRow{}}
	err := s.store.GetPublished(ctx, models.KindRoutine, &payload)
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		return payload, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load published routine")
	}
	return payload, nil
}

// Files lists the currently stored uploads.
func (s *PublishService) Files(ctx context.Context) ([]models.UploadItem, error) {
	items := []models.UploadItem{}
	for _, kind := range []string{models.KindRoutine, models.KindTeacherInfo} {
		key, err := s.uploads.FindUpload(kind)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "scan uploads")
		}
		if key == "" {
			continue
		}
		var meta models.UploadMeta
		if err := s.store.GetUploadMeta(ctx, kind, &meta); err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load upload meta")
		}
		items = append(items, models.UploadItem{Key: key, Kind: kind, Meta: meta})
	}
	return items, nil
}

// DeleteUpload removes the stored file, its bookkeeping, and the published
// payload for a kind.
func (s *PublishService) DeleteUpload(ctx context.Context, kind string) error {
	if !validKind(kind) {
		return appErrors.Clone(appErrors.ErrValidation, "kind must be routine or tif")
	}
	if err := s.uploads.DeleteUpload(kind); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete upload file")
	}
	if err := s.store.ClearUpload(ctx, kind); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clear upload bookkeeping")
	}
	if err := s.store.DeletePublished(ctx, kind); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clear published payload")
	}
	return nil
}
