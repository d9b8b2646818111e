package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/campus-routine/routine-api/pkg/errors"
)

// Redis key layout for the publication store. Each published payload is one
// JSON blob, so readers always see a complete document, never a half-written
// one.
const (
	publishedKeyPrefix  = "published:"
	uploadMetaKeyPrefix = "upload:%s:meta"
	uploadFileKeyPrefix = "upload:%s:file"
)

// PublicationRepository stores published payloads and upload bookkeeping in
// Redis.
type PublicationRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPublicationRepository constructs a PublicationRepository.
func NewPublicationRepository(client *redis.Client, logger *zap.Logger) *PublicationRepository {
	return &PublicationRepository{client: client, logger: logger}
}

func publishedKey(kind string) string  { return publishedKeyPrefix + kind }
func uploadMetaKey(kind string) string { return fmt.Sprintf(uploadMetaKeyPrefix, kind) }
func uploadFileKey(kind string) string { return fmt.Sprintf(uploadFileKeyPrefix, kind) }

// SetPublished replaces the published payload for a kind.
func (r *PublicationRepository) SetPublished(ctx context.Context, kind string, payload interface{}) error {
	return r.setJSON(ctx, publishedKey(kind), payload)
}

// GetPublished loads the published payload for a kind into dest. Returns
// appErrors.ErrCacheMiss when nothing is published.
func (r *PublicationRepository) GetPublished(ctx context.Context, kind string, dest interface{}) error {
	return r.getJSON(ctx, publishedKey(kind), dest)
}

// DeletePublished removes the published payload for a kind.
func (r *PublicationRepository) DeletePublished(ctx context.Context, kind string) error {
	return r.delete(ctx, publishedKey(kind))
}

// IsPublished reports whether a payload exists for a kind.
func (r *PublicationRepository) IsPublished(ctx context.Context, kind string) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	n, err := r.client.Exists(ctx, publishedKey(kind)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", publishedKey(kind), err)
	}
	return n > 0, nil
}

// SetUploadMeta stores the version/effective-date tag for a kind's upload.
func (r *PublicationRepository) SetUploadMeta(ctx context.Context, kind string, meta interface{}) error {
	return r.setJSON(ctx, uploadMetaKey(kind), meta)
}

// GetUploadMeta loads the stored upload tag for a kind into dest.
func (r *PublicationRepository) GetUploadMeta(ctx context.Context, kind string, dest interface{}) error {
	return r.getJSON(ctx, uploadMetaKey(kind), dest)
}

// SetUploadFile records the original file name of a kind's saved upload.
func (r *PublicationRepository) SetUploadFile(ctx context.Context, kind, fileName string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, uploadFileKey(kind), fileName, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", uploadFileKey(kind), err)
	}
	return nil
}

// GetUploadFile returns the original file name of a kind's saved upload, ""
// when no upload exists.
func (r *PublicationRepository) GetUploadFile(ctx context.Context, kind string) (string, error) {
	if r.client == nil {
		return "", nil
	}
	v, err := r.client.Get(ctx, uploadFileKey(kind)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", uploadFileKey(kind), err)
	}
	return v, nil
}

// ClearUpload removes the upload bookkeeping for a kind.
func (r *PublicationRepository) ClearUpload(ctx context.Context, kind string) error {
	if err := r.delete(ctx, uploadMetaKey(kind)); err != nil {
		return err
	}
	return r.delete(ctx, uploadFileKey(kind))
}

func (r *PublicationRepository) setJSON(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return appErrors.New("CACHE_UNAVAILABLE", http.StatusInternalServerError, "publication store unavailable")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *PublicationRepository) getJSON(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (r *PublicationRepository) delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}
