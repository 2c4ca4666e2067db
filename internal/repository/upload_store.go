package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultUploadTTL is how long a previewed file can be committed by token
const DefaultUploadTTL = 30 * time.Minute

// ErrUploadNotFound is returned for unknown or expired upload tokens
var ErrUploadNotFound = errors.New("upload not found or expired")

// Upload is a previewed file kept for a later commit
type Upload struct {
	FileName   string    `json:"fileName"`
	Data       []byte    `json:"data"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// UploadStore keeps previewed files in Redis so the commit replays the exact
// bytes that were previewed.
type UploadStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewUploadStore(client *redis.Client, ttl time.Duration) *UploadStore {
	if ttl <= 0 {
		ttl = DefaultUploadTTL
	}
	return &UploadStore{redis: client, ttl: ttl}
}

func uploadKey(tenantID, token string) string {
	return fmt.Sprintf("catalog-import:upload:%s:%s", tenantID, token)
}

// Save stores the upload and returns its token
func (s *UploadStore) Save(ctx context.Context, tenantID string, upload Upload) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("upload store not configured")
	}
	token := uuid.New().String()
	data, err := json.Marshal(upload)
	if err != nil {
		return "", err
	}
	if err := s.redis.Set(ctx, uploadKey(tenantID, token), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return token, nil
}

// Get loads an upload by token. Tokens are scoped to the tenant that created them.
func (s *UploadStore) Get(ctx context.Context, tenantID, token string) (*Upload, error) {
	if s.redis == nil {
		return nil, ErrUploadNotFound
	}
	data, err := s.redis.Get(ctx, uploadKey(tenantID, token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load upload: %w", err)
	}

	var upload Upload
	if err := json.Unmarshal(data, &upload); err != nil {
		return nil, fmt.Errorf("failed to decode upload: %w", err)
	}
	return &upload, nil
}

// Delete removes an upload once it has been committed
func (s *UploadStore) Delete(ctx context.Context, tenantID, token string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, uploadKey(tenantID, token)).Err()
}
