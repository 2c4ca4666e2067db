package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadKeyIsTenantScoped(t *testing.T) {
	assert.Equal(t, "catalog-import:upload:t1:abc", uploadKey("t1", "abc"))
	assert.NotEqual(t, uploadKey("t1", "abc"), uploadKey("t2", "abc"))
}

func TestUploadStore_WithoutRedis(t *testing.T) {
	store := NewUploadStore(nil, 0)
	assert.Equal(t, DefaultUploadTTL, store.ttl)

	_, err := store.Save(context.Background(), "t1", Upload{FileName: "a.csv"})
	assert.Error(t, err)

	_, err = store.Get(context.Background(), "t1", "abc")
	assert.ErrorIs(t, err, ErrUploadNotFound)

	assert.NoError(t, store.Delete(context.Background(), "t1", "abc"))
}
