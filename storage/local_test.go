package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	data := []byte("%PDF-1.4 fake certificate")
	key, err := store.Save(ctx, "certificate.pdf", data, "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	url, err := store.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, url)
}

func TestLocalStorageUniqueKeys(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	key1, err := store.Save(ctx, "same-name.pdf", []byte("one"), "application/pdf")
	require.NoError(t, err)
	key2, err := store.Save(ctx, "same-name.pdf", []byte("two"), "application/pdf")
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestLocalStorageEmptyKeyURL(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	_, err := store.URL(context.Background(), "")
	assert.Error(t, err)
}
