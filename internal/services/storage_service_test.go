// internal/services/storage_service_test.go
package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenwear/storefront-backend/internal/config"
)

func localStorageService(t *testing.T) *StorageService {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	svc, err := NewStorageService(&config.Config{
		Store: config.StoreConfig{BaseURL: "http://localhost:8080"},
	})
	require.NoError(t, err)
	return svc
}

func TestLocalUploadWritesFile(t *testing.T) {
	svc := localStorageService(t)

	content := []byte("jpeg payload")
	result, err := svc.uploadToLocal(content, "products/20260830_ab12cd34.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/uploads/products/20260830_ab12cd34.jpg", result.URL)
	assert.Equal(t, int64(len(content)), result.Size)

	written, err := os.ReadFile(filepath.Join("uploads", "products", "20260830_ab12cd34.jpg"))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestLocalDeleteRemovesFile(t *testing.T) {
	svc := localStorageService(t)

	_, err := svc.uploadToLocal([]byte("jpeg payload"), "products/gone.jpg", "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile("products/gone.jpg"))

	_, err = os.Stat(filepath.Join("uploads", "products", "gone.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting an absent key is not an error.
	assert.NoError(t, svc.DeleteFile("products/never-existed.jpg"))
}
