package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/reservation-service/internal/config"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

// pngBytes returns a minimal payload that sniffs as image/png.
func pngBytes() []byte {
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return append(header, bytes.Repeat([]byte{0}, 64)...)
}

func jpegBytes() []byte {
	header := []byte{0xff, 0xd8, 0xff, 0xe0}
	return append(header, bytes.Repeat([]byte{0}, 64)...)
}

func gifBytes() []byte {
	return append([]byte("GIF89a"), bytes.Repeat([]byte{0}, 64)...)
}

func newUploadHarness(t *testing.T, maxSize int64) *UploadService {
	t.Helper()
	return NewUploadService(config.UploadConfig{Dir: t.TempDir(), MaxSizeBytes: maxSize})
}

func TestSaveAvatar(t *testing.T) {
	t.Run("accepts png, jpeg and gif", func(t *testing.T) {
		svc := newUploadHarness(t, 1024)

		for name, data := range map[string][]byte{
			"a.png": pngBytes(),
			"b.jpg": jpegBytes(),
			"c.gif": gifBytes(),
		} {
			path, err := svc.SaveAvatar(7, AvatarUpload{FileName: name, Data: data})
			require.NoError(t, err, name)

			stored, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, data, stored)
		}
	})

	t.Run("filename embeds the owner id", func(t *testing.T) {
		svc := newUploadHarness(t, 1024)

		path, err := svc.SaveAvatar(42, AvatarUpload{FileName: "me.png", Data: pngBytes()})
		require.NoError(t, err)

		base := filepath.Base(path)
		assert.True(t, len(base) > 3 && base[:3] == strconv.Itoa(42)+"_", "got %s", base)
		assert.Equal(t, ".png", filepath.Ext(base))
	})

	t.Run("extension follows the sniffed type, not the client name", func(t *testing.T) {
		svc := newUploadHarness(t, 1024)

		path, err := svc.SaveAvatar(7, AvatarUpload{FileName: "x.jpg", Data: gifBytes()})
		require.NoError(t, err)
		assert.Equal(t, ".gif", filepath.Ext(path))
	})

	t.Run("rejects empty upload", func(t *testing.T) {
		svc := newUploadHarness(t, 1024)

		_, err := svc.SaveAvatar(7, AvatarUpload{FileName: "a.png"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("rejects oversized upload before writing", func(t *testing.T) {
		svc := newUploadHarness(t, 16)

		_, err := svc.SaveAvatar(7, AvatarUpload{FileName: "a.png", Data: pngBytes()})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("rejects non-image content regardless of extension", func(t *testing.T) {
		svc := newUploadHarness(t, 1024)

		_, err := svc.SaveAvatar(7, AvatarUpload{FileName: "fake.png", Data: []byte("<html></html>")})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})
}

func TestRemove(t *testing.T) {
	svc := newUploadHarness(t, 1024)

	path, err := svc.SaveAvatar(7, AvatarUpload{FileName: "a.png", Data: pngBytes()})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(path))
	// removing again is a no-op
	assert.NoError(t, svc.Remove(path))
	assert.NoError(t, svc.Remove(""))
}

func TestResolve(t *testing.T) {
	svc := newUploadHarness(t, 1024)

	path, err := svc.SaveAvatar(7, AvatarUpload{FileName: "a.png", Data: pngBytes()})
	require.NoError(t, err)

	t.Run("resolves stored filename", func(t *testing.T) {
		resolved, err := svc.Resolve(filepath.Base(path))
		require.NoError(t, err)
		assert.Equal(t, path, resolved)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		_, err := svc.Resolve("../secrets.txt")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("missing file yields not found", func(t *testing.T) {
		_, err := svc.Resolve("missing.png")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})
}
