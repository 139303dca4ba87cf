package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestSaveFileStoresUnderOwnerDirectory(t *testing.T) {
	dir := t.TempDir()
	owner := uuid.New()
	storage := NewStorageService(dir, 1024)
	require.NoError(t, storage.EnsureUploadDir())

	path, err := storage.SaveFile(newFileHeader(t, "CV.PDF", []byte("%PDF-1.4")), owner, "resume")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, owner.String()), filepath.Dir(path))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := storage.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, storage.DeleteFile(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, storage.DeleteFile(path), "deleting a missing file is not an error")
}

func TestSaveFileValidation(t *testing.T) {
	storage := NewStorageService(t.TempDir(), 4)

	_, err := storage.SaveFile(newFileHeader(t, "cv.docx", []byte("doc")), uuid.New(), "resume")
	assertKind(t, err, KindValidation)

	_, err = storage.SaveFile(newFileHeader(t, "cv.pdf", []byte("too large")), uuid.New(), "resume")
	assertKind(t, err, KindValidation)
}
