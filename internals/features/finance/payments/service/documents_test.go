package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndicapp_backend/internals/configs"
)

func TestSaveDocument(t *testing.T) {
	prev := configs.UploadsDir
	configs.UploadsDir = filepath.Join(t.TempDir(), "pdfs")
	t.Cleanup(func() { configs.UploadsDir = prev })

	url, err := SaveDocument("avis-client-test.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avis-client-test.pdf", url)

	got, err := os.ReadFile(filepath.Join(configs.UploadsDir, "avis-client-test.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), got)
}
