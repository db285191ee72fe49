package service

import (
	"os"
	"path/filepath"

	"syndicapp_backend/internals/configs"
)

// SaveDocument persists a rendered PDF under the uploads directory and
// returns the public URL served by the /uploads static mount.
func SaveDocument(name string, data []byte) (string, error) {
	if err := os.MkdirAll(configs.UploadsDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(configs.UploadsDir, name), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
