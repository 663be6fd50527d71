package model

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// Resume is the binary artifact sent along with a posting for analysis.
type Resume struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadResume reads a resume from disk. The content type is derived from the extension.
func LoadResume(path string) (Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resume{}, fmt.Errorf("model: reading resume: %w", err)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return Resume{
		Name:        filepath.Base(path),
		ContentType: ct,
		Data:        data,
	}, nil
}
