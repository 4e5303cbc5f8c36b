package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultUploadSuffix is used when an upload has no usable extension
const DefaultUploadSuffix = ".webm"

// UploadSuffix returns the extension to give a temp copy of filename
func UploadSuffix(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" || ext == "." {
		return DefaultUploadSuffix
	}
	return strings.ToLower(ext)
}

// WriteTempUpload copies r into a new temp file named after filename's
// extension. The returned cleanup removes the file.
func WriteTempUpload(r io.Reader, filename string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "tmate-upload-*"+UploadSuffix(filename))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	return tmp.Name(), cleanup, nil
}

// ReadOutputFile reads the specified output file and returns its text content.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}
