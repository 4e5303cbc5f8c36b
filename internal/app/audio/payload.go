package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Payload is one audio upload: a recording assembled in memory or a file
// chosen by the user.
type Payload struct {
	Name        string
	ContentType string
	Body        io.Reader
	Size        int64

	closer io.Closer
}

// NewPayload wraps in-memory audio data.
func NewPayload(name string, data []byte) *Payload {
	return &Payload{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
	}
}

// OpenFile opens path as a payload; the file is streamed unmodified.
// Callers must Close the payload.
func OpenFile(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	return &Payload{
		Name:        filepath.Base(path),
		ContentType: mtype.String(),
		Body:        f,
		Size:        info.Size(),
		closer:      f,
	}, nil
}

// Close releases the underlying file, if any.
func (p *Payload) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
