package clipboard

import (
	"github.com/atotto/clipboard"
	apperrors "transcribe-mate/internal/app/errors"
)

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = apperrors.New("clipboard is not supported on this system")

// Writer places text on a clipboard
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API).
type System struct{}

// NewSystem returns the system clipboard writer
func NewSystem() System {
	return System{}
}

// WriteAll implements Writer
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return apperrors.Wrap(err, "failed to write clipboard")
	}
	return nil
}
