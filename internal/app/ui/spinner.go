package ui

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// SpinnerConfig controls where and whether spinners render
type SpinnerConfig struct {
	Enabled bool
	Writer  io.Writer
}

// Spinner shows an indeterminate progress line while a backend call runs
type Spinner struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
	once      sync.Once
}

// StartSpinner renders message with a spinner and elapsed time until Stop
func StartSpinner(config SpinnerConfig, message string) *Spinner {
	if !config.Enabled {
		return &Spinner{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	bar := container.New(0,
		mpb.SpinnerStyle(),
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name(message+" ", decor.WC{W: len(message) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO),
		),
	)

	return &Spinner{
		container: container,
		bar:       bar,
		enabled:   true,
	}
}

// Stop completes the spinner and waits for the last render. It is safe to
// call more than once.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.once.Do(func() {
		s.bar.SetTotal(-1, true)
		s.container.Wait()
	})
}

// Run shows a spinner while fn executes
func Run(config SpinnerConfig, message string, fn func() error) error {
	s := StartSpinner(config, message)
	defer s.Stop()
	return fn()
}
