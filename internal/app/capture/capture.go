// Package capture turns user input into a transcript: a microphone
// recording, an uploaded audio file or pasted text.
package capture

import (
	"context"
	"strings"

	"transcribe-mate/internal/app/audio"
	apperrors "transcribe-mate/internal/app/errors"
)

// Kind names where a transcript came from
type Kind string

const (
	KindRecording Kind = "recording"
	KindFile      Kind = "file"
	KindPaste     Kind = "paste"
)

// Result is the raw output of a source: audio still to be transcribed, or
// text that is already the transcript.
type Result struct {
	Payload *audio.Payload
	Text    string
}

// Source produces one capture result
type Source interface {
	Kind() Kind
	Capture(ctx context.Context) (Result, error)
}

// Transcriber turns uploaded audio into text
type Transcriber interface {
	TranscribeAudio(ctx context.Context, payload *audio.Payload) (string, error)
}

// Resolve captures from src and, for audio, submits it for transcription.
// Payloads are closed once submitted.
func Resolve(ctx context.Context, src Source, transcriber Transcriber) (string, error) {
	result, err := src.Capture(ctx)
	if err != nil {
		return "", err
	}
	if result.Payload == nil {
		return result.Text, nil
	}
	defer result.Payload.Close()

	text, err := transcriber.TranscribeAudio(ctx, result.Payload)
	if err != nil {
		return "", apperrors.Wrap(err, "transcription failed")
	}
	return text, nil
}

// Paste uses typed or pasted text as the transcript directly
type Paste struct {
	Text string
}

// NewPaste validates text and returns a paste source. Whitespace-only text
// is rejected.
func NewPaste(text string) (*Paste, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("Nothing to load: transcript is empty")
	}
	return &Paste{Text: text}, nil
}

func (p *Paste) Kind() Kind { return KindPaste }

// Capture returns the text unchanged
func (p *Paste) Capture(ctx context.Context) (Result, error) {
	return Result{Text: p.Text}, nil
}

// File submits a user-chosen audio file unmodified
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

func (f *File) Kind() Kind { return KindFile }

// Capture opens the file for upload
func (f *File) Capture(ctx context.Context) (Result, error) {
	payload, err := audio.OpenFile(f.Path)
	if err != nil {
		return Result{}, apperrors.Wrapf(err, "failed to open %s", f.Path)
	}
	return Result{Payload: payload}, nil
}
