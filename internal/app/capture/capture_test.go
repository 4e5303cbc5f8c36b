package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "transcribe-mate/internal/app/errors"
	"transcribe-mate/internal/app/testutil"
)

func TestNewPaste(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "plain text", text: "hello   world"},
		{name: "surrounding whitespace kept", text: "  hi  "},
		{name: "empty", text: "", wantErr: true},
		{name: "whitespace only", text: " \n\t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewPaste(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)

			backend := testutil.NewMockBackend(t)
			text, err := Resolve(context.Background(), src, backend)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
			backend.AssertNotCalled(t, "TranscribeAudio", mock.Anything, mock.Anything)
		})
	}
}

func TestFile_Resolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interview.mp3")
	content := []byte("ID3\x03\x00\x00\x00\x00\x00\x00 fake mp3")
	require.NoError(t, os.WriteFile(path, content, 0644))

	backend := testutil.NewMockBackend(t)
	backend.On("TranscribeAudio", mock.Anything, "interview.mp3").Return("the interview", nil)

	src := NewFile(path)
	assert.Equal(t, KindFile, src.Kind())

	text, err := Resolve(context.Background(), src, backend)
	require.NoError(t, err)
	assert.Equal(t, "the interview", text)
	assert.Equal(t, [][]byte{content}, backend.Uploads())
	backend.AssertExpectations(t)
}

func TestFile_Missing(t *testing.T) {
	backend := testutil.NewMockBackend(t)
	_, err := Resolve(context.Background(), NewFile("/nonexistent/file.wav"), backend)
	assert.Error(t, err)
	backend.AssertNotCalled(t, "TranscribeAudio", mock.Anything, mock.Anything)
}

func TestResolve_TranscriptionFailure(t *testing.T) {
	backend := testutil.NewMockBackend(t)
	backend.On("TranscribeAudio", mock.Anything, "recording.wav").Return("", apperrors.ErrBackendFailure)

	rec := NewRecording(testutil.NewFakeCapture([]byte("pcm")))
	require.NoError(t, rec.Start(context.Background()))

	_, err := Resolve(context.Background(), rec, backend)
	assert.ErrorIs(t, err, apperrors.ErrBackendFailure)
}

func TestRecording_Lifecycle(t *testing.T) {
	device := testutil.NewFakeCapture([]byte("pcm samples"))
	rec := NewRecording(device)
	assert.Equal(t, KindRecording, rec.Kind())

	_, err := rec.Capture(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotRecording)

	require.NoError(t, rec.Start(context.Background()))
	assert.True(t, rec.Active())
	assert.True(t, device.IsActive())
	assert.ErrorIs(t, rec.Start(context.Background()), apperrors.ErrBusy)

	backend := testutil.NewMockBackend(t)
	backend.On("TranscribeAudio", mock.Anything, "recording.wav").Return("spoken words", nil)

	text, err := Resolve(context.Background(), rec, backend)
	require.NoError(t, err)
	assert.Equal(t, "spoken words", text)
	assert.False(t, rec.Active())
	assert.False(t, device.IsActive(), "device must be released after stop")
	assert.Equal(t, [][]byte{[]byte("pcm samples")}, backend.Uploads())
}

func TestRecording_StartDenied(t *testing.T) {
	device := testutil.NewFakeCapture(nil)
	device.StartErr = apperrors.ErrPermissionDenied

	rec := NewRecording(device)
	err := rec.Start(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	assert.False(t, rec.Active())
}

func TestRecording_Abort(t *testing.T) {
	device := testutil.NewFakeCapture([]byte("pcm"))
	rec := NewRecording(device)

	rec.Abort()
	require.NoError(t, rec.Start(context.Background()))
	rec.Abort()

	assert.False(t, rec.Active())
	assert.Equal(t, 1, device.Aborted)
	_, err := rec.Capture(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotRecording)
}
