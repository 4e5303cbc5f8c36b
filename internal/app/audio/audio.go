package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"transcribe-mate/internal/app/model"
)

// GetAudioDuration returns the duration of an audio file in whole seconds.
func GetAudioDuration(ctx context.Context, filePath string) (int, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return parseDuration(string(output))
}

func parseDuration(output string) (int, error) {
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}

// Is16kHzWavFile reports whether filePath holds 16kHz PCM audio, the input
// whisper.cpp expects.
func Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}
	return is16kHzPCM(output)
}

func is16kHzPCM(probeJSON []byte) (bool, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(probeJSON, &probeOutput); err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 {
			return true, nil
		}
	}
	return false, nil
}

// ConvertTo16kHzWav converts any ffmpeg-readable input to a 16kHz WAV next to
// the input file and returns the new path.
func ConvertTo16kHzWav(ctx context.Context, inputFilePath string) (string, error) {
	outputFilePath := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"
	if _, err := os.Stat(outputFilePath); err == nil {
		return outputFilePath, nil
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", inputFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputFilePath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}
	return outputFilePath, nil
}
