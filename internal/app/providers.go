package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"transcribe-mate/internal/api/server"
	"transcribe-mate/internal/app/api"
	"transcribe-mate/internal/app/api/gemini"
	"transcribe-mate/internal/app/api/openai"
	"transcribe-mate/internal/app/api/openai/chat"
	"transcribe-mate/internal/app/api/openai/whisper"
	"transcribe-mate/internal/app/api/whisper_cpp"
	"transcribe-mate/internal/app/prompt"
	"transcribe-mate/internal/config"
)

// SystemPrompt is the default cleaning instruction served by the backend
type SystemPrompt string

// provideTranscriber selects OpenAI Whisper or a local whisper.cpp build
func provideTranscriber(selection *config.ProviderSelection, keys *config.APIKeys, logger *zap.Logger) (api.Transcriber, error) {
	switch selection.Transcriber {
	case config.TranscriberWhisperCpp:
		return whisper_cpp.NewLocalTranscriber(
			selection.WhisperCppBinary,
			selection.WhisperCppModel,
			selection.WhisperLanguage,
			logger.Named("whisper_cpp"),
		), nil
	case config.TranscriberOpenAI:
		client, err := openai.NewClient(keys.OpenAI, selection.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return whisper.NewRemoteTranscriber(client, selection.WhisperModel), nil
	default:
		return nil, fmt.Errorf("unknown transcriber %q", selection.Transcriber)
	}
}

// provideCleaner selects the Gemini or OpenAI chat cleaner
func provideCleaner(ctx context.Context, selection *config.ProviderSelection, keys *config.APIKeys) (api.Cleaner, error) {
	switch selection.Cleaner {
	case config.CleanerGemini:
		return gemini.NewCleaner(ctx, keys.Gemini, selection.GeminiModel)
	case config.CleanerOpenAI:
		client, err := openai.NewClient(keys.OpenAI, selection.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return chat.NewCleaner(client, selection.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown cleaner %q", selection.Cleaner)
	}
}

// provideSystemPrompt reads SYSTEM_PROMPT_FILE or falls back to the embedded prompt
func provideSystemPrompt(selection *config.ProviderSelection) (SystemPrompt, error) {
	text, err := prompt.Load(selection.SystemPromptFile)
	if err != nil {
		return "", err
	}
	return SystemPrompt(text), nil
}

func provideBackends(selection *config.ProviderSelection, transcriber api.Transcriber, cleaner api.Cleaner, systemPrompt SystemPrompt) server.Backends {
	return server.Backends{
		Transcriber:     transcriber,
		Cleaner:         cleaner,
		DefaultPrompt:   string(systemPrompt),
		TranscriberName: selection.Transcriber,
		CleanerName:     selection.Cleaner,
	}
}

func provideServerConfig(network *config.NetworkConfig) server.Config {
	return server.Config{
		Host:         network.Host,
		Port:         network.Port,
		ReadTimeout:  config.DefaultTranscribeTimeout,
		WriteTimeout: config.DefaultTranscribeTimeout,
		IdleTimeout:  config.DefaultCleanTimeout,
		Environment:  network.Environment,
		FrontendURL:  network.FrontendURL,
		MaxUploadMB:  config.MaxUploadSizeMB,
	}
}
