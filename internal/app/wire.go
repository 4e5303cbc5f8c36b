//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"
	"transcribe-mate/internal/api/server"
	"transcribe-mate/internal/config"
)

// InitializeServer builds the backend from the selected providers
func InitializeServer(
	ctx context.Context,
	selection *config.ProviderSelection,
	keys *config.APIKeys,
	network *config.NetworkConfig,
	logger *zap.Logger,
) (*server.Server, error) {
	wire.Build(
		provideTranscriber,
		provideCleaner,
		provideSystemPrompt,
		provideBackends,
		provideServerConfig,
		server.NewServer,
	)
	return nil, nil
}
