package cmd

import (
	"fmt"

	"github.com/longkey1/chatc/internal/backend/httpchat"
	"github.com/longkey1/chatc/internal/chatc/config"
	"go.uber.org/zap"
)

// newBackend creates the HTTP chat backend based on the configuration
func newBackend(cfg *config.Config, logger *zap.Logger) (*httpchat.Client, error) {
	client, err := httpchat.New(cfg, httpchat.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating backend client: %w", err)
	}
	return client, nil
}
