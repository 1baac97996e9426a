package pubmed

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrNotInitialized = errors.New("pubmed client not initialized")

var globalClient *Client

func Init(config *Config, logger *logrus.Logger) {
	globalClient = NewClient(config, logger)
}

func FetchAbstracts(ctx context.Context, pmids []string) ([]Abstract, error) {
	if globalClient == nil {
		return nil, ErrNotInitialized
	}
	return globalClient.FetchAbstracts(ctx, pmids)
}
