package webhook

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// noopProvider accepts everything. Used in development so the webhook
// routes stay exercisable without platform credentials.
type noopProvider struct {
	logger *zap.Logger
}

// NewNoop creates the no-op provider.
func NewNoop(logger *zap.Logger) Provider {
	return &noopProvider{logger: logger}
}

func (p *noopProvider) Name() string { return "noop" }

func (p *noopProvider) Verify(params url.Values) (string, error) {
	return params.Get("hub.challenge"), nil
}

func (p *noopProvider) HandleMessage(ctx context.Context, payload []byte) error {
	p.logger.Debug("noop webhook payload", zap.Int("bytes", len(payload)))
	return nil
}
