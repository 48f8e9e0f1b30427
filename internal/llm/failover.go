package llm

import (
	"context"
	"log/slog"

	"github.com/greenpromise/emissions-tracker/internal/common"
)

// Failover chains two providers: it tries the primary and, when that
// call fails, falls back to the secondary exactly once. Either slot may
// be nil.
type Failover struct {
	Primary   Provider
	Secondary Provider
	logger    *slog.Logger
}

func NewFailover(primary, secondary Provider, logger *slog.Logger) *Failover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Failover{Primary: primary, Secondary: secondary, logger: logger}
}

func (f *Failover) Name() string {
	if f.Primary != nil {
		return f.Primary.Name()
	}
	if f.Secondary != nil {
		return f.Secondary.Name()
	}
	return "none"
}

// Configured reports whether at least one provider is wired in.
func (f *Failover) Configured() bool {
	return f != nil && (f.Primary != nil || f.Secondary != nil)
}

func (f *Failover) Generate(ctx context.Context, req Request) (string, error) {
	if !f.Configured() {
		return "", common.WrapError(common.ErrConfiguration, "no inference provider configured")
	}
	if f.Primary == nil {
		return f.Secondary.Generate(ctx, req)
	}

	out, err := f.Primary.Generate(ctx, req)
	if err == nil {
		return out, nil
	}
	if f.Secondary == nil {
		return "", err
	}

	f.logger.Warn("llm.failover",
		slog.String("primary", f.Primary.Name()),
		slog.String("secondary", f.Secondary.Name()),
		slog.String("error", err.Error()))
	return f.Secondary.Generate(ctx, req)
}
