package store

import (
	"encoding/json"
	"log/slog"

	"github.com/greenpromise/emissions-tracker/internal/entity"
)

// resultKey is the single slot holding the latest analysis. Each run
// replaces the previous one.
const resultKey = "emissions.analysis.latest"

// KV is the minimal storage capability Results needs. *Store satisfies
// it; tests substitute in-memory fakes.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Results persists the latest AnalysisResult. Persistence is a
// convenience here, so write failures are logged and swallowed.
type Results struct {
	store  KV
	logger *slog.Logger
}

func NewResults(store KV, logger *slog.Logger) *Results {
	if logger == nil {
		logger = slog.Default()
	}
	return &Results{store: store, logger: logger}
}

// Save writes the result, replacing any prior one. Failures never
// propagate; the analysis already succeeded.
func (r *Results) Save(result *entity.AnalysisResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn("store.save.marshal_error", "error", err)
		return
	}
	if err := r.store.Set(resultKey, payload); err != nil {
		r.logger.Warn("store.save.error", "error", err)
		return
	}
	r.logger.Info("store.save.ok", "bytes", len(payload), "rows", len(result.Rows))
}

// Load returns the prior result, or nil when none is stored or the
// stored payload is unusable.
func (r *Results) Load() *entity.AnalysisResult {
	payload, err := r.store.Get(resultKey)
	if err != nil {
		r.logger.Warn("store.load.error", "error", err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}

	var result entity.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		r.logger.Warn("store.load.corrupt", "error", err)
		return nil
	}
	if len(result.Rows) == 0 {
		return nil
	}
	return &result
}

// Reset drops the stored result.
func (r *Results) Reset() error {
	return r.store.Remove(resultKey)
}
