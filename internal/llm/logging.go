package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avinashb/quizmind/internal/store"
)

// loggingProvider decorates a Provider and records every call as an
// event in the store.
type loggingProvider struct {
	inner  Provider
	events store.EventRepo
}

// WithLogging wraps a Provider with event logging. A nil repo disables
// logging.
func WithLogging(p Provider, events store.EventRepo) Provider {
	if events == nil {
		return p
	}
	return &loggingProvider{inner: p, events: events}
}

func (l *loggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Complete(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Never fail the request because logging failed.
	if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log provider request: %v\n", logErr)
	}

	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
