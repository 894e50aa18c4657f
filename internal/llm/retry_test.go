package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// TestRetry_ErrorPolicy pins down which error kinds are retried and how
// many provider calls each scenario costs.
func TestRetry_ErrorPolicy(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	down := func() MockResponse {
		return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	}
	badJSON := func() MockResponse {
		return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	}

	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{ok},
			wantCalls: 1,
		},
		{
			name:      "transient failure then success",
			responses: []MockResponse{down(), ok},
			wantCalls: 2,
		},
		{
			name:      "unavailable exhausts all attempts",
			responses: []MockResponse{down(), down(), down()},
			wantCalls: 3,
			wantErr:   true,
		},
		{
			name:      "truncation is not retried",
			responses: []MockResponse{{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}}},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			// The queued success must never be reached: a second schema
			// violation ends the attempt.
			name:      "schema violation gets exactly one retry",
			responses: []MockResponse{badJSON(), badJSON(), ok},
			wantCalls: 2,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, retryConfig())

			_, err := p.Complete(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Complete() error = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_PreservesErrorKind(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Complete(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded to surface unchanged, got: %T", err)
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellationStopsRetrying(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Complete(ctx, Request{}); err == nil {
		t.Fatal("expected error after cancellation")
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
