package llmkit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(maxRetries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries:        maxRetries,
		BaseDelay:         0.001,
		MaxDelay:          0.01,
		BackoffMultiplier: 2.0,
	}
}

func TestRetrySuccessFirstTry(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastPolicy(3), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" || calls != 1 {
		t.Errorf("got result=%q calls=%d", result, calls)
	}
}

func TestRetryRetryableError(t *testing.T) {
	calls := 0
	serverErr := &ServerError{ProviderError: ProviderError{
		BackendError: BackendError{Message: "overloaded"}, StatusCode: 500, Retryable: true,
	}}
	result, err := Retry(context.Background(), fastPolicy(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", serverErr
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "recovered" || calls != 3 {
		t.Errorf("got result=%q calls=%d, want recovered after 3 calls", result, calls)
	}
}

func TestRetryNonRetryableError(t *testing.T) {
	calls := 0
	authErr := &AuthenticationError{ProviderError: ProviderError{
		BackendError: BackendError{Message: "bad key"}, StatusCode: 401,
	}}
	_, err := Retry(context.Background(), fastPolicy(3), func(ctx context.Context) (string, error) {
		calls++
		return "", authErr
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Errorf("non-retryable error was retried: %d calls", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	calls := 0
	serverErr := &ServerError{ProviderError: ProviderError{
		BackendError: BackendError{Message: "still down"}, StatusCode: 503, Retryable: true,
	}}
	_, err := Retry(context.Background(), fastPolicy(2), func(ctx context.Context) (string, error) {
		calls++
		return "", serverErr
	})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if calls != 3 { // initial + 2 retries
		t.Errorf("got %d calls, want 3", calls)
	}
}

func TestRetryOnRetryCallback(t *testing.T) {
	policy := fastPolicy(2)
	var attempts []int
	policy.OnRetry = func(err error, attempt int, delay time.Duration) {
		attempts = append(attempts, attempt)
	}

	serverErr := &ServerError{ProviderError: ProviderError{
		BackendError: BackendError{Message: "flaky"}, StatusCode: 500, Retryable: true,
	}}
	calls := 0
	if _, err := Retry(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", serverErr
		}
		return "ok", nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attempts) != 1 || attempts[0] != 1 {
		t.Errorf("OnRetry attempts = %v, want [1]", attempts)
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := RetryPolicy{MaxRetries: 3, BaseDelay: 10, MaxDelay: 10, BackoffMultiplier: 1}
	serverErr := &ServerError{ProviderError: ProviderError{
		BackendError: BackendError{Message: "down"}, StatusCode: 500, Retryable: true,
	}}
	_, err := Retry(ctx, policy, func(ctx context.Context) (string, error) {
		return "", serverErr
	})
	var abortErr *AbortError
	if !errors.As(err, &abortErr) {
		t.Fatalf("expected AbortError, got %v", err)
	}
}

func TestRetryAfterExceedsMaxDelay(t *testing.T) {
	retryAfter := 120.0
	rlErr := &RateLimitError{ProviderError: ProviderError{
		BackendError: BackendError{Message: "slow down"}, StatusCode: 429,
		Retryable: true, RetryAfter: &retryAfter,
	}}
	calls := 0
	_, err := Retry(context.Background(), fastPolicy(3), func(ctx context.Context) (string, error) {
		calls++
		return "", rlErr
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Errorf("should fail immediately when Retry-After exceeds max delay, got %d calls", calls)
	}
}

func TestDelayGrowth(t *testing.T) {
	policy := RetryPolicy{BaseDelay: 1, MaxDelay: 60, BackoffMultiplier: 2}
	d0 := policy.Delay(0)
	d2 := policy.Delay(2)
	if d0 != time.Second || d2 != 4*time.Second {
		t.Errorf("delays = %v, %v; want 1s, 4s", d0, d2)
	}
	d10 := policy.Delay(10)
	if d10 != 60*time.Second {
		t.Errorf("delay not capped at max: %v", d10)
	}
}

func TestRetryMiddleware(t *testing.T) {
	mock := &mockBackend{name: "flaky"}
	serverErr := &ServerError{ProviderError: ProviderError{
		BackendError: BackendError{Message: "hiccup"}, StatusCode: 500, Retryable: true,
	}}
	mock.err = serverErr

	client := NewClient(
		WithBackend("flaky", mock),
		WithMiddleware(RetryMiddleware(fastPolicy(2))),
	)

	_, err := client.ChatCompletion(context.Background(), Request{Model: "m"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if mock.calls != 3 {
		t.Errorf("middleware made %d calls, want 3", mock.calls)
	}
}
