package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/future-self-ai/backend/internal/llm"
)

var (
	// ErrBudgetExhausted means the per-minute request budget is spent;
	// no provider was contacted.
	ErrBudgetExhausted = errors.New("request budget exhausted")
	// ErrNoProviders means no provider produced a usable response.
	ErrNoProviders = errors.New("no provider available")
)

// Dispatcher sends one prompt to the first provider that answers. It
// owns the outbound request budget: a fixed 60-second window shared by
// all providers, checked before any network call.
type Dispatcher struct {
	providers []llm.Provider
	timeout   time.Duration

	mu          sync.Mutex
	budget      int
	windowStart time.Time
	used        int
	now         func() time.Time
}

// NewDispatcher builds a dispatcher over providers, tried in order.
// budget <= 0 disables rate limiting; timeout <= 0 means no per-call
// deadline beyond the caller's context.
func NewDispatcher(providers []llm.Provider, budget int, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		providers: providers,
		timeout:   timeout,
		budget:    budget,
		now:       time.Now,
	}
}

// take consumes one unit of budget, rolling the window when 60 seconds
// have passed. It reports false when the window is spent.
func (d *Dispatcher) take() bool {
	if d.budget <= 0 {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Sub(d.windowStart) >= time.Minute {
		d.windowStart = now
		d.used = 0
	}
	if d.used >= d.budget {
		return false
	}
	d.used++
	return true
}

// Generate sends the request to each provider in priority order and
// returns the first non-empty response. Each provider gets a single
// attempt under the per-call timeout. An exhausted budget returns
// ErrBudgetExhausted before any network traffic.
func (d *Dispatcher) Generate(ctx context.Context, req llm.Request) (string, error) {
	if len(d.providers) == 0 {
		return "", ErrNoProviders
	}
	if !d.take() {
		return "", ErrBudgetExhausted
	}

	var lastErr error
	for _, p := range d.providers {
		resp, err := d.callOne(ctx, p, req)
		if err != nil {
			log.Printf("provider %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		content := strings.TrimSpace(resp.Content)
		if content == "" {
			log.Printf("provider %s returned empty response", p.Name())
			continue
		}
		return content, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrNoProviders, lastErr)
	}
	return "", ErrNoProviders
}

func (d *Dispatcher) callOne(ctx context.Context, p llm.Provider, req llm.Request) (*llm.Response, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return p.Complete(ctx, req)
}
