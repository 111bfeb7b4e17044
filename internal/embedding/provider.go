// Package embedding provides the process-wide embedding capability shared by
// taxonomy indexing and company-text matching. Taxonomy and company vectors
// must come from the same provider: mixing models silently breaks similarity
// comparability.
package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/b2bfusion/fusion-engine/internal/llm"
)

// Provider maps text to a fixed-dimension vector. Implementations must be
// deterministic for identical input and safe for concurrent use.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ClientProvider adapts an llm.Client to the Provider interface.
type ClientProvider struct {
	client llm.Client
}

// NewClientProvider wraps an LLM client as an embedding Provider.
func NewClientProvider(client llm.Client) *ClientProvider {
	return &ClientProvider{client: client}
}

// Embed maps text to a vector via the underlying client.
func (p *ClientProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	return p.client.EmbedText(ctx, text)
}

// Global shared provider: lazily constructed on first use, never mutated
// afterwards, safe for unlimited concurrent callers.
var (
	globalOnce     sync.Once
	globalProvider Provider
	globalErr      error
)

// Global returns the process-wide Provider, constructing it on first call
// with the given API key. Subsequent calls return the same handle regardless
// of arguments.
func Global(ctx context.Context, apiKey string) (Provider, error) {
	globalOnce.Do(func() {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			globalErr = fmt.Errorf("failed to initialize embedding provider: %w", err)
			return
		}
		globalProvider = NewClientProvider(client)
	})
	return globalProvider, globalErr
}
