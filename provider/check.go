package provider

import (
	"cmp"
	"context"
	"sync"
	"time"

	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/log"
	"github.com/homestream-cli/homestream/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Header sends HEAD requests. *network.Client implements it.
type Header interface {
	Head(ctx context.Context, rawURL string) error
}

// Latency is the outcome of probing one provider.
type Latency struct {
	Provider *Provider     `json:"provider"`
	Elapsed  time.Duration `json:"elapsed"`
	Err      error         `json:"-"`
}

// Reachable reports whether the probe completed within the limit it was run with.
func (l Latency) Reachable() bool {
	return l.Err == nil
}

// Check sends a HEAD request to every provider concurrently.
// Results keep the order of providers; a probe slower than limit counts as unreachable.
func Check(ctx context.Context, client Header, providers []*Provider, limit time.Duration) []Latency {
	results := make([]Latency, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p *Provider) {
			defer wg.Done()
			results[i] = probe(ctx, client, p, limit)
		}(i, p)
	}
	wg.Wait()

	return results
}

func probe(ctx context.Context, client Header, p *Provider, limit time.Duration) Latency {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	latency := Latency{Provider: p}

	start := time.Now()
	err := client.Head(ctx, p.Endpoint)
	latency.Elapsed = time.Since(start)
	if err != nil {
		log.With(log.Fields{"provider": p.Label, "endpoint": p.Endpoint}).Debugf("probe failed: %v", err)
		latency.Err = err
	}

	return latency
}

// Fastest returns the reachable providers ordered by latency, one per endpoint.
func Fastest(latencies []Latency) []*Provider {
	reachable := lo.Filter(latencies, func(l Latency, _ int) bool {
		return l.Reachable()
	})
	slices.SortStableFunc(reachable, func(a, b Latency) int {
		return cmp.Compare(a.Elapsed, b.Elapsed)
	})

	providers := lo.Map(reachable, func(l Latency, _ int) *Provider {
		return l.Provider
	})
	return lo.UniqBy(providers, func(p *Provider) string {
		return p.Endpoint
	})
}

// Save writes providers to the providers file, which then overrides the built-in directory.
func Save(providers []*Provider) error {
	return filesystem.WriteAtomic(where.Providers(), []byte(Format(providers)))
}
