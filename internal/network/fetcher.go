// File: internal/network/fetcher.go
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/dashgrid/internal/config"
)

// MaxBodyBytes caps how much of a content response is read.
const MaxBodyBytes = 4 << 20

// Sink receives fetched dashlet content.
type Sink interface {
	UpdateContents(id int, body []byte)
}

type reload struct {
	id  int
	url string
}

// ContentFetcher re-requests size-dependent dashlet content. Reload only
// records the request, so it is safe to call from the layout goroutine at
// drag rate; Run performs the requests. Repeated reloads of one dashlet before
// it is fetched collapse into the newest URL.
type ContentFetcher struct {
	client      *http.Client
	sink        Sink
	limiter     *rate.Limiter
	concurrency int
	headers     map[string]string
	logger      *zap.Logger

	mu      sync.Mutex
	pending map[int]string
	order   []int
	wake    chan struct{}
}

// NewContentFetcher wires a fetcher. A nil client gets the default client.
func NewContentFetcher(client *http.Client, sink Sink, cfg config.NetworkConfig, logger *zap.Logger) *ContentFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = NewClient(ClientConfigFrom(cfg, logger))
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &ContentFetcher{
		client:      client,
		sink:        sink,
		limiter:     rate.NewLimiter(limit, concurrency),
		concurrency: concurrency,
		headers:     cfg.Headers,
		logger:      logger.Named("fetcher"),
		pending:     make(map[int]string),
		wake:        make(chan struct{}, 1),
	}
}

// Reload implements layout.Fetcher.
func (f *ContentFetcher) Reload(ctx context.Context, id int, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	if _, queued := f.pending[id]; !queued {
		f.order = append(f.order, id)
	}
	f.pending[id] = url
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of dashlets waiting for a fetch.
func (f *ContentFetcher) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Run fetches pending reloads until ctx is cancelled.
func (f *ContentFetcher) Run(ctx context.Context) error {
	f.logger.Debug("Content fetcher started", zap.Int("concurrency", f.concurrency))
	for {
		select {
		case <-ctx.Done():
			f.logger.Debug("Content fetcher stopped")
			return nil
		case <-f.wake:
		}
		if err := f.Flush(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	}
}

// Flush fetches everything currently pending and waits for the batch. A
// failed request is logged and does not affect the rest of the batch.
func (f *ContentFetcher) Flush(ctx context.Context) error {
	batch := f.take()
	if len(batch) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for _, r := range batch {
		g.Go(func() error {
			if err := f.limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}
			body, err := f.fetch(gctx, r.url)
			if err != nil {
				f.logger.Warn("Failed to fetch dashlet content", zap.Int("dashlet", r.id), zap.String("url", r.url), zap.Error(err))
				return nil
			}
			if f.sink != nil {
				f.sink.UpdateContents(r.id, body)
			}
			return nil
		})
	}
	return g.Wait()
}

func (f *ContentFetcher) take() []reload {
	f.mu.Lock()
	defer f.mu.Unlock()

	batch := make([]reload, 0, len(f.order))
	for _, id := range f.order {
		batch = append(batch, reload{id: id, url: f.pending[id]})
	}
	f.order = f.order[:0]
	clear(f.pending)
	return batch
}

func (f *ContentFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
