package smoke

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/folio/pkg/logger"
)

// httpClient wraps http.Client with a base URL.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// get performs a GET request and returns status and body.
func (c *httpClient) get(ctx context.Context, path string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

// postForm performs a urlencoded POST and returns status and body.
func (c *httpClient) postForm(ctx context.Context, path string, values url.Values) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(values.Encode()))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *httpClient) do(req *http.Request) (int, string, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read body: %w", err)
	}
	return resp.StatusCode, string(body), nil
}

// submitFeedback posts every submission using a worker pool.
func submitFeedback(ctx context.Context, cfg *Config, client *httpClient, subs []Submission, stats *Stats) {
	logger.Get().Info(ctx, "submitting feedback", logger.Int("count", len(subs)), logger.Int("workers", cfg.Workers))

	var submitted, successful, failed int64

	subChan := make(chan Submission, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range subChan {
				if ctx.Err() != nil {
					return
				}
				ok := submitSingle(ctx, cfg, client, sub)
				atomic.AddInt64(&submitted, 1)
				if ok {
					atomic.AddInt64(&successful, 1)
				} else {
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(subChan)
		for _, sub := range subs {
			select {
			case <-ctx.Done():
				return
			case subChan <- sub:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Failed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "feedback submission completed",
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
	)
}

// submitSingle posts one feedback form and reports whether it was accepted.
func submitSingle(ctx context.Context, cfg *Config, client *httpClient, sub Submission) bool {
	status, _, err := client.postForm(ctx, "/feedback", url.Values{"name": {sub.Name}, "comment": {sub.Comment}})
	if cfg.Verbose {
		logger.Get().Debug(ctx, "posted feedback", logger.String("name", sub.Name), logger.Int("status", status), logger.Error(err))
	}
	return err == nil && status == http.StatusOK
}
