package smoke

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/folio/pkg/logger"
)

// checkHealth verifies /healthz answers 200.
func checkHealth(ctx context.Context, client *httpClient) error {
	status, body, err := client.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrUnhealthy, status, strings.TrimSpace(body))
	}
	logger.Get().Info(ctx, "site is healthy")
	return nil
}

// verifyListing fetches /users and checks every submission appears.
func verifyListing(ctx context.Context, client *httpClient, subs []Submission, stats *Stats) error {
	status, body, err := client.get(ctx, "/users")
	if err != nil {
		return fmt.Errorf("fetch listing: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("fetch listing: status %d", status)
	}

	missing := missingLines(body, subs)
	stats.Listed = len(subs) - len(missing)
	if len(missing) > 0 {
		return fmt.Errorf("%w: %d of %d, first %q", ErrMissingEntry, len(missing), len(subs), missing[0])
	}
	logger.Get().Info(ctx, "listing verified", logger.Int("found", stats.Listed))
	return nil
}

// missingLines returns the submissions whose line is not in the listing body.
func missingLines(body string, subs []Submission) []string {
	present := make(map[string]struct{})
	if body != "" {
		for _, line := range strings.Split(body, "<br>") {
			present[html.UnescapeString(line)] = struct{}{}
		}
	}

	var missing []string
	for _, s := range subs {
		if _, ok := present[s.Line()]; !ok {
			missing = append(missing, s.Line())
		}
	}
	return missing
}

// checkPages requests every static page and expects 200.
func checkPages(ctx context.Context, client *httpClient, stats *Stats) error {
	for _, path := range staticPages {
		status, _, err := client.get(ctx, path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPage, path, err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("%w: %s: status %d", ErrPage, path, status)
		}
		stats.PagesChecked++
	}
	logger.Get().Info(ctx, "static pages verified", logger.Int("pages", stats.PagesChecked))
	return nil
}

// checkGuestbook signs the guestbook and expects all three values echoed.
func checkGuestbook(ctx context.Context, client *httpClient, runID string) error {
	values := url.Values{
		"guest-name":    {"guest-" + runID},
		"guest-email":   {runID + "@example.com"},
		"guest-comment": {"hello from " + runID},
	}
	status, body, err := client.postForm(ctx, "/guestbook", values)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEcho, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrEcho, status)
	}
	for key := range values {
		if want := html.EscapeString(values.Get(key)); !strings.Contains(body, want) {
			return fmt.Errorf("%w: %s %q not in response", ErrEcho, key, values.Get(key))
		}
	}
	logger.Get().Info(ctx, "guestbook echo verified")
	return nil
}
