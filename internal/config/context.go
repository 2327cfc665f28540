package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	contextUserAgent   = "llm-quiz-challenge"
	contextFetchLimit  = 1 << 20 // bytes per document
	contextSeparator   = "\n\n" + "================================================================================" + "\n\n"
	contextHTTPTimeout = 30 * time.Second
)

// FetchCourseContext downloads each context URL and joins the documents
// into one labeled blob for the validation stage. A URL that fails to
// fetch is skipped with a warning — partial context beats no context —
// so the returned string may cover fewer documents than were configured.
func FetchCourseContext(ctx context.Context, client *http.Client, urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	if client == nil {
		client = &http.Client{Timeout: contextHTTPTimeout}
	}

	var sections []string
	for i, url := range urls {
		body, err := fetchOne(ctx, client, url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load context from %s: %v\n", url, err)
			continue
		}
		sections = append(sections, fmt.Sprintf("# %s (from %s)\n\n%s", labelFor(url, i), url, body))
	}

	return strings.Join(sections, contextSeparator)
}

func fetchOne(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", contextUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, contextFetchLimit))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// labelFor derives a readable document label from the URL's last path
// segment, falling back to a positional name.
func labelFor(url string, i int) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 && idx < len(url)-1 {
		return url[idx+1:]
	}
	return fmt.Sprintf("content_%d", i+1)
}
