// Package forvo is a minimal client for the Forvo word-pronunciations API.
package forvo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues pronunciation lookups against the Forvo API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client with a fixed timeout on every lookup.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Pronunciation returns the first audio path Forvo knows for the word,
// filtered to German pronunciations recorded in Germany. It returns "" with
// a nil error when Forvo has no usable candidate.
func (c *Client) Pronunciation(ctx context.Context, word string) (string, error) {
	lookupURL := fmt.Sprintf(
		"%s/key/%s/format/json/action/word-pronunciations/word/%s/language/de?country=DEU",
		c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(word),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build forvo request for %q: %w", word, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("forvo request for %q failed: %w", word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("forvo returned status %s for %q", resp.Status, word)
	}

	var decoded struct {
		Items []struct {
			PathMP3 string `json:"pathmp3"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode forvo response for %q: %w", word, err)
	}

	for _, item := range decoded.Items {
		if item.PathMP3 != "" {
			return item.PathMP3, nil
		}
	}
	return "", nil
}
