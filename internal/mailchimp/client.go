// Package mailchimp syncs subscribers to a Mailchimp embedded-form action URL
// through its JSONP endpoint.
package mailchimp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// Client posts signups to a Mailchimp list. A zero action URL disables the
// sync without failing subscriptions.
type Client struct {
	actionURL string
	hc        *http.Client
	log       *log.Helper
}

// NewClient wraps a Mailchimp embedded-form action URL. actionURL may be
// empty.
func NewClient(actionURL string, logger log.Logger) *Client {
	return &Client{
		actionURL: strings.TrimSpace(actionURL),
		hc:        &http.Client{Timeout: 15 * time.Second},
		log:       log.NewHelper(logger),
	}
}

type jsonpResponse struct {
	Result string `json:"result"`
	Msg    string `json:"msg"`
}

// Subscribe signs an email up to the list. The returned note describes the
// provider's answer; errors are reserved for an unreachable or unreadable
// endpoint.
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	if c.actionURL == "" {
		return "Skipped Mailchimp (configuration missing)", nil
	}

	// The embedded-form endpoint only answers JSONP, on the /post-json
	// variant of the action URL with a c= callback parameter.
	endpoint := strings.Replace(c.actionURL, "/post?", "/post-json?", 1)
	endpoint += "&EMAIL=" + url.QueryEscape(email) + "&c=?"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("mailchimp request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("mailchimp response: %w", err)
	}

	payload := strings.TrimSpace(string(body))
	payload = strings.TrimPrefix(payload, "?(")
	payload = strings.TrimSuffix(payload, ")")

	var parsed jsonpResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return "", fmt.Errorf("mailchimp payload: %w", err)
	}

	if parsed.Result != "success" {
		// "already subscribed" and throttling answers arrive here; they
		// are outcomes to surface, not failures.
		c.log.Warnf("mailchimp declined %s: %s", email, parsed.Msg)
		return parsed.Msg, nil
	}
	return "Subscribed to the weekly digest", nil
}
