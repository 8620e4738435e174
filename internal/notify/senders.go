package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// Channel senders as consumed by the dispatcher. Each one may fail
// independently; retries belong to the provider, not to this layer.
type EmailSender interface {
	Send(ctx context.Context, to, subject, template string, tmplContext map[string]any) error
}

type SMSSender interface {
	Send(ctx context.Context, to, message string) error
}

type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string) error
}

// postJSON is the shared provider call: JSON body, API key auth, anything
// outside 2xx is an error.
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", apiKey)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider %s: status %d: %s", url, resp.StatusCode, string(b))
	}
	return nil
}

// MailClient delivers templated email through a transactional mail API.
type MailClient struct {
	BaseURL    string
	APIKey     string
	From       string
	HTTPClient *http.Client
}

func NewMailClient(baseURL, apiKey, from string) *MailClient {
	return &MailClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		From:       from,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *MailClient) Send(ctx context.Context, to, subject, template string, tmplContext map[string]any) error {
	if c.APIKey == "" {
		return fmt.Errorf("mail: API key not configured")
	}
	return postJSON(ctx, c.HTTPClient, c.BaseURL, c.APIKey, map[string]any{
		"from":     c.From,
		"to":       to,
		"subject":  subject,
		"template": template,
		"context":  tmplContext,
	})
}

// SMSClient delivers plain text messages through a bulk SMS API.
type SMSClient struct {
	BaseURL    string
	APIKey     string
	From       string
	HTTPClient *http.Client
}

func NewSMSClient(baseURL, apiKey, from string) *SMSClient {
	return &SMSClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		From:       from,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *SMSClient) Send(ctx context.Context, to, message string) error {
	if c.APIKey == "" {
		return fmt.Errorf("sms: API key not configured")
	}
	return postJSON(ctx, c.HTTPClient, c.BaseURL, c.APIKey, map[string]any{
		"from":    c.From,
		"to":      to,
		"message": message,
	})
}

// PushClient delivers notifications to a single device token through an
// FCM-style HTTP API.
type PushClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewPushClient(baseURL, apiKey string) *PushClient {
	return &PushClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *PushClient) Send(ctx context.Context, deviceToken, title, body string) error {
	if c.APIKey == "" {
		return fmt.Errorf("push: API key not configured")
	}
	return postJSON(ctx, c.HTTPClient, c.BaseURL, c.APIKey, map[string]any{
		"token": deviceToken,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	})
}
