// Package storage talks to a Cloudinary-compatible object store. Each upload
// is a single unsigned multipart POST against the resource-kind endpoint;
// the response's secure_url field is the contract callers depend on.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stackit-hq/stackit-api/internal/api/metrics"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// Config captures the upload endpoint settings.
type Config struct {
	// BaseURL is the API root, e.g. https://api.cloudinary.com/v1_1.
	BaseURL string
	// CloudName is the account segment of the upload URL.
	CloudName string
	// UploadPreset is the unsigned upload preset sent with every file.
	UploadPreset string
}

// Client implements ports.ObjectStorage.
type Client struct {
	http   *http.Client
	cfg    Config
	logger zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	return &Client{
		// The platform applies its own server-side limits; no client-side
		// timeout is set beyond the request context.
		http:   &http.Client{},
		cfg:    cfg,
		logger: logger,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload sends the file to the kind-appropriate endpoint and returns its
// durable public URL.
func (c *Client) Upload(ctx context.Context, kind ports.UploadKind, f ports.UploadFile) (string, error) {
	start := time.Now()

	url, err := c.upload(ctx, kind, f)
	if err != nil {
		metrics.AttachmentsUploadedTotal.WithLabelValues(string(kind), "error").Inc()
		return "", err
	}

	metrics.AttachmentsUploadedTotal.WithLabelValues(string(kind), "ok").Inc()
	metrics.AttachmentUploadDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	c.logger.Debug().Str("kind", string(kind)).Str("file", f.Name).Msg("attachment uploaded")
	return url, nil
}

func (c *Client) upload(ctx context.Context, kind ports.UploadKind, f ports.UploadFile) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	name := f.Name
	if name == "" {
		name = uuid.NewString()
	}
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	if err := w.WriteField("upload_preset", c.cfg.UploadPreset); err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/upload", c.cfg.BaseURL, c.cfg.CloudName, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload %s: unexpected status %d", f.Name, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload %s: decode response: %w", f.Name, err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("upload %s: response missing secure_url", f.Name)
	}
	return out.SecureURL, nil
}
