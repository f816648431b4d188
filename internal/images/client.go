package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single upload round trip.
	DefaultTimeout = 15 * time.Second
	// DefaultRateLimit keeps the relay from hammering the image host.
	DefaultRateLimit = rate.Limit(5.0)
	// MaxUploadBytes caps accepted image payloads.
	MaxUploadBytes = 5 << 20
)

// Image is the hosted result returned by the external image host.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Client relays image uploads to the external hosting service. Each
// call is a single attempt, failures surface to the caller unretried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	folder     string
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client for the image host at baseURL. Uploads go
// into folder so the hosted assets stay grouped per deployment.
func NewClient(baseURL, apiKey, folder string, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		folder:     folder,
		limiter:    rate.NewLimiter(DefaultRateLimit, 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Upload streams the file to the host and returns the hosted image.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*Image, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, contentType, err := encodeMultipart(filename, file, c.folder)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("image host returned %d: %s", resp.StatusCode, payload)
	}

	var image Image
	if err := json.NewDecoder(resp.Body).Decode(&image); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if image.URL == "" {
		return nil, fmt.Errorf("image host returned empty url")
	}
	return &image, nil
}

// Delete removes a previously uploaded image by its public id.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return fmt.Errorf("public id is empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	requestURL := fmt.Sprintf("%s/images/%s", c.baseURL, url.PathEscape(publicID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, requestURL, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("image host returned %d", resp.StatusCode)
	}
	return nil
}

func encodeMultipart(filename string, file io.Reader, folder string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, io.LimitReader(file, MaxUploadBytes)); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if folder != "" {
		if err := writer.WriteField("folder", folder); err != nil {
			return nil, "", fmt.Errorf("write folder field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}
