// Package pinata is a minimal client for the Pinata IPFS pinning service.
package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// PlaceholderURL is served in place of an image that has no CID.
const PlaceholderURL = "/placeholder.svg"

type Config struct {
	JWT       string
	Gateway   string // host only, e.g. "example.mypinata.cloud"
	UploadURL string
	APIURL    string
}

// File is what the service reports for a stored upload.
type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CID      string `json:"cid"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	GroupID  string `json:"group_id"`
}

type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pinata request failed: %s", e.Status)
	}
	return fmt.Sprintf("pinata request failed: %s: %s", e.Status, e.Body)
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{config: config, httpClient: httpClient}
}

// GatewayURL is the public address of cid on the configured gateway.
func (c *Client) GatewayURL(cid string) string {
	return GatewayURL(c.config.Gateway, cid)
}

func GatewayURL(gateway, cid string) string {
	if cid == "" {
		return PlaceholderURL
	}
	return fmt.Sprintf("https://%s/ipfs/%s", gateway, cid)
}

// Upload stores content publicly, optionally inside a group.
func (c *Client) Upload(ctx context.Context, name, contentType string, content io.Reader, groupID string) (*File, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := w.WriteField("network", "public"); err != nil {
		return nil, err
	}
	if err := w.WriteField("name", name); err != nil {
		return nil, err
	}
	if groupID != "" {
		if err := w.WriteField("group_id", groupID); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.UploadURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data File `json:"data"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode pinata upload response: %w", err)
	}
	if resp.Data.CID == "" {
		return nil, fmt.Errorf("pinata upload response has no cid")
	}
	return &resp.Data, nil
}

// Unpin removes cid from the account's pins.
func (c *Client) Unpin(ctx context.Context, cid string) error {
	cid = strings.TrimSpace(strings.SplitN(cid, "?", 2)[0])
	if cid == "" {
		return fmt.Errorf("no cid provided")
	}
	endpoint := strings.TrimRight(c.config.APIURL, "/") + "/pinning/unpin/" + url.PathEscape(cid)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.config.JWT)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}
	return respBody, nil
}
