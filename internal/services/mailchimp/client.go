package mailchimp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	apiHost    = "api.mailchimp.com"
	apiVersion = "3.0"
	timeout    = 30 * time.Second

	// The API ignores the username half of the basic-auth pair; only the
	// password half carries the credential.
	basicAuthUser = "anystring"

	// DefaultFileCount is the page size used by ListFiles when no count is given.
	DefaultFileCount = 100
	// DefaultCampaignCount is the page size used by ListCampaigns when no count is given.
	DefaultCampaignCount = 10
)

// Client represents a Mailchimp Marketing API client.
//
// The credential is the combined string "<key>-<server-prefix>"; the server
// prefix selects the data center the request host is built from.
type Client struct {
	credential string
	httpClient *http.Client
	baseURL    string // when non-empty, relative paths resolve here instead (tests)
}

var _ ClientAPI = (*Client)(nil)

// NewClient creates a new Mailchimp client.
func NewClient(credential string) *Client {
	return &Client{
		credential: credential,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DeriveServerPrefix extracts the server prefix from a credential of the form
// "<key>-<server-prefix>". Splitting on the hyphen must yield exactly two
// non-empty parts.
func DeriveServerPrefix(credential string) (string, error) {
	if credential == "" {
		return "", &ConfigError{Reason: "credential not set"}
	}

	parts := strings.Split(credential, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", &ConfigError{Reason: "invalid credential format"}
	}

	return parts[1], nil
}

// resolveURL turns a relative endpoint into a full API URL. Absolute https
// URLs are used verbatim.
func (c *Client) resolveURL(path string) (string, error) {
	if strings.HasPrefix(path, "https:") {
		return path, nil
	}

	if c.baseURL != "" {
		return fmt.Sprintf("%s/%s", c.baseURL, path), nil
	}

	prefix, err := DeriveServerPrefix(c.credential)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.%s/%s/%s", prefix, apiHost, apiVersion, path), nil
}

// buildRequest constructs an authenticated request. A string body is sent
// unchanged, a nil body sends nothing, anything else is JSON-encoded.
func (c *Client) buildRequest(method, path string, body interface{}) (*http.Request, error) {
	if c.credential == "" {
		return nil, &ConfigError{Reason: "credential not set"}
	}

	url, err := c.resolveURL(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		if b != "" {
			reader = strings.NewReader(b)
		}
	default:
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}

	auth := base64.StdEncoding.EncodeToString([]byte(basicAuthUser + ":" + c.credential))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// Do executes a single blocking request and decodes the response body as
// JSON into an untyped tree. The HTTP status is not inspected: the API
// reports failures in a well-formed JSON payload, and that payload is the
// return value. Callers inspect it for API-level errors themselves.
func (c *Client) Do(method, path string, body interface{}) (interface{}, error) {
	req, err := c.buildRequest(method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		// A body cut short mid-read leaves us with nothing decodable.
		return nil, &DecodeError{Err: err}
	}

	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return decoded, nil
}

// Upload stores a local file in the Mailchimp file manager. The file's raw
// bytes are base64-encoded into the request body.
func (c *Client) Upload(filePath string) (interface{}, error) {
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: filePath}
		}
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	body := map[string]interface{}{
		"name":      filepath.Base(filePath),
		"file_data": base64.StdEncoding.EncodeToString(data),
	}

	return c.Do(http.MethodPost, "file-manager/files", body)
}

// ListFiles returns the most recently added files in the file manager.
// A non-positive count selects the default of 100.
func (c *Client) ListFiles(count, offset int) (interface{}, error) {
	if count <= 0 {
		count = DefaultFileCount
	}
	if offset < 0 {
		offset = 0
	}

	path := fmt.Sprintf("file-manager/files?count=%d&sort_field=added_date&sort_dir=DESC&offset=%d", count, offset)
	return c.Do(http.MethodGet, path, nil)
}

// ListCampaigns returns the most recently created campaigns.
// A non-positive count selects the default of 10.
func (c *Client) ListCampaigns(count, offset int) (interface{}, error) {
	if count <= 0 {
		count = DefaultCampaignCount
	}
	if offset < 0 {
		offset = 0
	}

	path := fmt.Sprintf("campaigns?count=%d&sort_field=create_time&sort_dir=DESC&offset=%d", count, offset)
	return c.Do(http.MethodGet, path, nil)
}

// Ping calls the API health endpoint. Useful for verifying the credential.
func (c *Client) Ping() (interface{}, error) {
	return c.Do(http.MethodGet, "ping", nil)
}
