package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-docmark/blocks"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/pkg/interfaces"
)

var (
	ErrBaseURLRequired = errors.New("fetch: base URL is required")
	ErrTokenRequired   = errors.New("fetch: access token is required")
	ErrDocumentID      = errors.New("fetch: document id is required")
)

const (
	defaultPageSize   = 500
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// APIError is a non-zero status returned inside a document service response
// envelope. The HTTP layer succeeded; the service refused the request.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fetch: api error %d: %s", e.Code, e.Msg)
}

// Config captures connectivity options for the document service client.
type Config struct {
	BaseURL     string
	AccessToken string
	PageSize    int
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	HTTPClient  *http.Client
	Logger      interfaces.Logger
}

// Client fetches document metadata and block records over the document
// service HTTP API. It satisfies interfaces.BlockSource.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	maxRetries int
	retryDelay time.Duration
	http       *http.Client
	logger     interfaces.Logger
}

var _ interfaces.BlockSource = (*Client)(nil)

// NewClient builds a document service client from the supplied configuration.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, ErrTokenRequired
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > 500 {
		pageSize = defaultPageSize
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = defaultMaxRetries
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Client{
		baseURL:    base,
		token:      cfg.AccessToken,
		pageSize:   pageSize,
		maxRetries: retries,
		retryDelay: delay,
		http:       client,
		logger:     logger,
	}, nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type documentData struct {
	Document struct {
		DocumentID string `json:"document_id"`
		RevisionID int    `json:"revision_id"`
		Title      string `json:"title"`
	} `json:"document"`
}

type blockPageData struct {
	Items     []json.RawMessage `json:"items"`
	HasMore   bool              `json:"has_more"`
	PageToken string            `json:"page_token"`
}

// GetDocument fetches the metadata envelope for one document.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*interfaces.DocumentInfo, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrDocumentID
	}

	var data documentData
	path := fmt.Sprintf("/docx/v1/documents/%s", url.PathEscape(documentID))
	if err := c.getJSON(ctx, path, nil, &data); err != nil {
		return nil, err
	}

	return &interfaces.DocumentInfo{
		DocumentID: data.Document.DocumentID,
		RevisionID: data.Document.RevisionID,
		Title:      data.Document.Title,
	}, nil
}

// ListBlocks fetches every block record of a document, following page tokens
// until the service reports no more pages. Overlapping deliveries are fine;
// tree assembly deduplicates by identifier.
func (c *Client) ListBlocks(ctx context.Context, documentID string) ([]blocks.BlockRecord, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrDocumentID
	}

	path := fmt.Sprintf("/docx/v1/documents/%s/blocks", url.PathEscape(documentID))

	var records []blocks.BlockRecord
	pageToken := ""
	page := 0
	for {
		query := url.Values{}
		query.Set("page_size", fmt.Sprintf("%d", c.pageSize))
		if pageToken != "" {
			query.Set("page_token", pageToken)
		}

		var data blockPageData
		if err := c.getJSON(ctx, path, query, &data); err != nil {
			return nil, fmt.Errorf("fetch: blocks page %d: %w", page, err)
		}

		encoded, err := json.Marshal(data.Items)
		if err != nil {
			return nil, fmt.Errorf("fetch: blocks page %d: %w", page, err)
		}
		decoded, err := blocks.DecodeRecords(encoded)
		if err != nil {
			return nil, fmt.Errorf("fetch: blocks page %d: %w", page, err)
		}
		records = append(records, decoded...)

		c.logger.Debug("blocks page fetched", "document_id", documentID, "page", page, "items", len(decoded), "has_more", data.HasMore)

		if !data.HasMore || data.PageToken == "" {
			return records, nil
		}
		pageToken = data.PageToken
		page++
	}
}

type mediaURLData struct {
	TmpDownloadURLs []struct {
		FileToken      string `json:"file_token"`
		TmpDownloadURL string `json:"tmp_download_url"`
	} `json:"tmp_download_urls"`
}

// ResolveImageURLs fills the download URL of every image record in place
// using the media service's temporary URL endpoint. Tokens the service does
// not return stay unresolved; the renderer emits a placeholder for them.
func (c *Client) ResolveImageURLs(ctx context.Context, records []blocks.BlockRecord) error {
	tokens := make([]string, 0)
	seen := map[string]struct{}{}
	for i := range records {
		if records[i].Type != blocks.TypeImage || records[i].Image == nil {
			continue
		}
		token := records[i].Image.Token
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return nil
	}

	query := url.Values{}
	query.Set("file_tokens", strings.Join(tokens, ","))

	var data mediaURLData
	if err := c.getJSON(ctx, "/drive/v1/medias/batch_get_tmp_download_url", query, &data); err != nil {
		return err
	}

	resolved := make(map[string]string, len(data.TmpDownloadURLs))
	for _, item := range data.TmpDownloadURLs {
		resolved[item.FileToken] = item.TmpDownloadURL
	}

	for i := range records {
		if records[i].Type != blocks.TypeImage || records[i].Image == nil {
			continue
		}
		if target, ok := resolved[records[i].Image.Token]; ok && target != "" {
			records[i].Image.DownloadURL = target
		}
	}
	return nil
}

// getJSON performs one authenticated GET with retry on transient failures
// and decodes the response envelope's data member into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying request", "url", target, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		body, retryable, err := c.do(ctx, target)
		if err == nil {
			return decodeEnvelope(body, out)
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, target string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("fetch: http %d from %s", resp.StatusCode, target)
	default:
		return nil, false, fmt.Errorf("fetch: http %d from %s", resp.StatusCode, target)
	}
}

func decodeEnvelope(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("fetch: decode response: %w", err)
	}
	if env.Code != 0 {
		return &APIError{Code: env.Code, Msg: env.Msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("fetch: decode response data: %w", err)
	}
	return nil
}
