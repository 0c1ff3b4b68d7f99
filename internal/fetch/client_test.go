package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-docmark/blocks"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:     server.URL,
		AccessToken: "test-token",
		RetryDelay:  time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client, server
}

func TestNewClientRequiresBaseURLAndToken(t *testing.T) {
	if _, err := NewClient(Config{AccessToken: "t"}); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired, got %v", err)
	}
	if _, err := NewClient(Config{BaseURL: "https://example.com"}); !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
}

func TestGetDocument(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if r.URL.Path != "/docx/v1/documents/doc1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"code":0,"msg":"success","data":{"document":{"document_id":"doc1","revision_id":7,"title":"My Doc"}}}`)
	}))

	info, err := client.GetDocument(context.Background(), "doc1")
	if err != nil {
		t.Fatalf("GetDocument returned error: %v", err)
	}
	if info.DocumentID != "doc1" || info.RevisionID != 7 || info.Title != "My Doc" {
		t.Fatalf("unexpected document info: %+v", info)
	}
}

func TestGetDocumentSurfacesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":1254005,"msg":"document not found"}`)
	}))

	_, err := client.GetDocument(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != 1254005 {
		t.Fatalf("unexpected api code: %d", apiErr.Code)
	}
}

func TestListBlocksFollowsPageTokens(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page_token") == "" {
			fmt.Fprint(w, `{"code":0,"msg":"success","data":{
				"items":[{"block_id":"root","block_type":1,"children":["t"]}],
				"has_more":true,"page_token":"next"}}`)
			return
		}
		fmt.Fprint(w, `{"code":0,"msg":"success","data":{
			"items":[{"block_id":"t","block_type":2,"parent_id":"root",
				"text":{"elements":[{"text_run":{"content":"hi"}}]}}],
			"has_more":false}}`)
	}))

	records, err := client.ListBlocks(context.Background(), "doc1")
	if err != nil {
		t.Fatalf("ListBlocks returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records across pages, got %d", len(records))
	}
	if records[1].ID != "t" || records[1].Type != blocks.TypeText {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestListBlocksRetriesTransientFailures(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"code":0,"msg":"success","data":{
			"items":[{"block_id":"root","block_type":1}],"has_more":false}}`)
	}))

	records, err := client.ListBlocks(context.Background(), "doc1")
	if err != nil {
		t.Fatalf("ListBlocks returned error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected one retry, got %d attempts", attempts)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestListBlocksDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))

	if _, err := client.ListBlocks(context.Background(), "doc1"); err == nil {
		t.Fatal("expected error for forbidden response")
	}
	if attempts != 1 {
		t.Fatalf("expected no retries for 403, got %d attempts", attempts)
	}
}

func TestResolveImageURLs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/drive/v1/medias/batch_get_tmp_download_url" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("file_tokens"); got != "tok1,tok2" {
			t.Errorf("unexpected file tokens: %q", got)
		}
		fmt.Fprint(w, `{"code":0,"msg":"success","data":{"tmp_download_urls":[
			{"file_token":"tok1","tmp_download_url":"https://cdn.example.com/tok1"}]}}`)
	}))

	records := []blocks.BlockRecord{
		{ID: "i1", Type: blocks.TypeImage, Image: &blocks.ImagePayload{Token: "tok1"}},
		{ID: "i2", Type: blocks.TypeImage, Image: &blocks.ImagePayload{Token: "tok2"}},
		{ID: "t", Type: blocks.TypeText},
	}

	if err := client.ResolveImageURLs(context.Background(), records); err != nil {
		t.Fatalf("ResolveImageURLs returned error: %v", err)
	}
	if records[0].Image.DownloadURL != "https://cdn.example.com/tok1" {
		t.Fatalf("expected tok1 resolved, got %q", records[0].Image.DownloadURL)
	}
	if records[1].Image.DownloadURL != "" {
		t.Fatalf("expected tok2 unresolved, got %q", records[1].Image.DownloadURL)
	}
}

func TestResolveImageURLsNoImagesShortCircuits(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := client.ResolveImageURLs(context.Background(), []blocks.BlockRecord{
		{ID: "t", Type: blocks.TypeText},
	})
	if err != nil {
		t.Fatalf("ResolveImageURLs returned error: %v", err)
	}
	if called {
		t.Fatal("expected no request when the set has no image tokens")
	}
}
