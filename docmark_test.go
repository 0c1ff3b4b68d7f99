package docmark_test

import (
	"context"
	"os"
	"strings"
	"testing"

	docmark "github.com/goliatone/go-docmark"
	"github.com/goliatone/go-docmark/blocks"
	"github.com/goliatone/go-docmark/internal/di"
)

type fixtureSource struct{}

func (fixtureSource) GetDocument(context.Context, string) (*docmark.DocumentInfo, error) {
	return &docmark.DocumentInfo{DocumentID: "doc1", RevisionID: 2, Title: "Weekly Report"}, nil
}

func (fixtureSource) ListBlocks(context.Context, string) ([]blocks.BlockRecord, error) {
	return []blocks.BlockRecord{
		{
			ID:       "page",
			Type:     blocks.TypePage,
			Children: []string{"h1"},
			Page: &blocks.TextPayload{Elements: []blocks.InlineRun{
				{TextRun: &blocks.TextRun{Content: "Weekly Report"}},
			}},
		},
		{
			ID:       "h1",
			Type:     blocks.TypeHeading1,
			ParentID: "page",
			Heading1: &blocks.TextPayload{Elements: []blocks.InlineRun{
				{TextRun: &blocks.TextRun{Content: "Highlights"}},
			}},
		},
	}, nil
}

func newTestModule(t *testing.T) *docmark.Module {
	t.Helper()

	cfg := docmark.DefaultConfig()
	cfg.Exporter.TimestampSuffix = false
	cfg.Exporter.IncludeFrontmatter = false
	cfg.Exporter.OutputDir = t.TempDir()

	module, err := docmark.New(cfg, di.WithBlockSource(fixtureSource{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModuleExportDocument(t *testing.T) {
	module := newTestModule(t)

	result, err := module.ExportDocument(context.Background(), "doc1", docmark.ExportOptions{})
	if err != nil {
		t.Fatalf("ExportDocument returned error: %v", err)
	}

	if result.Title != "Weekly Report" {
		t.Fatalf("unexpected title: %q", result.Title)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "# Highlights\n" {
		t.Fatalf("unexpected export content: %q", string(data))
	}
}

func TestModuleRendererAvailableWithoutFetch(t *testing.T) {
	module, err := docmark.New(docmark.DefaultConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	if module.Renderer() == nil {
		t.Fatal("expected renderer")
	}
	if module.Exporter() != nil {
		t.Fatal("expected nil exporter without a block source")
	}
	if _, err := module.ExportDocument(context.Background(), "doc1", docmark.ExportOptions{}); err == nil {
		t.Fatal("expected error without a block source")
	}
}

func TestModulePreviewRoundTrip(t *testing.T) {
	cfg := docmark.DefaultConfig()
	cfg.Features.Preview = true

	module, err := docmark.New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	renderer := module.Preview()
	if renderer == nil {
		t.Fatal("expected preview renderer")
	}
	htmlOut, err := renderer.Render([]byte("# Highlights\n"))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(htmlOut), "<h1") {
		t.Fatalf("unexpected preview output: %q", string(htmlOut))
	}
}

type recordingRegistry struct {
	registered []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.registered = append(r.registered, handler)
	return nil
}

func TestModuleRegisterCommands(t *testing.T) {
	module := newTestModule(t)

	reg := &recordingRegistry{}
	if err := module.RegisterCommands(reg); err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if len(reg.registered) != 1 {
		t.Fatalf("expected one registered handler, got %d", len(reg.registered))
	}
}
