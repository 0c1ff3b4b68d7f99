package preview

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := NewRenderer(Options{})

	out, err := r.Render([]byte("# Overview\n\nHello **world**.\n"))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	htmlOut := string(out)
	if !strings.Contains(htmlOut, `<h1 id="overview">Overview</h1>`) {
		t.Fatalf("expected heading with auto id, got %q", htmlOut)
	}
	if !strings.Contains(htmlOut, "<strong>world</strong>") {
		t.Fatalf("expected bold run, got %q", htmlOut)
	}
}

func TestRenderTaskListAndTable(t *testing.T) {
	r := NewRenderer(Options{})

	md := "- [x] done\n- [ ] open\n\n| Name | Value |\n| --- | --- |\n| a | b |\n"
	out, err := r.Render([]byte(md))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	htmlOut := string(out)
	if !strings.Contains(htmlOut, "checkbox") {
		t.Fatalf("expected task list checkboxes, got %q", htmlOut)
	}
	if !strings.Contains(htmlOut, "<table>") {
		t.Fatalf("expected table markup, got %q", htmlOut)
	}
}

func TestRenderStrikethrough(t *testing.T) {
	r := NewRenderer(Options{})

	out, err := r.Render([]byte("~~gone~~\n"))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(out), "<del>gone</del>") {
		t.Fatalf("expected strikethrough markup, got %q", string(out))
	}
}

func TestRenderUnsafeControlsRawHTML(t *testing.T) {
	md := []byte("a <u>under</u> run\n")

	safe, err := NewRenderer(Options{}).Render(md)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(string(safe), "<u>") {
		t.Fatalf("expected raw HTML suppressed by default, got %q", string(safe))
	}

	unsafe, err := NewRenderer(Options{Unsafe: true}).Render(md)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(unsafe), "<u>under</u>") {
		t.Fatalf("expected raw HTML preserved, got %q", string(unsafe))
	}
}

func TestRenderWithOptionsOverridesDefaults(t *testing.T) {
	r := NewRenderer(Options{})

	out, err := r.RenderWithOptions([]byte("line one\nline two\n"), Options{HardWraps: true})
	if err != nil {
		t.Fatalf("RenderWithOptions returned error: %v", err)
	}
	if !strings.Contains(string(out), "<br") {
		t.Fatalf("expected hard break, got %q", string(out))
	}
}

func TestRenderExtensionSelection(t *testing.T) {
	md := []byte("~~gone~~\n")

	out, err := NewRenderer(Options{Extensions: []string{"table"}}).Render(md)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(string(out), "<del>") {
		t.Fatalf("expected strikethrough disabled without its extension, got %q", string(out))
	}

	out, err = NewRenderer(Options{Extensions: []string{"strikethrough"}}).Render(md)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(out), "<del>gone</del>") {
		t.Fatalf("expected strikethrough enabled, got %q", string(out))
	}
}
