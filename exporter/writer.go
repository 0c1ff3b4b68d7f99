package exporter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

const fallbackFileStem = "untitled"

// fileStem derives a filesystem-safe name from a document title, optionally
// suffixed with the export timestamp so repeated runs stay distinguishable.
func fileStem(title string, at time.Time, timestampSuffix bool) string {
	stem, err := slug.Normalize(strings.TrimSpace(title))
	if err != nil || stem == "" {
		stem = fallbackFileStem
	}
	if timestampSuffix {
		stem = fmt.Sprintf("%s_%s", stem, at.UTC().Format("20060102_150405"))
	}
	return stem
}

// uniquePath returns dir/stem.md, appending a numeric suffix when the path is
// already taken and overwriting is not allowed.
func uniquePath(dir, stem string, overwrite bool) string {
	path := filepath.Join(dir, stem+".md")
	if overwrite {
		return path
	}
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.md", stem, i))
	}
}

// writeDocument persists the document, creating the output directory on
// demand, and returns the content checksum.
func writeDocument(path, content string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("exporter: create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("exporter: write document: %w", err)
	}
	return checksum(content), nil
}

func checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
