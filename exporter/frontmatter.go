package exporter

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// documentMeta is the frontmatter envelope written ahead of the markdown
// body. Field order is fixed by the struct so output stays diffable.
type documentMeta struct {
	Title      string    `yaml:"title"`
	DocumentID string    `yaml:"document_id"`
	RevisionID int       `yaml:"revision_id,omitempty"`
	ExportedAt time.Time `yaml:"exported_at"`
	Warnings   []string  `yaml:"warnings,omitempty"`
}

// renderFrontmatter serialises metadata into a YAML frontmatter block with
// the conventional --- delimiters.
func renderFrontmatter(meta documentMeta) (string, error) {
	var b strings.Builder
	b.WriteString("---\n")

	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return "", fmt.Errorf("exporter: encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("exporter: encode frontmatter: %w", err)
	}

	b.WriteString("---\n")
	return b.String(), nil
}
