package render

import (
	"strings"

	"github.com/goliatone/go-docmark/blocks"
)

// renderTable lays out a cell grid from the table property. Cell ordering is
// row major. When the declared cell list is empty the block children stand in
// for it, which matches documents produced by older service revisions.
func (c *composer) renderTable(rec *blocks.BlockRecord) string {
	if rec.Table == nil {
		c.warnings.add(WarningTableShape, rec.ID, "table block carries no table payload")
		return ""
	}

	rows := rec.Table.Property.RowSize
	cols := rec.Table.Property.ColumnSize
	if rows <= 0 || cols <= 0 {
		c.warnings.add(WarningTableShape, rec.ID, "table declares %dx%d grid", rows, cols)
		return ""
	}

	cellIDs := rec.Table.Cells
	if len(cellIDs) == 0 {
		cellIDs = rec.Children
	}
	if len(cellIDs) != rows*cols {
		c.warnings.add(WarningTableShape, rec.ID, "table declares %dx%d grid but has %d cells", rows, cols, len(cellIDs))
	}

	cells := make([]string, rows*cols)
	for i := range cells {
		if i < len(cellIDs) {
			cells[i] = c.renderTableCell(cellIDs[i])
		}
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.WriteString("|")
		for col := 0; col < cols; col++ {
			b.WriteString(" ")
			b.WriteString(cells[r*cols+col])
			b.WriteString(" |")
		}
		b.WriteString("\n")
		if r == 0 {
			b.WriteString("|")
			for col := 0; col < cols; col++ {
				b.WriteString(" --- |")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *composer) renderTableCell(cellID string) string {
	cell, ok := c.tree.Get(cellID)
	if !ok {
		return ""
	}

	var parts []string
	for _, childID := range cell.Children {
		child, ok := c.tree.Get(childID)
		if !ok {
			continue
		}
		if text, ok := c.renderNode(child); ok && text != "" {
			parts = append(parts, text)
		}
	}
	return sanitizeCell(strings.Join(parts, " "))
}

// sanitizeCell folds a rendered fragment onto a single table row line.
func sanitizeCell(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.Join(strings.Fields(text), " ")
}
