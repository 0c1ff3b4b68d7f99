package render

import "fmt"

// WarningCode classifies a non-fatal issue encountered during conversion.
type WarningCode string

const (
	WarningUnsupportedBlock WarningCode = "unsupported_block"
	WarningInlineDecode     WarningCode = "inline_decode"
	WarningEmptyRun         WarningCode = "empty_run"
	WarningMissingAsset     WarningCode = "missing_asset"
	WarningTableShape       WarningCode = "table_shape"
	WarningHeadingClamped   WarningCode = "heading_clamped"
)

// Warning records one non-fatal conversion issue. Warnings are collected on
// the Result and never silently dropped.
type Warning struct {
	Code    WarningCode
	BlockID string
	Message string
}

func (w Warning) String() string {
	if w.BlockID == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s block=%s: %s", w.Code, w.BlockID, w.Message)
}

type warningList struct {
	items []Warning
}

func (l *warningList) add(code WarningCode, blockID, format string, args ...any) {
	l.items = append(l.items, Warning{
		Code:    code,
		BlockID: blockID,
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *warningList) all() []Warning {
	if len(l.items) == 0 {
		return nil
	}
	out := make([]Warning, len(l.items))
	copy(out, l.items)
	return out
}
