package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-docmark/internal/validation"
)

// recordEnvelope matches both a bare JSON array of records and the paged
// listing envelope the document service returns.
type recordEnvelope struct {
	Items []json.RawMessage `json:"items"`
}

// DecodeRecords parses the fetch collaborator's JSON payload into block
// records. The payload may be a bare array or an object with an items array.
// Each record envelope is schema-checked before decoding; the first invalid
// record aborts the decode, since a malformed feed cannot produce a
// trustworthy tree.
func DecodeRecords(data []byte) ([]BlockRecord, error) {
	raw, err := rawRecords(data)
	if err != nil {
		return nil, err
	}

	records := make([]BlockRecord, 0, len(raw))
	for i, item := range raw {
		var envelope map[string]any
		if err := json.Unmarshal(item, &envelope); err != nil {
			return nil, fmt.Errorf("blocks: decode record %d: %w", i, err)
		}
		if err := validation.ValidateRecord(envelope); err != nil {
			return nil, fmt.Errorf("blocks: record %d: %w", i, err)
		}

		var record BlockRecord
		if err := json.Unmarshal(item, &record); err != nil {
			return nil, fmt.Errorf("blocks: decode record %d: %w", i, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func rawRecords(data []byte) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var envelope recordEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("blocks: decode record payload: %w", err)
	}
	return envelope.Items, nil
}
