package entities

import (
	"encoding/json"
	"fmt"
)

// Report is the style document of a single project: a flat map from metric
// keys (such as "file:README.md" or "lines_of:py") to scalar values, plus the
// "requirements" name list and the HEAD provenance keys.
type Report map[string]any

// NewReport creates an empty report.
func NewReport() Report {
	return Report{}
}

// Update copies every entry of other into the report, overwriting existing
// keys. Keys absent from other are left alone, which is what lets documents
// keep values from metric groups that are disabled or long gone.
func (it Report) Update(other Report) {
	for key, value := range other {
		it[key] = value
	}
}

// Render encodes the report with four-space indentation, sorted keys and a
// trailing newline. The same report always renders to the same bytes.
func (it Report) Render() ([]byte, error) {
	data, err := json.MarshalIndent(it, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseReport decodes a previously rendered report.
func ParseReport(data []byte) (Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return report, nil
}
