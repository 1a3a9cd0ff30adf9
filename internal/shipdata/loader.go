package shipdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// loadEmbedded decodes one of the embedded JSON data files.
func loadEmbedded[T any](filename string) (T, error) {
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	return decodeStrict[T](filename, bytes.NewReader(content))
}

// decodeStrict decodes a single JSON document and rejects fields the
// target type does not declare, so a typo in a data file fails loudly
// instead of leaving a zero value behind.
func decodeStrict[T any](name string, r io.Reader) (T, error) {
	var result T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", name, err)
	}
	if dec.More() {
		return result, fmt.Errorf("failed to parse JSON from %s: trailing data", name)
	}
	return result, nil
}
