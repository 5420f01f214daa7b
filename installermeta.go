// Package installermeta extracts installer metadata (MSI, DMG, DEB, RPM, PE)
// from a byte buffer and renders the result as JSON.
package installermeta

import (
	"encoding/json"

	"github.com/deploymenttheory/installer-metadata/internal/dispatch"
)

// Analyze runs the full extraction pipeline and returns the result as an
// indented JSON object. When no analyzer recognizes the input, or a
// claiming analyzer hits an irrecoverable structural error, the returned
// JSON is a single-key error object instead of a metadata map.
func Analyze(data []byte) string {
	meta, err := dispatch.New().Analyze(data)
	if err != nil {
		return mustEncode(map[string]string{"error": err.Error()})
	}
	return mustEncode(meta)
}

// Info reports only the format classification and input size. Unlike
// Analyze, Info always succeeds: an unrecognized buffer is reported with
// Format "Invalid binary" or "Unsupported" rather than as an error.
func Info(data []byte) string {
	return mustEncode(dispatch.New().Info(data))
}

func mustEncode(v map[string]string) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return `{"error":"internal: failed to encode result"}`
	}
	return string(b)
}
