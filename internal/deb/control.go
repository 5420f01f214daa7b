package deb

import "strings"

// parseControlFile parses Debian control-file syntax: each "Key: Value"
// line (split on the first colon only) yields one entry with a trimmed key
// and non-empty trimmed value. Blank lines and lines without a colon are
// skipped.
func parseControlFile(data []byte, meta map[string]string) {
	for _, line := range strings.Split(string(data), "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" || value == "" {
			continue
		}
		meta[key] = value
	}
}
