package dmg

import (
	"bytes"

	"github.com/deploymenttheory/installer-metadata/internal/scan"
)

const infoPlistWindow = 100000
const bplistScanLimit = 50000

var xmlMarkers = [][]byte{
	[]byte(`<?xml version="1.0"`),
	[]byte(`<plist version=`),
	[]byte(`<!DOCTYPE plist`),
}

var bplistMarker = []byte("bplist")

// findPlist locates an embedded property list: a ±100,000-byte window
// around the literal "Contents/Info.plist" marker is searched first (the
// common case for a mounted app bundle); if nothing plist-shaped turns up
// there, the whole buffer is searched as a fallback.
func findPlist(data []byte) []byte {
	pos := bytes.Index(data, []byte("Contents/Info.plist"))
	if pos >= 0 {
		start := pos - infoPlistWindow
		if start < 0 {
			start = 0
		}
		end := pos + infoPlistWindow
		if end > len(data) {
			end = len(data)
		}
		if found := findPlistInRegion(data[start:end]); found != nil {
			return found
		}
	}
	return findPlistInRegion(data)
}

// findPlistInRegion looks for an XML plist first (in the fixed marker
// order below), accepting only a candidate that mentions one of the three
// bundle keys that make it plausibly an app Info.plist, then falls back to
// a binary plist (bplist) marker with a fixed 50 KB scan window.
func findPlistInRegion(data []byte) []byte {
	for _, marker := range xmlMarkers {
		pos := scan.FindBytes(data, marker)
		if pos < 0 {
			continue
		}
		endRel := scan.FindBytes(data[pos:], []byte("</plist>"))
		if endRel < 0 {
			continue
		}
		candidate := data[pos : pos+endRel+8]
		if bytes.Contains(candidate, []byte("CFBundleName")) ||
			bytes.Contains(candidate, []byte("CFBundleIdentifier")) ||
			bytes.Contains(candidate, []byte("CFBundleVersion")) {
			return candidate
		}
	}

	if pos := scan.FindBytes(data, bplistMarker); pos >= 0 {
		end := pos + bplistScanLimit
		if end > len(data) {
			end = len(data)
		}
		return data[pos:end]
	}

	return nil
}
