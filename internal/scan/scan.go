// Package scan implements the leaf byte-inspection primitives shared by
// every format analyzer: substring search, printable-string sweeps, and the
// GUID/version pattern matchers used as heuristic fallbacks.
package scan

import (
	"sort"
	"strings"
)

// MaxMetadataStringLen is the upper bound a heuristic extractor will accept
// for a candidate value; structured parsers may keep longer strings up to
// the 200-byte ceiling enforced by the caller.
const MaxMetadataStringLen = 100

// MinMetadataStringLen is the shortest candidate a heuristic extractor will
// accept.
const MinMetadataStringLen = 3

// FindBytes returns the index of the first occurrence of needle in
// haystack, or -1 if absent. Linear scan, no allocation.
func FindBytes(haystack, needle []byte) int {
	if len(needle) == 0 || len(haystack) < len(needle) {
		return -1
	}
	first := needle[0]
	limit := len(haystack) - len(needle)
	for i := 0; i <= limit; i++ {
		if haystack[i] != first {
			continue
		}
		if string(haystack[i:i+len(needle)]) == string(needle) {
			return i
		}
	}
	return -1
}

// ContainsAny reports whether data (viewed as lossily-decoded text) contains
// any of the given substrings.
func ContainsAny(data []byte, substrs ...string) (string, bool) {
	s := string(data)
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}

var metadataBlacklist = []string{
	"Installation Database",
	"Installer Database",
	"Windows Installer",
	"Microsoft Corporation",
	"MsiExec",
	"Property",
	"Feature",
	"Component",
	"Directory",
	"Registry",
	"AdminExecuteSequence",
	"InstallExecuteSequence",
	"ProductCode",
	"UpgradeCode",
	"TARGETDIR",
	"ProgramFilesFolder",
}

// IsValidMetadataString applies the metadata-string validator from §4.2:
// length in [3,100], at least one alphabetic rune, every rune drawn from
// alnum/whitespace/.-_,()&', and none of the installer-framework blacklist
// substrings present.
func IsValidMetadataString(s string) bool {
	if len(s) < MinMetadataStringLen || len(s) > MaxMetadataStringLen {
		return false
	}

	hasAlpha := false
	for _, r := range s {
		if isAlpha(r) {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return false
	}

	for _, blocked := range metadataBlacklist {
		if strings.Contains(s, blocked) {
			return false
		}
	}

	for _, r := range s {
		if !isValidMetadataRune(r) {
			return false
		}
	}
	return true
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlnum(r rune) bool {
	return isAlpha(r) || (r >= '0' && r <= '9')
}

func isValidMetadataRune(r rune) bool {
	switch r {
	case '.', '-', '_', ',', '(', ')', '&', '\'':
		return true
	}
	return isAlnum(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// PrintableStrings walks data and returns every maximal run of
// printable-ASCII bytes ([0x20,0x7E]) whose length is at least 3.
func PrintableStrings(data []byte) []string {
	var out []string
	var run []byte
	flush := func() {
		if len(run) >= 3 {
			out = append(out, string(run))
		}
		run = nil
	}
	for _, b := range data {
		if b >= 0x20 && b <= 0x7E {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()
	return out
}

// FindGUID scans data for the 38-byte shape
// {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX} (X a hex digit) and returns the
// first match, uppercased, including braces. Returns "" if none found.
func FindGUID(data []byte) string {
	n := len(data)
	if n < 38 {
		return ""
	}
	for i := 0; i <= n-38; i++ {
		if data[i] != '{' || data[i+37] != '}' {
			continue
		}
		if data[i+9] != '-' || data[i+14] != '-' || data[i+19] != '-' || data[i+24] != '-' {
			continue
		}
		candidate := data[i : i+38]
		valid := true
		for j, b := range candidate {
			switch {
			case b == '{' || b == '}' || b == '-':
				continue
			case isHex(b):
				continue
			default:
				_ = j
				valid = false
			}
			if !valid {
				break
			}
		}
		if valid {
			return strings.ToUpper(string(candidate))
		}
	}
	return ""
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// FindVersion scans data for maximal digit-dot runs matching
// [0-9](\.[0-9]+){1,3} (total length <= 20) and returns the candidate
// reproducing the original's stable-sort-then-pop selection: ascending by
// (dot count, not-"3."-prefixed), so higher dot counts always win, and
// among equal dot counts the last-seen non-"3."-prefixed candidate beats
// the last-seen "3."-prefixed one. Returns "" if none found.
func FindVersion(data []byte) string {
	var candidates []string
	n := len(data)
	for i := 0; i+2 < n; i++ {
		if !isDigit(data[i]) || data[i+1] != '.' || !isDigit(data[i+2]) {
			continue
		}
		j := i
		var buf []byte
		for j < n && (isDigit(data[j]) || data[j] == '.') {
			buf = append(buf, data[j])
			j++
			if len(buf) > 20 {
				break
			}
		}
		if len(buf) > 20 {
			continue
		}
		cand := string(buf)
		parts := strings.Split(cand, ".")
		if len(parts) < 2 || len(parts) > 4 {
			continue
		}
		allNumeric := true
		for _, p := range parts {
			if p == "" || !allDigits(p) {
				allNumeric = false
				break
			}
		}
		if allNumeric {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	key := func(v string) (int, bool) {
		dots := strings.Count(v, ".")
		notLowMajor := !strings.HasPrefix(v, "3.")
		return dots, notLowMajor
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		di, ni := key(candidates[i])
		dj, nj := key(candidates[j])
		if di != dj {
			return di < dj
		}
		// false < true, so a "3."-prefixed candidate (notLowMajor=false)
		// sorts before a non-"3." one on equal dot count.
		return !ni && nj
	})
	return candidates[len(candidates)-1]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
