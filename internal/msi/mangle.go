package msi

import "strings"

// decodeStreamName reverses the MSI mangled stream-name encoding. Names
// beginning with '!' or the control character 0x05 are special (string
// pool streams, SummaryInformation) and pass through unchanged. Otherwise
// each UTF-16 code unit in [0x3800,0x4840) packs two 6-bit codes; each code
// maps through decodeChar into one output rune. Code units outside that
// range pass through as-is.
func decodeStreamName(name string) string {
	if strings.HasPrefix(name, "!") || strings.HasPrefix(name, "\x05") {
		return name
	}

	var out strings.Builder
	for _, c := range name {
		n := uint32(c)
		if n >= 0x3800 && n < 0x4840 {
			n -= 0x3800
			char1 := uint8(n & 0x3F)
			char2 := uint8((n >> 6) & 0x3F)
			out.WriteRune(decodeChar(char1))
			if char2 != 0 {
				out.WriteRune(decodeChar(char2))
			}
		} else {
			out.WriteRune(c)
		}
	}
	return out.String()
}

func decodeChar(c uint8) rune {
	switch {
	case c <= 9:
		return rune('0' + c)
	case c >= 10 && c <= 35:
		return rune('a' + (c - 10))
	case c >= 36 && c <= 61:
		return rune('A' + (c - 36))
	case c == 62:
		return '_'
	case c == 63:
		return '.'
	default:
		return ' '
	}
}
