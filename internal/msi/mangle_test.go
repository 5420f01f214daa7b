package msi

import "testing"

func TestDecodeCharTable(t *testing.T) {
	cases := []struct {
		in   uint8
		want rune
	}{
		{0, '0'}, {9, '9'}, {10, 'a'}, {35, 'z'}, {36, 'A'}, {61, 'Z'}, {62, '_'}, {63, '.'},
	}
	for _, c := range cases {
		if got := decodeChar(c.in); got != c.want {
			t.Errorf("decodeChar(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDecodeStreamNamePassthrough(t *testing.T) {
	if got := decodeStreamName("!_StringPool"); got != "!_StringPool" {
		t.Fatalf("expected pool stream names to pass through unchanged, got %q", got)
	}
	if got := decodeStreamName("\x05SummaryInformation"); got != "\x05SummaryInformation" {
		t.Fatalf("expected SummaryInformation name to pass through unchanged, got %q", got)
	}
}

func TestDecodeStreamNameMangled(t *testing.T) {
	// 0x3801 packs char1=1 ('1'), char2=0 (no second output rune).
	name := string(rune(0x3801))
	if got := decodeStreamName(name); got != "1" {
		t.Fatalf("decodeStreamName(0x3801) = %q, want %q", got, "1")
	}

	// 0x3800 + (1 | (11<<6)) packs char1=1 ('1'), char2=11 ('b').
	n := uint32(1) | uint32(11)<<6
	name = string(rune(0x3800 + n))
	if got := decodeStreamName(name); got != "1b" {
		t.Fatalf("decodeStreamName mangled pair = %q, want %q", got, "1b")
	}
}
