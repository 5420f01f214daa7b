package scan

import "testing"

func TestFindBytes(t *testing.T) {
	data := []byte("hello world, installer here")
	if got := FindBytes(data, []byte("world")); got != 6 {
		t.Fatalf("expected index 6, got %d", got)
	}
	if got := FindBytes(data, []byte("missing")); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
	if got := FindBytes([]byte("ab"), []byte("abc")); got != -1 {
		t.Fatalf("needle longer than haystack must return -1, got %d", got)
	}
	if got := FindBytes(data, nil); got != -1 {
		t.Fatalf("empty needle must return -1, got %d", got)
	}
}

func TestContainsAny(t *testing.T) {
	data := []byte("this installer uses Nullsoft Install System internally")
	sub, ok := ContainsAny(data, "Inno Setup", "Nullsoft Install System", "WiX Toolset")
	if !ok || sub != "Nullsoft Install System" {
		t.Fatalf("expected Nullsoft Install System match, got %q ok=%v", sub, ok)
	}
	if _, ok := ContainsAny(data, "Inno Setup", "WiX Toolset"); ok {
		t.Fatalf("expected no match")
	}
}

func TestIsValidMetadataString(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Acme Widget Pro", true},
		{"1.2.3", false},             // no alpha
		{"ab", false},                 // too short
		{"Windows Installer", false}, // blacklisted
		{"ProductCode", false},       // blacklisted
		{"Héllo", false},             // non-ASCII rune rejected
		{"Acme, Inc. (Pro)", true},
	}
	for _, c := range cases {
		if got := IsValidMetadataString(c.in); got != c.want {
			t.Errorf("IsValidMetadataString(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPrintableStrings(t *testing.T) {
	data := []byte("ab\x00cde\x01fghij")
	got := PrintableStrings(data)
	want := []string{"cde", "fghij"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFindGUID(t *testing.T) {
	data := []byte("prefix {12345678-1234-1234-1234-1234567890AB} suffix")
	got := FindGUID(data)
	want := "{12345678-1234-1234-1234-1234567890AB}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := FindGUID([]byte("no guid here")); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestFindVersion(t *testing.T) {
	data := []byte("build 3.1.4 shipped alongside 2.5.0.9")
	got := FindVersion(data)
	if got != "2.5.0.9" {
		t.Fatalf("expected the higher-dot-count candidate 2.5.0.9, got %q", got)
	}
	if got := FindVersion([]byte("no versions in here")); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
