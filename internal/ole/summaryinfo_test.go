package ole

import (
	"encoding/binary"
	"testing"
)

func buildSummaryInfo(pid uint32, value string) []byte {
	stringBytes := append([]byte(value), 0)
	buf := make([]byte, 64+8+len(stringBytes)+8)

	buf[0], buf[1] = 0xFE, 0xFF
	binary.LittleEndian.PutUint32(buf[44:48], 48)                      // sectionOffset
	binary.LittleEndian.PutUint32(buf[48:52], uint32(len(buf)-48))     // sectionSize
	binary.LittleEndian.PutUint32(buf[52:56], 1)                       // count

	binary.LittleEndian.PutUint32(buf[56:60], pid)
	binary.LittleEndian.PutUint32(buf[60:64], 16) // propOff relative to section start

	binary.LittleEndian.PutUint32(buf[64:68], vtLPSTR)
	binary.LittleEndian.PutUint32(buf[68:72], uint32(len(stringBytes)))
	copy(buf[72:], stringBytes)

	return buf
}

func TestParseSummaryInfo(t *testing.T) {
	data := buildSummaryInfo(3, "hello")
	props, err := ParseSummaryInfo(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("expected 1 property, got %d", len(props))
	}
	if props[0].Field != "ProductName" || props[0].Value != "hello" {
		t.Fatalf("unexpected property: %+v", props[0])
	}
	if props[0].AlwaysOverwrite {
		t.Fatal("ProductName (pid 3) must not be marked AlwaysOverwrite")
	}
}

func TestParseSummaryInfoAlwaysOverwriteField(t *testing.T) {
	data := buildSummaryInfo(6, "some comment")
	props, err := ParseSummaryInfo(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 1 || !props[0].AlwaysOverwrite {
		t.Fatalf("expected Comments (pid 6) to be AlwaysOverwrite, got %+v", props)
	}
}

func TestParseSummaryInfoRejectsMissingBOM(t *testing.T) {
	data := buildSummaryInfo(3, "hello")
	data[0], data[1] = 0, 0
	if _, err := ParseSummaryInfo(data); err == nil {
		t.Fatal("expected an error when the byte-order mark is missing")
	}
}

func TestParseSummaryInfoRejectsTooShort(t *testing.T) {
	if _, err := ParseSummaryInfo(make([]byte, 10)); err == nil {
		t.Fatal("expected an error for a too-short buffer")
	}
}
