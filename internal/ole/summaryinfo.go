package ole

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Property-set variant types used by SummaryInformation.
const (
	vtLPSTR  = 30
	vtLPWSTR = 31
)

// summaryFieldNames maps an OLE property ID to the canonical field name it
// fills. Only the IDs the extraction cares about are listed; others are
// ignored.
var summaryFieldNames = map[uint32]string{
	2: "Title",
	3: "ProductName",
	4: "Manufacturer",
	5: "Keywords",
	6: "Comments",
	9: "PackageCode",
}

// summaryAlwaysOverwrite lists the property IDs that are summary-only
// fields and always win over whatever a structured table parse already
// produced (Title/Keywords/Comments/PackageCode); the rest (ProductName,
// Manufacturer) only fill in when the caller's map doesn't already have
// that key.
var summaryAlwaysOverwrite = map[uint32]bool{
	2: true,
	5: true,
	6: true,
	9: true,
}

// SummaryProperty is one decoded (field name, string value) pair from a
// SummaryInformation stream, in on-disk entry order.
type SummaryProperty struct {
	Field           string
	Value           string
	AlwaysOverwrite bool
}

// ParseSummaryInfo decodes the OLE Property Set encoding used by the
// SummaryInformation stream: a 2-byte byte-order mark (0xFFFE) at offset 0,
// a section offset at offset 44, and at that offset a section header
// (size, property count) followed by (propertyID, offset) pairs pointing at
// VT_LPSTR/VT_LPWSTR encoded values relative to the section start. Only the
// properties this library maps to a canonical field are returned, in entry
// order, so callers can apply their own merge rule against an existing
// metadata map.
func ParseSummaryInfo(data []byte) ([]SummaryProperty, error) {
	if len(data) < 48 {
		return nil, fmt.Errorf("summary information stream too short (%d bytes)", len(data))
	}
	if data[0] != 0xFE || data[1] != 0xFF {
		return nil, fmt.Errorf("summary information missing byte-order mark")
	}

	sectionOffset := binary.LittleEndian.Uint32(data[44:48])
	if int(sectionOffset)+8 > len(data) {
		return nil, fmt.Errorf("summary information section offset out of range")
	}

	sectionSize := binary.LittleEndian.Uint32(data[sectionOffset : sectionOffset+4])
	count := binary.LittleEndian.Uint32(data[sectionOffset+4 : sectionOffset+8])
	if int(sectionOffset)+int(sectionSize) > len(data) {
		return nil, fmt.Errorf("summary information section size out of range")
	}
	entryBase := int(sectionOffset) + 8

	var props []SummaryProperty
	for i := uint32(0); i < count; i++ {
		entryOff := entryBase + int(i)*8
		if entryOff+8 > len(data) {
			break
		}
		pid := binary.LittleEndian.Uint32(data[entryOff : entryOff+4])
		propOff := binary.LittleEndian.Uint32(data[entryOff+4 : entryOff+8])

		field, wanted := summaryFieldNames[pid]
		if !wanted {
			continue
		}

		value, ok := readSummaryValue(data, int(sectionOffset)+int(propOff))
		if !ok || value == "" {
			continue
		}
		props = append(props, SummaryProperty{
			Field:           field,
			Value:           value,
			AlwaysOverwrite: summaryAlwaysOverwrite[pid],
		})
	}

	return props, nil
}

// readSummaryValue reads a VT_LPSTR or VT_LPWSTR value at the given absolute
// offset into data. Returns ok=false if the type is unsupported or the
// value is out of bounds.
func readSummaryValue(data []byte, offset int) (string, bool) {
	if offset < 0 || offset+4 > len(data) {
		return "", false
	}
	typ := binary.LittleEndian.Uint32(data[offset : offset+4])
	body := offset + 4

	switch typ {
	case vtLPSTR:
		if body+4 > len(data) {
			return "", false
		}
		n := int(binary.LittleEndian.Uint32(data[body : body+4]))
		start := body + 4
		if n < 0 || start+n > len(data) {
			return "", false
		}
		return trimNUL(string(data[start : start+n])), true
	case vtLPWSTR:
		if body+4 > len(data) {
			return "", false
		}
		n := int(binary.LittleEndian.Uint32(data[body : body+4]))
		start := body + 4
		end := start + n*2
		if n < 0 || end > len(data) {
			return "", false
		}
		units := make([]uint16, n)
		for i := 0; i < n; i++ {
			units[i] = binary.LittleEndian.Uint16(data[start+i*2 : start+i*2+2])
		}
		return trimNUL(string(utf16.Decode(units))), true
	default:
		return "", false
	}
}

func trimNUL(s string) string {
	for i, r := range s {
		if r == 0 {
			return s[:i]
		}
	}
	return s
}
