// Package rpm parses the RPM Lead, Signature Header, and Immutable Header
// directly from a byte buffer: a 96-byte legacy Lead, then two tag-indexed
// structures sharing one layout, with all multi-byte fields big-endian.
package rpm

import (
	"encoding/binary"
	"fmt"
)

// leadMagic is the 4-byte RPM Lead signature.
var leadMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}

// headerMagic is the 4-byte magic every Header structure (Signature Header
// and Immutable Header) begins with.
var headerMagic = []byte{0x8E, 0xAD, 0xE8, 0x01}

const leadSize = 96

// tagFieldNames maps an Immutable Header tag to the canonical field it
// fills. Tags not listed here are ignored, per §4.7.
var tagFieldNames = map[uint32]string{
	1000: "ProductName",
	1001: "ProductVersion",
	1002: "Release",
	1004: "Description",
	1011: "Vendor",
	1014: "License",
	1016: "GroupName",
	1020: "Url",
	1022: "Architecture",
	1044: "SourceRpm",
}

// Identify reports whether data begins with the RPM Lead magic.
func Identify(data []byte) bool {
	return len(data) >= 4 && equalBytes(data[:4], leadMagic)
}

// Extract parses the Lead (skipped), Signature Header (skipped), and
// Immutable Header (parsed for the tags in tagFieldNames). A truncated or
// malformed header is an irrecoverable structural error: the analyzer
// returns an error rather than a partial map, per §8's boundary behavior
// for a truncated store.
func Extract(data []byte) (map[string]string, error) {
	meta := map[string]string{"Format": "RPM"}

	if len(data) < leadSize {
		return nil, fmt.Errorf("rpm: file too small for Lead (%d bytes)", len(data))
	}

	offset, err := skipHeader(data, leadSize)
	if err != nil {
		return nil, fmt.Errorf("rpm: signature header: %w", err)
	}

	if err := parseHeader(data, offset, meta); err != nil {
		return nil, fmt.Errorf("rpm: immutable header: %w", err)
	}

	aliasFields(meta)

	return meta, nil
}

// skipHeader validates the magic at offset, reads index_count/store_size,
// and returns the offset immediately following this header, padded to a
// multiple of 8 bytes.
func skipHeader(data []byte, offset int) (int, error) {
	if len(data) < offset+16 {
		return 0, fmt.Errorf("too small for header structure")
	}
	if !equalBytes(data[offset:offset+4], headerMagic) {
		return 0, fmt.Errorf("invalid header magic")
	}

	indexCount := int(binary.BigEndian.Uint32(data[offset+8 : offset+12]))
	storeSize := int(binary.BigEndian.Uint32(data[offset+12 : offset+16]))

	totalSize := 16 + indexCount*16 + storeSize
	paddedSize := (totalSize + 7) &^ 7

	return offset + paddedSize, nil
}

// parseHeader validates the magic at offset, then walks each 16-byte
// (tag, type, offset, count) index entry, reading a null-terminated string
// from the value store for every tag this library maps to a field.
func parseHeader(data []byte, offset int, meta map[string]string) error {
	if len(data) < offset+16 {
		return fmt.Errorf("too small for header structure")
	}
	if !equalBytes(data[offset:offset+4], headerMagic) {
		return fmt.Errorf("invalid header magic")
	}

	indexCount := int(binary.BigEndian.Uint32(data[offset+8 : offset+12]))
	storeSize := int(binary.BigEndian.Uint32(data[offset+12 : offset+16]))

	indexStart := offset + 16
	storeStart := indexStart + indexCount*16

	if len(data) < storeStart+storeSize {
		return fmt.Errorf("file truncated in header structure")
	}

	for i := 0; i < indexCount; i++ {
		entryOffset := indexStart + i*16
		tag := binary.BigEndian.Uint32(data[entryOffset : entryOffset+4])
		valOffset := int(binary.BigEndian.Uint32(data[entryOffset+8 : entryOffset+12]))

		field, wanted := tagFieldNames[tag]
		if !wanted {
			continue
		}

		absOffset := storeStart + valOffset
		if s, ok := readCString(data, absOffset); ok {
			meta[field] = s
		}
	}

	return nil
}

func readCString(data []byte, offset int) (string, bool) {
	if offset < 0 || offset >= len(data) {
		return "", false
	}
	end := offset
	for end < len(data) && data[end] != 0 {
		end++
	}
	return string(data[offset:end]), true
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
