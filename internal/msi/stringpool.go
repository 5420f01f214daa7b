package msi

import (
	"encoding/binary"
	"unicode/utf16"
)

// stringPool resolves the 1-based integer indices used by MSI table rows
// against the concatenated blob in !StringData, built once per extraction
// per the ownership note in SPEC_FULL.md §9.
type stringPool struct {
	strings   []string
	indexSize int
}

// newStringPool parses the !StringPool header (codepage, flags, then 4-byte
// {refcount,length} records) and slices !StringData in pool order. Index 0
// is reserved; entries are addressed 1-based via get.
func newStringPool(poolData, stringData []byte) *stringPool {
	if len(poolData) < 4 {
		return &stringPool{indexSize: 2}
	}

	codepage := binary.LittleEndian.Uint16(poolData[0:2])
	flags := binary.LittleEndian.Uint16(poolData[2:4])
	indexSize := 2
	if flags&0x8000 != 0 {
		indexSize = 3
	}

	nEntries := (len(poolData) - 4) / 4
	strs := make([]string, 0, nEntries)
	offset := 0

	for i := 0; i < nEntries; i++ {
		recOff := 4 + i*4
		length := int(binary.LittleEndian.Uint16(poolData[recOff+2 : recOff+4]))

		if length == 0 {
			strs = append(strs, "")
			continue
		}

		end := offset + length
		if end <= len(stringData) {
			chunk := stringData[offset:end]
			if codepage == 1200 {
				strs = append(strs, decodeUTF16LE(chunk))
			} else {
				strs = append(strs, string(chunk))
			}
		} else {
			strs = append(strs, "")
		}
		offset += length
	}

	return &stringPool{strings: strs, indexSize: indexSize}
}

// get resolves a 1-based string-pool index; index 0 and out-of-range
// indices return ("", false).
func (p *stringPool) get(index int) (string, bool) {
	if index <= 0 || index > len(p.strings) {
		return "", false
	}
	return p.strings[index-1], true
}

func decodeUTF16LE(b []byte) string {
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return string(utf16.Decode(units))
}

// readIdx reads a 2-byte or 3-byte little-endian index at offset within
// data, per the pool's index_size. Returns 0 if out of bounds.
func readIdx(data []byte, offset, size int) int {
	if len(data) < offset+size {
		return 0
	}
	switch size {
	case 2:
		return int(binary.LittleEndian.Uint16(data[offset : offset+2]))
	case 3:
		return int(data[offset]) | int(data[offset+1])<<8 | int(data[offset+2])<<16
	default:
		return 0
	}
}
