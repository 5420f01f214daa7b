// Package dmg identifies and extracts metadata from Apple Disk Images
// (UDIF): the 512-byte "koly" trailer plus a targeted search for an
// embedded Info.plist, rather than full UDIF block decompression (out of
// scope per spec.md's non-goals).
package dmg

import (
	"encoding/binary"
	"strconv"
)

const kolyTrailerSize = 512
const minDMGSize = 512

var kolySignature = []byte("koly")

// Identify reports whether data is large enough to carry a koly trailer
// and either (a) the trailer is present at len-512, or (b) the leading
// bytes match a known compression magic AND the trailer is present — both
// conditions are required in case (b), matching §4.5's boundary behavior
// that a compression-looking prefix alone (no koly trailer) is rejected.
func Identify(data []byte) bool {
	if len(data) < minDMGSize {
		return false
	}
	if hasKolyTrailer(data) {
		return true
	}
	if looksCompressed(data) && hasKolyTrailer(data) {
		return true
	}
	return false
}

func hasKolyTrailer(data []byte) bool {
	if len(data) < kolyTrailerSize {
		return false
	}
	offset := len(data) - kolyTrailerSize
	return string(data[offset:offset+4]) == string(kolySignature)
}

func looksCompressed(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch {
	case data[0] == 0x78 && data[1] == 0x01 && data[2] == 0x73 && data[3] == 0x0D:
		return true
	case data[0] == 0x78 && data[1] == 0x9C && data[2] == 0xEC && data[3] == 0xBD:
		return true
	case data[0] == 0x78 && data[1] == 0x9C && data[2] == 0x00 && data[3] == 0x00:
		return true
	case data[0] == 0x78 && data[1] == 0x01:
		return true
	case data[0] == 0x78 && data[1] == 0x5E:
		return true
	case data[0] == 0x78 && data[1] == 0x9C:
		return true
	case data[0] == 0x78 && data[1] == 0xDA:
		return true
	case data[0] == 0x1F && data[1] == 0x8B:
		return true
	case data[0] == 0x42 && data[1] == 0x5A && data[2] == 0x68 && data[3] == 0x39:
		return true
	case data[0] == 0x42 && data[1] == 0x5A && data[2] == 0x68 && data[3] == 0x31:
		return true
	default:
		return false
	}
}

// compressionName names the leading-byte compression magic, mirroring
// parse_dmg_metadata's own (looser, 2-byte) detection used purely to label
// the Compression field — not the stricter Identify gate above.
func compressionName(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	switch {
	case (data[0] == 0x78 && data[1] == 0x01) || (data[0] == 0x78 && data[1] == 0x5E) ||
		(data[0] == 0x78 && data[1] == 0x9C) || (data[0] == 0x78 && data[1] == 0xDA):
		return "zlib"
	case data[0] == 0x1F && data[1] == 0x8B:
		return "gzip"
	case data[0] == 0x42 && data[1] == 0x5A && data[2] == 0x68 && (data[3] == 0x39 || data[3] == 0x31):
		return "bzip2"
	case data[0] == 0x00 && data[1] == 0x00:
		return "uncompressed"
	default:
		return "unknown"
	}
}

// readTrailer fills in the koly-trailer-derived fields: HasKolySignature,
// KolyOffset, DMGVersion (big-endian u32 four bytes into the trailer).
func readTrailer(data []byte, meta map[string]string) {
	if len(data) < kolyTrailerSize {
		return
	}
	offset := len(data) - kolyTrailerSize
	if string(data[offset:offset+4]) != string(kolySignature) {
		return
	}
	meta["HasKolySignature"] = "true"
	meta["KolyOffset"] = strconv.Itoa(offset)
	if offset+8 <= len(data) {
		version := binary.BigEndian.Uint32(data[offset+4 : offset+8])
		meta["DMGVersion"] = strconv.FormatUint(uint64(version), 10)
	}
}
