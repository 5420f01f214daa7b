package msi

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/deploymenttheory/installer-metadata/internal/ole"
)

// loadStringPool locates the !StringPool/!StringData stream pair among the
// compound file's (still-mangled) raw stream names and builds the resolved
// string pool, or returns nil if either stream is missing or empty.
func loadStringPool(cf *ole.File, rawNames []string) *stringPool {
	var poolData, stringData []byte
	for _, raw := range rawNames {
		switch decodeStreamName(raw) {
		case "!StringPool":
			if b, err := cf.ReadStream(raw); err == nil {
				poolData = b
			}
		case "!StringData":
			if b, err := cf.ReadStream(raw); err == nil {
				stringData = b
			}
		}
	}
	if len(poolData) == 0 || len(stringData) == 0 {
		return nil
	}
	return newStringPool(poolData, stringData)
}

// extractTables walks the Property, File, Component, Feature, and
// LaunchCondition table streams and fills in meta per §4.3's row layouts.
func extractTables(cf *ole.File, rawNames []string, pool *stringPool, meta map[string]string) {
	idx := pool.indexSize

	for _, raw := range rawNames {
		decoded := decodeStreamName(raw)
		name := strings.TrimPrefix(strings.TrimPrefix(decoded, "!"), "\x05")

		switch name {
		case "Property":
			data, err := cf.ReadStream(raw)
			if err != nil {
				continue
			}
			rowSize := idx * 2
			for _, row := range chunksExact(data, rowSize) {
				keyIdx := readIdx(row, 0, idx)
				valIdx := readIdx(row, idx, idx)
				key, kok := pool.get(keyIdx)
				val, vok := pool.get(valIdx)
				if kok && vok && key != "" && val != "" {
					meta[key] = val
				}
			}

		case "File":
			data, err := cf.ReadStream(raw)
			if err != nil {
				continue
			}
			rowSize := idx*5 + 8
			if rowSize > 0 {
				meta["FileCount"] = strconv.Itoa(len(data) / rowSize)
			}
			sizeOffset := idx * 3
			var total uint64
			for _, row := range chunksExact(data, rowSize) {
				if len(row) >= sizeOffset+4 {
					total += uint64(binary.LittleEndian.Uint32(row[sizeOffset : sizeOffset+4]))
				}
			}
			meta["TotalFileSize"] = strconv.FormatUint(total, 10)

		case "Component":
			data, err := cf.ReadStream(raw)
			if err != nil {
				continue
			}
			rowSize := idx*5 + 2
			if rowSize > 0 {
				meta["ComponentCount"] = strconv.Itoa(len(data) / rowSize)
			}

		case "Feature":
			data, err := cf.ReadStream(raw)
			if err != nil {
				continue
			}
			rowSize := idx*5 + 6
			if rowSize > 0 {
				meta["FeatureCount"] = strconv.Itoa(len(data) / rowSize)
			}

		case "LaunchCondition":
			data, err := cf.ReadStream(raw)
			if err != nil {
				continue
			}
			rowSize := idx * 2
			var conditions []string
			for _, row := range chunksExact(data, rowSize) {
				valIdx := readIdx(row, idx, idx)
				if val, ok := pool.get(valIdx); ok {
					conditions = append(conditions, val)
				}
			}
			if len(conditions) > 0 {
				meta["LaunchConditions"] = strings.Join(conditions, " | ")
			}
		}
	}
}

// extractSummaryInfo locates the SummaryInformation stream and merges its
// properties into meta per the overwrite rule carried on each property.
func extractSummaryInfo(cf *ole.File, rawNames []string, meta map[string]string) {
	var raw string
	for _, r := range rawNames {
		if decodeStreamName(r) == "\x05SummaryInformation" {
			raw = r
			break
		}
	}
	if raw == "" {
		return
	}
	data, err := cf.ReadStream(raw)
	if err != nil {
		return
	}
	props, err := ole.ParseSummaryInfo(data)
	if err != nil {
		return
	}
	for _, p := range props {
		if _, exists := meta[p.Field]; exists && !p.AlwaysOverwrite {
			continue
		}
		meta[p.Field] = p.Value
	}
}

// chunksExact splits data into size-byte chunks, dropping any remainder
// shorter than size (mirroring Rust's chunks_exact).
func chunksExact(data []byte, size int) [][]byte {
	if size <= 0 {
		return nil
	}
	var out [][]byte
	for i := 0; i+size <= len(data); i += size {
		out = append(out, data[i:i+size])
	}
	return out
}
