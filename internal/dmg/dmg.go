package dmg

// Extract parses a UDIF disk image: it reads the koly trailer, searches for
// an embedded Info.plist, parses it structurally when found, falls back to
// raw-string heuristics for anything the structured parse left unset, and
// finally applies the field-aliasing post-pass. It never returns an error —
// a disk image with no recognizable plist still yields the trailer-derived
// fields and whatever the fallback scans turn up.
func Extract(data []byte) map[string]string {
	meta := make(map[string]string)
	meta["Format"] = "DMG"

	readTrailer(data, meta)
	if name := compressionName(data); name != "" {
		meta["Compression"] = name
	}

	if candidate := findPlist(data); candidate != nil {
		parsePlistProperly(candidate, meta)
	}

	if _, hasName := meta["ProductName"]; !hasName {
		extractPlistInfo(data, meta)
	} else if _, hasVersion := meta["ProductVersion"]; !hasVersion {
		extractPlistInfo(data, meta)
	}

	extractVersionStrings(data, meta)
	extractBundleInfo(data, meta)
	extractDeveloperInfo(data, meta)

	if _, ok := meta["ProductName"]; !ok {
		extractAppNames(data, meta)
	}

	createFieldAliases(meta)

	return meta
}
