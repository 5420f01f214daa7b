package rpm

// aliasFields applies the §3 field-aliasing post-pass, mirroring
// internal/msi's and internal/dmg's: ProductVersion seeds the FileVersion
// family, ProductName seeds ProgramName, and Vendor (the RPM tag, already
// named Vendor in tagFieldNames) seeds Publisher. It runs once, after tag
// parsing has completed, so a tag value already present always wins.
func aliasFields(meta map[string]string) {
	if pv, ok := meta["ProductVersion"]; ok {
		setIfAbsent(meta, "FileVersion", pv)
		setIfAbsent(meta, "FileVersionNumber", pv)
		setIfAbsent(meta, "ProductVersionNumber", pv)
	}
	if pn, ok := meta["ProductName"]; ok {
		setIfAbsent(meta, "ProgramName", pn)
	}
	if vendor, ok := meta["Vendor"]; ok {
		setIfAbsent(meta, "Publisher", vendor)
	}
}

func setIfAbsent(meta map[string]string, key, value string) {
	if _, ok := meta[key]; !ok {
		meta[key] = value
	}
}
