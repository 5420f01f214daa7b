package dmg

import "strings"

// createFieldAliases is the unconditional final post-pass: it sanitizes
// ProductName, derives ProgramName/FileDescription from it, propagates
// CompanyName into Vendor/Publisher and ProductVersion into the various
// FileVersion aliases when those are still unset, and falls back to a
// generic FileDescription if nothing else produced one.
func createFieldAliases(meta map[string]string) {
	if name, ok := meta["ProductName"]; ok {
		clean := sanitizeString(name)
		if clean == "" {
			delete(meta, "ProductName")
		} else {
			meta["ProductName"] = clean
			setIfAbsent(meta, "ProgramName", clean)
			setIfAbsent(meta, "FileDescription", clean+" Installer")
		}
	}

	if company, ok := meta["CompanyName"]; ok {
		setIfAbsent(meta, "Vendor", company)
		setIfAbsent(meta, "Publisher", company)
	}

	if version, ok := meta["ProductVersion"]; ok {
		setIfAbsent(meta, "FileVersion", version)
		setIfAbsent(meta, "FileVersionNumber", version)
		setIfAbsent(meta, "ProductVersionNumber", version)
	}

	setIfAbsent(meta, "FileDescription", "Apple Disk Image")
}

// sanitizeString strips control characters (keeping whitespace), collapses
// runs of whitespace to a single space, and trims the result.
func sanitizeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' || r == ' ' {
			b.WriteRune(' ')
			continue
		}
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
