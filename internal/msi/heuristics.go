package msi

import (
	"github.com/deploymenttheory/installer-metadata/internal/scan"
)

// extractHeuristics runs the byte-pattern fallbacks used when the
// compound-file structure couldn't be opened, or structured parsing left
// ProductName/ProductVersion unfilled: a GUID scan feeding both ProductCode
// and UpgradeCode (mirroring the source's single underlying scan), a
// version scan, printable-run scans anchored on the literal property names,
// and an installer-framework substring probe.
func extractHeuristics(buf []byte, meta map[string]string) {
	if guid := scan.FindGUID(buf); guid != "" {
		meta["ProductCode"] = guid
		meta["UpgradeCode"] = guid
	}

	if _, ok := meta["ProductVersion"]; !ok {
		if v := scan.FindVersion(buf); v != "" {
			meta["ProductVersion"] = v
		}
	}

	if _, ok := meta["Manufacturer"]; !ok {
		if v, ok := extractPropertyValue(buf, "Manufacturer"); ok {
			meta["Manufacturer"] = v
		}
	}

	if _, ok := meta["ProductName"]; !ok {
		if v, ok := extractPropertyValue(buf, "ProductName"); ok {
			meta["ProductName"] = v
		}
	}

	if framework, ok := detectInstallerFramework(buf); ok {
		meta["InstallerFramework"] = framework
	}
}

func detectInstallerFramework(buf []byte) (string, bool) {
	if _, ok := scan.ContainsAny(buf, "WixToolset", "Windows Installer XML"); ok {
		return "WiX Toolset", true
	}
	if _, ok := scan.ContainsAny(buf, "InstallShield"); ok {
		return "InstallShield", true
	}
	if _, ok := scan.ContainsAny(buf, "Advanced Installer"); ok {
		return "Advanced Installer", true
	}
	return "", false
}

// extractPropertyValue scans for the literal ASCII bytes of propertyName
// and walks up to 200 bytes after it looking for a printable run (never
// containing a backslash) validated by scan.IsValidMetadataString.
func extractPropertyValue(buf []byte, propertyName string) (string, bool) {
	needle := []byte(propertyName)
	pos := scan.FindBytes(buf, needle)
	if pos < 0 {
		return "", false
	}
	start := pos + len(needle)
	if start > len(buf) {
		return "", false
	}
	end := start + 200
	if end > len(buf) {
		end = len(buf)
	}
	searchArea := buf[start:end]

	var found []byte
	inString := false
	for _, b := range searchArea {
		if b >= 32 && b <= 126 && b != '\\' {
			found = append(found, b)
			inString = true
			continue
		}
		if inString && len(found) >= 3 {
			if scan.IsValidMetadataString(string(found)) {
				return string(found), true
			}
		}
		found = nil
		inString = false
	}
	return "", false
}
