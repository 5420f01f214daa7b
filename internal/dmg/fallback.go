package dmg

import (
	"strings"

	"github.com/deploymenttheory/installer-metadata/internal/scan"
)

// extractPlistInfo scans for raw "<key>X</key>...<string>Y</string>" pairs
// directly in the whole buffer, for the cases where a structured plist
// decode either failed or left fields unset. Mirrors extract_plist_info's
// per-key conditions exactly, including that CFBundleVersion only fills
// ProductVersion (plus FileVersionNumber) when ProductVersion is still
// absent at the time it runs.
func extractPlistInfo(data []byte, meta map[string]string) {
	setIfAbsent(meta, "ProductName", extractXMLKeyString(data, "CFBundleName"))
	setIfAbsent(meta, "DisplayName", extractXMLKeyString(data, "CFBundleDisplayName"))
	setIfAbsent(meta, "ProductVersion", extractXMLKeyString(data, "CFBundleShortVersionString"))

	if _, ok := meta["ProductVersion"]; !ok {
		if v := extractXMLKeyString(data, "CFBundleVersion"); v != "" {
			meta["ProductVersion"] = v
			meta["FileVersionNumber"] = v
		}
	}

	setIfAbsent(meta, "LegalCopyright", extractXMLKeyString(data, "NSHumanReadableCopyright"))
	setIfAbsent(meta, "FileDescription", extractXMLKeyString(data, "CFBundleGetInfoString"))

	if cat := extractXMLKeyString(data, "LSApplicationCategoryType"); cat != "" {
		setIfAbsent(meta, "ApplicationCategory", cleanApplicationCategory(cat))
	}

	setIfAbsent(meta, "PrincipalClass", extractXMLKeyString(data, "NSPrincipalClass"))
}

// extractXMLKeyString finds "<key>NAME</key>" and returns the contents of
// the "<string>...</string>" element that immediately follows it, or "" if
// the pattern isn't present.
func extractXMLKeyString(data []byte, key string) string {
	marker := []byte("<key>" + key + "</key>")
	pos := scan.FindBytes(data, marker)
	if pos < 0 {
		return ""
	}
	rest := data[pos+len(marker):]
	openTag := []byte("<string>")
	openPos := scan.FindBytes(rest, openTag)
	if openPos < 0 || openPos > 200 {
		return ""
	}
	rest = rest[openPos+len(openTag):]
	closePos := scan.FindBytes(rest, []byte("</string>"))
	if closePos < 0 {
		return ""
	}
	return strings.TrimSpace(string(rest[:closePos]))
}

// extractVersionStrings looks for the literal "Version " marker followed by
// a digit/dot run, only when no ProductVersion has been found yet by any
// earlier stage.
func extractVersionStrings(data []byte, meta map[string]string) {
	if _, ok := meta["ProductVersion"]; ok {
		return
	}
	marker := []byte("Version ")
	pos := scan.FindBytes(data, marker)
	if pos < 0 {
		return
	}
	rest := data[pos+len(marker):]
	n := 0
	for n < len(rest) && n < 20 && (isVersionByte(rest[n])) {
		n++
	}
	if n == 0 {
		return
	}
	cand := string(rest[:n])
	if strings.Count(cand, ".") == 0 {
		return
	}
	meta["ProductVersion"] = cand
}

func isVersionByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.'
}

// extractBundleInfo scans for a raw CFBundleIdentifier key/value pair and
// synthesizes CompanyName/Manufacturer from its second dot-delimited
// segment, the same way the structured parser does for plist-derived
// identifiers.
func extractBundleInfo(data []byte, meta map[string]string) {
	bundleID := extractXMLKeyString(data, "CFBundleIdentifier")
	if bundleID == "" {
		return
	}
	setIfAbsent(meta, "BundleIdentifier", bundleID)
	if company, ok := companyFromBundleID(bundleID); ok {
		setIfAbsent(meta, "CompanyName", company)
		setIfAbsent(meta, "Manufacturer", company)
	}
}

var developerPatterns = []string{
	"Copyright", "Inc.", "Corporation", "Corp.", "LLC", "Ltd.", "Limited",
}

// extractDeveloperInfo looks at the 100 bytes after the first "Copyright"
// occurrence and, after skipping digits, "©", parentheses, dashes and
// spaces, takes the text up to the next newline, NUL or '.' as CompanyName
// and Publisher. Only "Copyright" is searched for; developerPatterns is not
// consulted.
func extractDeveloperInfo(data []byte, meta map[string]string) {
	if _, ok := meta["CompanyName"]; ok {
		return
	}
	pos := scan.FindBytes(data, []byte("Copyright"))
	if pos < 0 {
		return
	}
	start := pos + len("Copyright")
	end := start + 100
	if end > len(data) {
		end = len(data)
	}
	raw := data[start:end]

	i := 0
	for i < len(raw) && (isDigitByte(raw[i]) || raw[i] == 0xC2 || raw[i] == 0xA9 ||
		raw[i] == '(' || raw[i] == ')' || raw[i] == '-' || raw[i] == ' ') {
		i++
	}
	raw = raw[i:]

	cut := len(raw)
	for j, b := range raw {
		if b == '\n' || b == 0 || b == '.' {
			cut = j
			break
		}
	}
	company := strings.TrimSpace(string(raw[:cut]))
	if len(company) < 2 || len(company) > 100 {
		return
	}
	meta["CompanyName"] = company
	meta["Publisher"] = company
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

var appNameSkipNames = map[string]bool{
	"www": true, "html": true, "com": true, "http": true, "https": true,
	"ftp": true, "temp": true, "tmp": true, "test": true, "example": true,
	"demo": true, "data": true, "cache": true, "lib": true, "bin": true,
	"usr": true, "var": true, "resources": true, "frameworks": true,
	"macos": true, "contents": true, "applications": true,
}

var appNameStringSkipPatterns = []string{
	"http", "www", "https", "ftp", "com.", "org.", ".app", "plist", "xml",
}

// extractAppNames scans for ".app" path segments (e.g. "MyApp.app/Contents")
// and falls back to a printable-ASCII sweep of the first 16 KiB if no
// path-segment name validates. Only runs when ProductName is still unset.
func extractAppNames(data []byte, meta map[string]string) {
	if _, ok := meta["ProductName"]; ok {
		return
	}

	if name, ok := findAppPathSegment(data); ok {
		meta["ProductName"] = name
		meta["ApplicationBundle"] = name + ".app"
		return
	}

	window := data
	if len(window) > 16384 {
		window = window[:16384]
	}
	candidates := scan.PrintableStrings(window)

	var best string
	for _, c := range candidates {
		if len(c) < 5 || len(c) > 100 {
			continue
		}
		if !isCleanAppString(c) {
			continue
		}
		if strings.Contains(c, "Installer") || strings.Contains(c, "Setup") {
			meta["ProductName"] = c
			return
		}
		if best == "" {
			best = c
		}
	}
	if best != "" {
		meta["ProductName"] = best
	}
}

func findAppPathSegment(data []byte) (string, bool) {
	s := string(data)
	idx := 0
	for {
		pos := strings.Index(s[idx:], ".app")
		if pos < 0 {
			return "", false
		}
		abs := idx + pos
		start := strings.LastIndexAny(s[:abs], "/\\")
		start++
		name := s[start:abs]
		if isValidAppName(name) {
			return name, true
		}
		idx = abs + 4
		if idx >= len(s) {
			return "", false
		}
	}
}

func isValidAppName(name string) bool {
	if len(name) <= 2 || len(name) >= 100 {
		return false
	}
	if appNameSkipNames[strings.ToLower(name)] {
		return false
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "com.") || strings.HasPrefix(lower, "org.") {
		return false
	}
	alphaCount := 0
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			alphaCount++
		case r >= '0' && r <= '9', r == ' ', r == '-', r == '_':
			// allowed, not alpha
		default:
			return false
		}
	}
	return alphaCount >= 3
}

func isCleanAppString(s string) bool {
	lower := strings.ToLower(s)
	for _, pat := range appNameStringSkipPatterns {
		if strings.Contains(lower, pat) {
			return false
		}
	}
	alphaCount := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			alphaCount++
		case r == ' ', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return alphaCount > 3
}

func setIfAbsent(meta map[string]string, key, value string) {
	if value == "" {
		return
	}
	if _, ok := meta[key]; ok {
		return
	}
	meta[key] = value
}
