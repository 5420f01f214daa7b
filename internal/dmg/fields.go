package dmg

import (
	"strings"
	"unicode"

	"github.com/deploymenttheory/installer-metadata/internal/plist"
)

// plistFieldMap is the §4.5 source-key → canonical-key table, in the order
// the original tries them.
var plistFieldMap = []struct {
	plistKey string
	metaKey  string
}{
	{"CFBundleName", "ProductName"},
	{"CFBundleDisplayName", "DisplayName"},
	{"CFBundleExecutable", "ExecutableName"},
	{"CFBundleIdentifier", "BundleIdentifier"},
	{"CFBundleShortVersionString", "ProductVersion"},
	{"CFBundleVersion", "FileVersion"},
	{"NSHumanReadableCopyright", "LegalCopyright"},
	{"CFBundleGetInfoString", "FileDescription"},
	{"LSApplicationCategoryType", "ApplicationCategory"},
	{"CFBundlePackageType", "PackageType"},
	{"NSPrincipalClass", "PrincipalClass"},
	{"CFBundleIconFile", "IconFile"},
	{"LSMinimumSystemVersion", "MinimumSystemVersion"},
}

// parsePlistProperly decodes candidate as an XML or binary property list
// and fills meta from the dictionary per plistFieldMap, then synthesizes
// ProductName-from-DisplayName, FileVersion-from-ProductVersion, and
// CompanyName-from-BundleIdentifier the way the structured parser does
// (distinct from, and running before, the later alias post-pass).
func parsePlistProperly(candidate []byte, meta map[string]string) {
	dict, err := plist.Decode(candidate)
	if err != nil {
		return
	}

	for _, kv := range plistFieldMap {
		s, ok := plist.String(dict, kv.plistKey)
		if !ok {
			continue
		}
		value := strings.TrimSpace(s)
		if value == "" {
			continue
		}
		if kv.metaKey == "ApplicationCategory" {
			meta[kv.metaKey] = cleanApplicationCategory(value)
		} else {
			meta[kv.metaKey] = value
		}
	}

	if _, ok := meta["ProductName"]; !ok {
		if dn, ok := meta["DisplayName"]; ok {
			meta["ProductName"] = dn
		}
	}
	if pv, ok := meta["ProductVersion"]; ok {
		if _, ok := meta["FileVersion"]; !ok {
			meta["FileVersion"] = pv
		}
	}
	if _, ok := meta["CompanyName"]; !ok {
		if bundleID, ok := meta["BundleIdentifier"]; ok {
			if company, ok := companyFromBundleID(bundleID); ok {
				meta["CompanyName"] = company
			}
		}
	}
}

// cleanApplicationCategory takes the last dot-delimited segment of an
// LSApplicationCategoryType value (e.g. "public.app-category.utilities"),
// replaces dashes with spaces, and title-cases each word.
func cleanApplicationCategory(value string) string {
	segments := strings.Split(value, ".")
	last := segments[len(segments)-1]
	replaced := strings.ReplaceAll(last, "-", " ")
	words := strings.Fields(replaced)
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}

// companyFromBundleID takes the second dot-delimited segment of a reverse-DNS
// bundle identifier (e.g. "com.acme.app" -> "acme") and capitalizes it, iff
// that segment is pure alphanumeric.
func companyFromBundleID(bundleID string) (string, bool) {
	parts := strings.Split(bundleID, ".")
	if len(parts) < 2 {
		return "", false
	}
	company := parts[1]
	if company == "" || !isAlphanumeric(company) {
		return "", false
	}
	return capitalizeFirst(company), true
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
