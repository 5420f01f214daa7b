// Package pe identifies and extracts metadata from Windows Portable
// Executable files: architecture and version-resource strings via
// github.com/saferwall/pe, plus byte-pattern heuristics for the installer
// type, an embedded MSI, and a digital-signature subject.
package pe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	sfpe "github.com/saferwall/pe"

	"github.com/deploymenttheory/installer-metadata/internal/msi"
	"github.com/deploymenttheory/installer-metadata/internal/scan"
)

var mzSignature = []byte{'M', 'Z'}

// Identify reports whether data begins with the MS-DOS "MZ" header that
// every PE image (and MS-DOS executable) carries.
func Identify(data []byte) bool {
	return len(data) >= 2 && data[0] == mzSignature[0] && data[1] == mzSignature[1]
}

// Extract parses a PE image and returns its metadata fields. sfpe.NewBytes
// dereferences opts without a nil check when called with opts == nil, so an
// empty, non-nil *sfpe.Options{} is always passed here.
func Extract(data []byte) (map[string]string, error) {
	file, err := sfpe.NewBytes(data, &sfpe.Options{})
	if err != nil {
		return nil, fmt.Errorf("open PE file: %w", err)
	}
	defer file.Close()

	if err := file.Parse(); err != nil {
		return nil, fmt.Errorf("parse PE file: %w", err)
	}

	meta := make(map[string]string)
	meta["Format"] = "PE"

	detectInstallerType(data, meta)

	if file.Is64 {
		meta["Architecture"] = "x64"
	} else {
		meta["Architecture"] = "x86"
	}

	extractHeaderFields(file, meta)
	extractVersionResources(file, meta)

	return meta, nil
}

func extractHeaderFields(file *sfpe.File, meta map[string]string) {
	fh := file.NtHeader.FileHeader
	meta["Machine"] = fmt.Sprintf("0x%04X", uint16(fh.Machine))
	meta["NumberOfSections"] = strconv.Itoa(int(fh.NumberOfSections))
	meta["SizeOfOptionalHeader"] = strconv.Itoa(int(fh.SizeOfOptionalHeader))
	meta["Characteristics"] = fmt.Sprintf("0x%04X", uint16(fh.Characteristics))
	meta["PointerToSymbolTable"] = strconv.Itoa(int(fh.PointerToSymbolTable))
	meta["NumberOfSymbols"] = strconv.Itoa(int(fh.NumberOfSymbols))
	if fh.TimeDateStamp > 0 {
		meta["Timestamp"] = strconv.Itoa(int(fh.TimeDateStamp))
	}

	switch opt := file.NtHeader.OptionalHeader.(type) {
	case sfpe.ImageOptionalHeader32:
		meta["EntryPoint"] = fmt.Sprintf("0x%08X", opt.AddressOfEntryPoint)
		meta["ImageBase"] = fmt.Sprintf("0x%08X", opt.ImageBase)
		meta["SizeOfImage"] = strconv.Itoa(int(opt.SizeOfImage))
		meta["Subsystem"] = strconv.Itoa(int(opt.Subsystem))
		meta["DllCharacteristics"] = fmt.Sprintf("0x%04X", uint16(opt.DllCharacteristics))
	case sfpe.ImageOptionalHeader64:
		meta["EntryPoint"] = fmt.Sprintf("0x%08X", opt.AddressOfEntryPoint)
		meta["ImageBase"] = fmt.Sprintf("0x%016X", opt.ImageBase)
		meta["SizeOfImage"] = strconv.Itoa(int(opt.SizeOfImage))
		meta["Subsystem"] = strconv.Itoa(int(opt.Subsystem))
		meta["DllCharacteristics"] = fmt.Sprintf("0x%04X", uint16(opt.DllCharacteristics))
	}
}

func extractVersionResources(file *sfpe.File, meta map[string]string) {
	if !file.HasResource {
		meta["HasResources"] = "false"
		return
	}
	meta["HasResources"] = "true"

	extractFixedFileInfo(file, meta)

	strs, err := file.ParseVersionResources()
	if err != nil {
		meta["VersionInfoError"] = err.Error()
		return
	}
	if len(strs) == 0 {
		meta["NoStringsFound"] = "true"
		appendDigitalSignatureSuffix(meta)
		return
	}
	meta["HasVersionInfo"] = "true"

	for key, value := range strs {
		if value == "" {
			continue
		}
		meta[key] = value
		switch key {
		case "FileDescription":
			meta["ProgramName"] = value
		case "CompanyName":
			meta["Vendor"] = value
			meta["Publisher"] = value
		case "ProductVersion":
			meta["Version"] = value
		}
	}
}

// extractFixedFileInfo walks the VS_FIXEDFILEINFO block that precedes
// StringFileInfo/VarFileInfo in each VS_VERSIONINFO resource.
// sfpe.ParseVersionResources only surfaces the StringFileInfo table, so the
// fixed block is read here directly via the library's exported
// VsFixedFileInfo layout and offset helpers, the same fields
// extract_pe32_metadata/extract_pe64_metadata derive from fixed.dwFileVersion
// and fixed.dwProductVersion.
func extractFixedFileInfo(file *sfpe.File, meta map[string]string) {
	for _, e := range file.Resources.Entries {
		if e.ID != sfpe.VersionResourceType {
			continue
		}
		directory := e.Directory.Entries[0].Directory
		for _, entry := range directory.Entries {
			ff, err := parseFixedFileInfo(file, entry)
			if err != nil {
				continue
			}

			meta["FileVersionNumber"] = versionQuad(ff.FileVersionMS, ff.FileVersionLS)
			meta["ProductVersionNumber"] = versionQuad(ff.ProductVersionMS, ff.ProductVersionLS)
			meta["FileFlags"] = fmt.Sprintf("0x%08X", ff.FileFlags)
			meta["FileOS"] = fmt.Sprintf("0x%08X", ff.FileOS)
			meta["FileType"] = fmt.Sprintf("0x%08X", ff.FileType)
			return
		}
	}
}

// versionQuad formats an MS/LS uint32 pair as the Major.Minor.Patch.Build
// dotted version string VS_FIXEDFILEINFO packs into two 32-bit halves, each
// itself split into two 16-bit words.
func versionQuad(ms, ls uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", ms>>16, ms&0xFFFF, ls>>16, ls&0xFFFF)
}

// parseFixedFileInfo re-derives sfpe's own unexported (*File).parseFixedFileInfo
// using only its exported VsFixedFileInfo.GetOffset/Size and File.ReadBytesAtOffset.
func parseFixedFileInfo(file *sfpe.File, e sfpe.ResourceDirectoryEntry) (*sfpe.VsFixedFileInfo, error) {
	var f sfpe.VsFixedFileInfo
	offset := f.GetOffset(e, file)
	b, err := file.ReadBytesAtOffset(offset, f.Size())
	if err != nil {
		return nil, err
	}
	if err := binary.Read(bytes.NewBuffer(b), binary.LittleEndian, &f); err != nil {
		return nil, err
	}
	if f.Signature != sfpe.VsFileInfoSignature {
		return nil, fmt.Errorf("invalid VS_FIXEDFILEINFO signature %d", f.Signature)
	}
	return &f, nil
}

// appendDigitalSignatureSuffix appends " (from digital signature)" to
// CompanyName/Publisher/Vendor when no version-info strings were found but a
// signature-derived company name is already present, so the fallback source
// of that field stays visible to callers.
func appendDigitalSignatureSuffix(meta map[string]string) {
	const suffix = " (from digital signature)"

	company, ok := meta["CompanyName"]
	if !ok || meta["SignedBy"] == "" || strings.Contains(company, "from digital signature") {
		return
	}

	meta["CompanyName"] = company + suffix
	if publisher, ok := meta["Publisher"]; ok {
		meta["Publisher"] = publisher + suffix
	}
	if vendor, ok := meta["Vendor"]; ok {
		meta["Vendor"] = vendor + suffix
	}
}

var installerTypeMarkers = []struct {
	name    string
	markers []string
}{
	{"Inno Setup", []string{"Inno Setup", "InnoSetupVersion"}},
	{"NSIS (Nullsoft)", []string{"Nullsoft Install System", "NSIS.Header"}},
	{"InstallShield", []string{"Windows Installer", "InstallShield"}},
	{"WiX Toolset", []string{"WiX Toolset", "Windows Installer XML"}},
	{"Wise Installer", []string{"Wise Installation System"}},
	{"Setup Factory", []string{"Setup Factory"}},
	{"Smart Install Maker", []string{"Smart Install Maker"}},
}

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func detectInstallerType(data []byte, meta map[string]string) {
	for _, entry := range installerTypeMarkers {
		if _, found := scan.ContainsAny(data, entry.markers...); found {
			meta["InstallerType"] = entry.name
			break
		}
	}

	if pos := scan.FindBytes(data, oleSignature); pos >= 0 {
		meta["EmbeddedMSI"] = "true"
		meta["MSIOffset"] = strconv.Itoa(pos)
		extractEmbeddedMSI(data, pos, meta)
	}

	extractSignatureInfo(data, meta)
}

var embeddedMSIFields = []struct {
	msiKey string
	peKey  string
}{
	{"ProductName", "ProductName"},
	{"Manufacturer", "CompanyName"},
	{"Manufacturer", "Publisher"},
	{"ProductVersion", "Version"},
}

func extractEmbeddedMSI(data []byte, offset int, meta map[string]string) {
	if offset >= len(data) {
		return
	}
	msiData := data[offset:]
	if !msi.Identify(msiData) {
		return
	}
	msiMeta := msi.Extract(msiData)

	for _, f := range embeddedMSIFields {
		value, ok := msiMeta[f.msiKey]
		if !ok {
			continue
		}
		if _, exists := meta[f.peKey]; exists {
			continue
		}
		meta[f.peKey+"FromEmbeddedMSI"] = value
		meta[f.peKey] = value + " (from embedded MSI)"
	}
}

var signaturePatterns = []struct {
	marker string
	minLen int
}{
	{"O=", 2},
	{"CN=", 3},
}

// extractSignatureInfo scans for an "O=" or "CN=" certificate-subject
// fragment and, if a plausible company name follows, records SignedBy and
// fills CompanyName/Publisher/Vendor when those are still unset.
func extractSignatureInfo(data []byte, meta map[string]string) {
	for _, pat := range signaturePatterns {
		pos := scan.FindBytes(data, []byte(pat.marker))
		if pos < 0 {
			continue
		}
		start := pos + pat.minLen
		if start >= len(data) {
			continue
		}
		end := start + 100
		if end > len(data) {
			end = len(data)
		}
		candidate := data[start:end]

		textEnd := 0
		for i, b := range candidate {
			if b == ',' || b == 0 || b < 32 || b > 126 {
				break
			}
			textEnd = i + 1
		}
		if textEnd < 3 {
			continue
		}

		name := strings.TrimSpace(string(candidate[:textEnd]))
		if !isPlausibleSignerName(name) {
			continue
		}

		meta["SignedBy"] = name
		if _, ok := meta["CompanyName"]; !ok {
			meta["CompanyName"] = name
			meta["Publisher"] = name
			meta["Vendor"] = name
		}
		return
	}
}

func isPlausibleSignerName(name string) bool {
	if len(name) < 3 || len(name) >= 100 {
		return false
	}
	hasAlpha := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasAlpha = true
		case r >= '0' && r <= '9', r == ' ', r == '.', r == '-', r == ',', r == '&':
		default:
			return false
		}
	}
	return hasAlpha
}

