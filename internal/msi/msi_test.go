package msi

import (
	"strings"
	"testing"

	"github.com/deploymenttheory/installer-metadata/internal/ole"
)

func TestIdentify(t *testing.T) {
	data := append(append([]byte{}, ole.Signature...), make([]byte, 64)...)
	if !Identify(data) {
		t.Fatal("expected Identify to recognize the OLE signature")
	}
	if Identify([]byte("not an ole file")) {
		t.Fatal("expected Identify to reject non-OLE bytes")
	}
}

// TestExtractOLESignatureNoValidStreams exercises the round-trip law from
// §8: an OLE-signed buffer with no valid compound-file structure still
// yields Format=MSI and a CompoundFileError diagnostic, never an error
// return, and still runs the heuristic fallback over the raw bytes.
func TestExtractOLESignatureNoValidStreams(t *testing.T) {
	payload := "ProductName\x00\x00Acme Widget\x00Manufacturer\x00\x00Acme Corp\x00" +
		"{12345678-1234-1234-1234-1234567890AB}"
	data := append(append([]byte{}, ole.Signature...), []byte(payload)...)

	meta := Extract(data)

	if meta["Format"] != "MSI" {
		t.Fatalf("expected Format=MSI, got %q", meta["Format"])
	}
	if meta["CompoundFileError"] == "" {
		t.Fatal("expected a CompoundFileError diagnostic for an unparsable compound file")
	}
	if meta["ProductCode"] != "{12345678-1234-1234-1234-1234567890AB}" {
		t.Fatalf("expected ProductCode from the GUID heuristic, got %q", meta["ProductCode"])
	}
	if meta["UpgradeCode"] != meta["ProductCode"] {
		t.Fatal("ProductCode and UpgradeCode must come from the same GUID scan")
	}
	if !strings.Contains(meta["ProductName"], "Acme Widget") {
		t.Fatalf("expected ProductName heuristic to find Acme Widget, got %q", meta["ProductName"])
	}
}

func TestExtractHeuristicsVersionFallback(t *testing.T) {
	data := append(append([]byte{}, ole.Signature...), []byte("version 4.2.1 embedded")...)
	meta := Extract(data)
	if meta["ProductVersion"] != "4.2.1" {
		t.Fatalf("expected ProductVersion=4.2.1 from the version heuristic, got %q", meta["ProductVersion"])
	}
}

func TestDetectInstallerFramework(t *testing.T) {
	if name, ok := detectInstallerFramework([]byte("built with WixToolset v3")); !ok || name != "WiX Toolset" {
		t.Fatalf("got %q ok=%v", name, ok)
	}
	if _, ok := detectInstallerFramework([]byte("nothing interesting")); ok {
		t.Fatal("expected no framework match")
	}
}
