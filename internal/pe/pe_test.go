package pe

import "testing"

func TestIdentify(t *testing.T) {
	if !Identify([]byte("MZ\x90\x00")) {
		t.Fatal("expected Identify to recognize the MZ prefix")
	}
	if Identify([]byte("PK\x03\x04")) {
		t.Fatal("expected Identify to reject a non-MZ prefix")
	}
	if Identify([]byte{'M'}) {
		t.Fatal("expected Identify to reject a truncated 1-byte prefix")
	}
}

func TestDetectInstallerTypeMarkers(t *testing.T) {
	meta := make(map[string]string)
	detectInstallerType([]byte("this stub was built with Inno Setup 6"), meta)
	if meta["InstallerType"] != "Inno Setup" {
		t.Fatalf("expected InstallerType=Inno Setup, got %q", meta["InstallerType"])
	}
}

func TestExtractSignatureInfo(t *testing.T) {
	meta := make(map[string]string)
	data := []byte("issuer CN=Acme Corporation, OU=Engineering, C=US rest of cert blob")
	extractSignatureInfo(data, meta)
	if meta["SignedBy"] != "Acme Corporation" {
		t.Fatalf("expected SignedBy=Acme Corporation, got %q", meta["SignedBy"])
	}
	if meta["CompanyName"] != "Acme Corporation" {
		t.Fatalf("expected CompanyName derived from signature, got %q", meta["CompanyName"])
	}
	if meta["Publisher"] != "Acme Corporation" {
		t.Fatalf("expected Publisher derived from signature, got %q", meta["Publisher"])
	}
	if meta["Vendor"] != "Acme Corporation" {
		t.Fatalf("expected Vendor derived from signature, got %q", meta["Vendor"])
	}
}

func TestAppendDigitalSignatureSuffix(t *testing.T) {
	meta := map[string]string{
		"SignedBy":    "Acme Corporation",
		"CompanyName": "Acme Corporation",
		"Publisher":   "Acme Corporation",
		"Vendor":      "Acme Corporation",
	}
	appendDigitalSignatureSuffix(meta)
	for _, key := range []string{"CompanyName", "Publisher", "Vendor"} {
		if meta[key] != "Acme Corporation (from digital signature)" {
			t.Fatalf("expected %s to carry the digital-signature suffix, got %q", key, meta[key])
		}
	}

	appendDigitalSignatureSuffix(meta)
	if meta["CompanyName"] != "Acme Corporation (from digital signature)" {
		t.Fatalf("expected the suffix to not be applied twice, got %q", meta["CompanyName"])
	}
}

func TestAppendDigitalSignatureSuffixSkippedWithoutSignedBy(t *testing.T) {
	meta := map[string]string{"CompanyName": "Acme Corporation (from embedded MSI)"}
	appendDigitalSignatureSuffix(meta)
	if meta["CompanyName"] != "Acme Corporation (from embedded MSI)" {
		t.Fatalf("expected CompanyName to be untouched without a SignedBy entry, got %q", meta["CompanyName"])
	}
}

func TestVersionQuad(t *testing.T) {
	// 0x00040003 -> Major=4, Minor=3; 0x00020001 -> Patch=2, Build=1.
	got := versionQuad(0x00040003, 0x00020001)
	if got != "4.3.2.1" {
		t.Fatalf("expected 4.3.2.1, got %q", got)
	}
}

func TestExtractSignatureInfoDoesNotOverwriteCompanyName(t *testing.T) {
	meta := map[string]string{"CompanyName": "Existing Vendor"}
	data := []byte("CN=Someone Else, rest")
	extractSignatureInfo(data, meta)
	if meta["CompanyName"] != "Existing Vendor" {
		t.Fatalf("expected existing CompanyName to be preserved, got %q", meta["CompanyName"])
	}
	if meta["SignedBy"] != "Someone Else" {
		t.Fatalf("expected SignedBy to still be recorded, got %q", meta["SignedBy"])
	}
}

func TestIsPlausibleSignerName(t *testing.T) {
	if !isPlausibleSignerName("Acme Corp, Inc.") {
		t.Fatal("expected a normal signer name to be plausible")
	}
	if isPlausibleSignerName("ab") {
		t.Fatal("expected a too-short name to be rejected")
	}
	if isPlausibleSignerName("12345") {
		t.Fatal("expected a name with no alphabetic rune to be rejected")
	}
}
