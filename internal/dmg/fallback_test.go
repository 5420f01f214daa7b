package dmg

import "testing"

func TestExtractVersionStrings(t *testing.T) {
	meta := make(map[string]string)
	extractVersionStrings([]byte("build info: Version 3.2.1 final"), meta)
	if meta["ProductVersion"] != "3.2.1" {
		t.Fatalf("expected ProductVersion=3.2.1, got %q", meta["ProductVersion"])
	}
}

func TestExtractVersionStringsSkippedIfAlreadySet(t *testing.T) {
	meta := map[string]string{"ProductVersion": "9.9.9"}
	extractVersionStrings([]byte("Version 3.2.1"), meta)
	if meta["ProductVersion"] != "9.9.9" {
		t.Fatal("extractVersionStrings must not overwrite an existing ProductVersion")
	}
}

func TestExtractDeveloperInfo(t *testing.T) {
	meta := make(map[string]string)
	extractDeveloperInfo([]byte("Copyright \xC2\xA9 2024 Acme Corporation.\nSome trailing text"), meta)
	if meta["CompanyName"] != "Acme Corporation" {
		t.Fatalf("expected CompanyName=Acme Corporation, got %q", meta["CompanyName"])
	}
	if meta["Publisher"] != meta["CompanyName"] {
		t.Fatal("expected Publisher to mirror CompanyName")
	}
}

func TestExtractAppNamesFromPathSegment(t *testing.T) {
	meta := make(map[string]string)
	extractAppNames([]byte("/Volumes/Example/Example App.app/Contents/MacOS/Example"), meta)
	if meta["ProductName"] != "Example App" {
		t.Fatalf("expected ProductName=Example App, got %q", meta["ProductName"])
	}
	if meta["ApplicationBundle"] != "Example App.app" {
		t.Fatalf("expected ApplicationBundle=Example App.app, got %q", meta["ApplicationBundle"])
	}
}

func TestExtractAppNamesSkipsKnownNonAppSegments(t *testing.T) {
	meta := make(map[string]string)
	extractAppNames([]byte("/Contents/Frameworks/lib.app/nested"), meta)
	if _, ok := meta["ProductName"]; ok {
		t.Fatalf("expected skip-listed path segments to be rejected, got %q", meta["ProductName"])
	}
}

func TestExtractXMLKeyString(t *testing.T) {
	data := []byte("<key>CFBundleName</key>\n\t<string>Widget</string>")
	if got := extractXMLKeyString(data, "CFBundleName"); got != "Widget" {
		t.Fatalf("got %q, want Widget", got)
	}
	if got := extractXMLKeyString(data, "Missing"); got != "" {
		t.Fatalf("expected empty for an absent key, got %q", got)
	}
}
