package deb

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"testing"
)

// arMember renders one BSD ar archive member: a 60-byte fixed header
// followed by the data, padded to an even length with '\n'.
func arMember(name string, data []byte) []byte {
	header := fmt.Sprintf("%-16s%-12d%-6d%-6d%-8s%-10d`\n",
		name, 0, 0, 0, "100644", len(data))
	buf := append([]byte(header), data...)
	if len(buf)%2 != 0 {
		buf = append(buf, '\n')
	}
	return buf
}

func buildTar(files map[string]string) []byte {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			panic(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			panic(err)
		}
	}
	tw.Close()
	return buf.Bytes()
}

func buildMinimalDeb(control string) []byte {
	var tarBuf bytes.Buffer
	gz := gzip.NewWriter(&tarBuf)
	gz.Write(buildTar(map[string]string{"control": control}))
	gz.Close()

	var out bytes.Buffer
	out.WriteString("!<arch>\n")
	out.Write(arMember("debian-binary", []byte("2.0\n")))
	out.Write(arMember("control.tar.gz", tarBuf.Bytes()))
	return out.Bytes()
}

const minimalControl = "Package: pkg\nVersion: 1.2.3\nArchitecture: all\n"

func TestIdentify(t *testing.T) {
	data := buildMinimalDeb(minimalControl)
	if !Identify(data) {
		t.Fatal("expected Identify to recognize a minimal .deb")
	}
	if Identify([]byte("not an ar archive")) {
		t.Fatal("expected Identify to reject non-ar data")
	}
}

func TestExtractMinimal(t *testing.T) {
	data := buildMinimalDeb(minimalControl)
	meta, err := Extract(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"Format":       "DEB",
		"Package":      "pkg",
		"Version":      "1.2.3",
		"Architecture": "all",
	}
	for k, v := range want {
		if meta[k] != v {
			t.Errorf("meta[%q] = %q, want %q", k, meta[k], v)
		}
	}
}

func TestExtractMissingControlTar(t *testing.T) {
	var out bytes.Buffer
	out.WriteString("!<arch>\n")
	out.Write(arMember("debian-binary", []byte("2.0\n")))
	if _, err := Extract(out.Bytes()); err == nil {
		t.Fatal("expected an error when no control.tar member is present")
	}
}

func TestParseControlFile(t *testing.T) {
	meta := make(map[string]string)
	parseControlFile([]byte("Package: pkg\n\nMalformed line\nVersion: 1.0\n"), meta)
	if meta["Package"] != "pkg" || meta["Version"] != "1.0" {
		t.Fatalf("unexpected parse result: %v", meta)
	}
	if _, ok := meta[""]; ok {
		t.Fatal("a colon-less line must not produce an entry")
	}
}
