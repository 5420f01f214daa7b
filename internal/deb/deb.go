// Package deb parses Debian binary packages: a BSD ar archive holding a
// debian-binary member and a control.tar(.gz|.bz2|.xz|.zst) member whose
// control file carries the package's metadata.
package deb

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/xi2/xz"
)

// Signature is the 8-byte BSD ar archive magic every .deb begins with.
var Signature = []byte("!<arch>\n")

// maxControlTarSize bounds the amount of decompressed control.tar data this
// package will buffer, per SPEC_FULL.md §5's resource cap.
const maxControlTarSize = 16 << 20

// Identify reports whether data is a Debian package: the ar magic followed
// by a first member named debian-binary (ar pads names with trailing
// slashes/spaces).
func Identify(data []byte) bool {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature) {
		return false
	}
	r := ar.NewReader(bytes.NewReader(data))
	hdr, err := r.Next()
	if err != nil {
		return false
	}
	name := strings.TrimRight(hdr.Name, "/ ")
	return name == "debian-binary"
}

// Extract walks the ar archive to the control.tar member, decompresses it,
// and parses its control file. A missing control.tar member or an
// unsupported compression format is an irrecoverable structural error per
// §7; an empty control file yields {Format: DEB} only.
func Extract(data []byte) (map[string]string, error) {
	meta := map[string]string{"Format": "DEB"}

	r := ar.NewReader(bytes.NewReader(data))
	for {
		hdr, err := r.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("deb: no control.tar member found")
		}
		if err != nil {
			return nil, fmt.Errorf("deb: reading ar archive: %w", err)
		}

		name := strings.TrimRight(hdr.Name, "/ ")
		if !strings.HasPrefix(name, "control.tar") {
			continue
		}

		control, err := extractControlFile(name, io.LimitReader(r, maxControlTarSize))
		if err != nil {
			return nil, err
		}
		parseControlFile(control, meta)
		return meta, nil
	}
}

// extractControlFile decompresses member (named control.tar.<ext>) and
// returns the bytes of its control / ./control tar entry.
func extractControlFile(memberName string, body io.Reader) ([]byte, error) {
	ext := strings.TrimPrefix(memberName, "control.tar")

	var decompressed io.Reader
	switch ext {
	case ".gz":
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("deb: opening gzip control.tar: %w", err)
		}
		defer gz.Close()
		decompressed = gz
	case ".bz2":
		decompressed = bzip2.NewReader(body)
	case ".xz":
		xr, err := xz.NewReader(body, 0)
		if err != nil {
			return nil, fmt.Errorf("deb: opening xz control.tar: %w", err)
		}
		decompressed = xr
	case ".zst":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("deb: opening zstd control.tar: %w", err)
		}
		defer zr.Close()
		decompressed = zr
	case "":
		decompressed = body
	default:
		return nil, fmt.Errorf("deb: unsupported control.tar compression %q", ext)
	}

	tr := tar.NewReader(io.LimitReader(decompressed, maxControlTarSize))
	for {
		th, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("deb: control.tar has no control entry")
		}
		if err != nil {
			return nil, fmt.Errorf("deb: reading control.tar: %w", err)
		}
		if th.Name == "control" || th.Name == "./control" {
			buf, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("deb: reading control file: %w", err)
			}
			return buf, nil
		}
	}
}
