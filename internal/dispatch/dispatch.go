// Package dispatch sniffs a buffer against the five supported installer
// formats in a fixed priority order and delegates to the matching analyzer.
package dispatch

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/deploymenttheory/installer-metadata/internal/deb"
	"github.com/deploymenttheory/installer-metadata/internal/dmg"
	"github.com/deploymenttheory/installer-metadata/internal/msi"
	"github.com/deploymenttheory/installer-metadata/internal/pe"
	"github.com/deploymenttheory/installer-metadata/internal/rpm"
)

// minBinarySize is the shortest buffer any sniffer could plausibly claim.
// Below it the input cannot carry any format's magic bytes at all.
const minBinarySize = 8

// Limits bounds the resource cost of the per-format heuristic scans. The
// analyzer packages currently apply their own fixed values internally
// (16 MiB control.tar.gz cap in internal/deb, 50,000-byte bplist window and
// +/-100000 byte Info.plist search window in internal/dmg); Limits documents
// those values for callers who need to reason about worst-case cost, and is
// the seam a future caller-configurable dispatcher would thread through.
type Limits struct {
	MaxControlTarBytes int
	MaxBPlistScanBytes int
	PlistSearchWindow  int
}

// DefaultLimits mirrors the constants the analyzer packages enforce today.
var DefaultLimits = Limits{
	MaxControlTarBytes: 16 << 20,
	MaxBPlistScanBytes: 50 * 1000,
	PlistSearchWindow:  100000,
}

// Dispatcher evaluates sniffers in fixed order: MSI, DMG, DEB, RPM, PE.
type Dispatcher struct {
	Limits Limits
}

// New returns a Dispatcher configured with DefaultLimits.
func New() *Dispatcher {
	return &Dispatcher{Limits: DefaultLimits}
}

// sniff returns the format name of the first analyzer whose Identify
// reports true, or "" if none claims the buffer.
func sniff(data []byte) string {
	switch {
	case msi.Identify(data):
		return "MSI"
	case dmg.Identify(data):
		return "DMG"
	case deb.Identify(data):
		return "DEB"
	case rpm.Identify(data):
		return "RPM"
	case pe.Identify(data):
		return "PE"
	default:
		return ""
	}
}

// Analyze runs the full extraction pipeline: the first sniffer to claim the
// buffer has its analyzer's Extract result returned, with Size appended.
// An error is returned when no sniffer claims the buffer, or when the
// claiming analyzer hits an irrecoverable structural error.
func (d *Dispatcher) Analyze(data []byte) (map[string]string, error) {
	format := sniff(data)

	var meta map[string]string
	switch format {
	case "MSI":
		meta = msi.Extract(data)
	case "DMG":
		meta = dmg.Extract(data)
	case "DEB":
		m, err := deb.Extract(data)
		if err != nil {
			return nil, fmt.Errorf("extract DEB metadata: %w", err)
		}
		meta = m
	case "RPM":
		m, err := rpm.Extract(data)
		if err != nil {
			return nil, fmt.Errorf("extract RPM metadata: %w", err)
		}
		meta = m
	case "PE":
		m, err := pe.Extract(data)
		if err != nil {
			return nil, fmt.Errorf("extract PE metadata: %w", err)
		}
		meta = m
	default:
		return nil, fmt.Errorf("no analyzer recognized this input")
	}

	meta["Size"] = strconv.Itoa(len(data))
	return meta, nil
}

// Info returns only the classification and size, without running any
// analyzer's full extraction. Unlike Analyze, Info always succeeds: an
// unrecognized buffer is reported as "Unsupported" when it starts with the
// magic of an executable format no analyzer handles (ELF, Mach-O), and as
// "Invalid binary" otherwise, including any buffer too short to carry a magic.
func (d *Dispatcher) Info(data []byte) map[string]string {
	format := sniff(data)
	if format == "" {
		format = "Invalid binary"
		if len(data) >= minBinarySize {
			switch binary.BigEndian.Uint32(data[:4]) {
			case 0x7F454C46, 0xFEEDFACE, 0xFEEDFACF, 0xCEFAEDFE, 0xCFFAEDFE, 0xCAFEBABE:
				format = "Unsupported"
			}
		}
	}

	return map[string]string{
		"Format": format,
		"Size":   strconv.Itoa(len(data)),
	}
}
