// Package msi parses Windows Installer (MSI) databases: an OLE Compound
// File container holding a string pool, fixed-width table streams, and an
// OLE property-set SummaryInformation stream.
package msi

import (
	"github.com/deploymenttheory/installer-metadata/internal/ole"
)

// Identify reports whether data opens as an OLE Compound File, the MSI
// container format.
func Identify(data []byte) bool {
	return ole.HasSignature(data)
}

// Extract parses data as an MSI database and returns its metadata. It never
// raises: a compound-file open failure degrades to heuristic extraction
// with a CompoundFileError diagnostic field, matching the round-trip law
// that an OLE-signed file with no valid streams still yields Format=MSI.
func Extract(data []byte) map[string]string {
	meta := map[string]string{"Format": "MSI"}

	cf, err := ole.Open(data)
	if err != nil {
		extractHeuristics(data, meta)
		meta["CompoundFileError"] = err.Error()
		aliasFields(meta)
		return meta
	}
	defer cf.Close()

	rawNames := cf.StreamNames()

	if pool := loadStringPool(cf, rawNames); pool != nil {
		extractTables(cf, rawNames, pool, meta)
	}

	extractSummaryInfo(cf, rawNames, meta)

	_, hasName := meta["ProductName"]
	_, hasVersion := meta["ProductVersion"]
	if !hasName || !hasVersion {
		extractHeuristics(data, meta)
	}

	aliasFields(meta)
	return meta
}
