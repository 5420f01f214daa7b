package msi

// aliasFields applies the §4.3 MSI field-aliasing post-pass. It runs once,
// after all structured and heuristic extraction has completed, so that
// earlier-extracted values always win.
func aliasFields(meta map[string]string) {
	if pv, ok := meta["ProductVersion"]; ok {
		setIfAbsent(meta, "FileVersion", pv)
		setIfAbsent(meta, "FileVersionNumber", pv)
		setIfAbsent(meta, "ProductVersionNumber", pv)
	}
	if pn, ok := meta["ProductName"]; ok {
		setIfAbsent(meta, "ProgramName", pn)
	}
	manufacturer, hasManufacturer := meta["Manufacturer"]
	if hasManufacturer {
		setIfAbsent(meta, "Vendor", manufacturer)
	}
	if _, ok := meta["FileDescription"]; !ok {
		switch {
		case hasManufacturer && manufacturer != "":
			if pn, ok := meta["ProductName"]; ok {
				meta["FileDescription"] = pn + " Installer"
			}
		default:
			if c, ok := meta["Comments"]; ok {
				meta["FileDescription"] = c
			}
		}
	}
}

func setIfAbsent(meta map[string]string, key, value string) {
	if _, ok := meta[key]; !ok {
		meta[key] = value
	}
}
