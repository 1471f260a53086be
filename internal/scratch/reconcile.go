package scratch

// Reconcile merges the configured scratch list with the file names found on disk.
//
// Scratches whose file disappeared are dropped, the survivors keep their configured
// order, and files without a config entry are appended in listing order. LastOpened is
// cleared once it stops being a member. When nothing changes c is returned as is.
func Reconcile(c Config, fileNames []string) Config {
	onDisk := make(map[string]bool, len(fileNames))
	for _, name := range fileNames {
		onDisk[name] = true
	}

	kept := make([]Scratch, 0, len(c.Scratches))
	keptFileNames := make(map[string]bool, len(c.Scratches))
	for _, s := range c.Scratches {
		if onDisk[s.FileName()] {
			kept = append(kept, s)
			keptFileNames[s.FileName()] = true
		}
	}

	discovered := make([]Scratch, 0)
	seen := make(map[string]bool, len(fileNames))
	for _, name := range fileNames {
		if keptFileNames[name] || seen[name] {
			continue
		}
		seen[name] = true
		discovered = append(discovered, Parse(name))
	}

	result := c
	if len(discovered) > 0 || len(kept) != len(c.Scratches) {
		result = c.With(append(kept, discovered...))
	}
	if result.LastOpened != nil && !result.Contains(*result.LastOpened) {
		result = result.WithLastOpened(nil)
	}
	return result
}
