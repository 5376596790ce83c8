package catalog

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document. Methods are
// upper-cased, missing group keys and descriptions are derived from the
// group name and entry path.
func Parse(data []byte) (Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if err := validate(doc); err != nil {
		return Catalog{}, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decoding catalog: %w", err)
	}

	for gi := range c.Groups {
		g := &c.Groups[gi]
		if g.Key == "" {
			g.Key = strings.ToLower(strings.Fields(g.Name)[0])
		}
		for ei := range g.Entries {
			e := &g.Entries[ei]
			e.Method = strings.ToUpper(e.Method)
			if e.Description == "" {
				e.Description = Describe(e.Path)
			}
		}
	}
	return c, nil
}

// Describe derives a human-readable label from the last segment of path:
// "/dashboard/lead-generation" becomes "Lead Generation".
func Describe(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return path
	}
	seg := trimmed[strings.LastIndex(trimmed, "/")+1:]
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return cases.Title(language.English).String(seg)
}
