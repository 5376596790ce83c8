package output

import (
	"encoding/json"
	"os"

	"github.com/maxvaer/smokecheck/internal/report"
)

// WriteJSON writes r as indented JSON to path.
func WriteJSON(path string, r *report.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}
