package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.schema.json
var schemaData []byte

var (
	catalogSchema *jsonschema.Schema
	compileOnce   sync.Once
	compileErr    error
)

func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal catalog schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("catalog.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add catalog schema resource: %w", err)
			return
		}

		catalogSchema, err = compiler.Compile("catalog.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile catalog schema: %w", err)
		}
	})
	return compileErr
}

// validate checks a decoded YAML document against the embedded schema.
// The document is round-tripped through JSON so numbers reach the
// validator as json.Number.
func validate(doc any) error {
	if err := compileSchema(); err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog is not representable as JSON: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := catalogSchema.Validate(v); err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}
	return nil
}
