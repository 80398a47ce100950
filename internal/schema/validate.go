// Package schema validates the suite's JSON documents against embedded JSON
// schemas: the configuration file and the TodoMVC storage payload.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	configSchemaName  = "config.schema.json"
	storageSchemaName = "storage.schema.json"
)

var (
	configSchema  *jsonschema.Schema
	storageSchema *jsonschema.Schema
	compileOnce   sync.Once
	compileErr    error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		for _, name := range []string{configSchemaName, storageSchemaName} {
			data, err := files.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		configSchema, err = compiler.Compile(configSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}
		storageSchema, err = compiler.Compile(storageSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile storage schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateConfig validates a JSON rendering of the config file.
func ValidateConfig(data []byte) error {
	return validate(data, func() *jsonschema.Schema { return configSchema }, "config")
}

// ValidateStorage validates a TodoMVC storage payload.
func ValidateStorage(data []byte) error {
	return validate(data, func() *jsonschema.Schema { return storageSchema }, "storage payload")
}

func validate(data []byte, pick func() *jsonschema.Schema, what string) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := pick().Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", what, err)
	}

	return nil
}

// ToJSON re-encodes a decoded YAML document so it can be validated as JSON.
func ToJSON(doc any) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document as JSON: %w", err)
	}
	return data, nil
}
