package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaErr  error
	subscribe  *jsonschema.Schema
	control    *jsonschema.Schema
)

func compileSchemas() {
	compile := func(name string) (*jsonschema.Schema, error) {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, err
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add %s: %w", name, err)
		}
		return c.Compile(name)
	}

	subscribe, schemaErr = compile("subscribe.schema.json")
	if schemaErr != nil {
		return
	}
	control, schemaErr = compile("control.schema.json")
}

func validateRaw(schema *jsonschema.Schema, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}
	return schema.Validate(v)
}

// ValidateSubscribe checks a raw handshake frame against the embedded schema.
func ValidateSubscribe(raw []byte) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	return validateRaw(subscribe, raw)
}

// ValidateControl checks a raw control frame against the embedded schema.
func ValidateControl(raw []byte) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	return validateRaw(control, raw)
}
