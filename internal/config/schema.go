package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// DocumentSchema returns the JSON schema of the persisted strategy document,
// for operators editing the files by hand.
func DocumentSchema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Document{})

	jsonSchemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
