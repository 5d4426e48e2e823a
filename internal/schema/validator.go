package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed roles.schema.yaml
var rolesSchemaYAML []byte

const rolesSchemaURL = "roleci://schemas/roles.schema.json"

// Validator handles JSON schema validation
type Validator struct {
	rolesSchema *jsonschema.Schema
}

// NewValidator compiles the embedded schemas
func NewValidator() (*Validator, error) {
	rolesSchema, err := compile(rolesSchemaURL, rolesSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles schema: %w", err)
	}
	return &Validator{rolesSchema: rolesSchema}, nil
}

// ValidateRoles validates a decoded role overrides document
func (v *Validator) ValidateRoles(data interface{}) error {
	if v.rolesSchema == nil {
		return fmt.Errorf("roles schema not loaded")
	}
	return v.rolesSchema.Validate(data)
}

// ValidateRolesYAML parses raw YAML and validates it against the roles schema
func (v *Validator) ValidateRolesYAML(data []byte) error {
	doc, err := toJSONValue(data)
	if err != nil {
		return err
	}
	return v.ValidateRoles(doc)
}

// compile loads and compiles a schema document (JSON or YAML)
func compile(url string, data []byte) (*jsonschema.Schema, error) {
	jsonData, err := yamlToJSON(data)
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(string(jsonData))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

// toJSONValue converts YAML into the value shapes produced by encoding/json,
// which is what the schema validator expects
func toJSONValue(data []byte) (interface{}, error) {
	jsonData, err := yamlToJSON(data)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}
	return jsonData, nil
}
