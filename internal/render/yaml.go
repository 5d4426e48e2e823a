package render

import (
	"bytes"
	"fmt"

	"github.com/sourceplane/roleci/internal/model"
	"gopkg.in/yaml.v3"
)

// bannerFormat is the header written above every generated workflow
const bannerFormat = `# AUTO-GENERATED FILE - DO NOT EDIT MANUALLY
# Generated by roleci for role: %s
# To regenerate: roleci generate

`

// Banner returns the header comment block for role
func Banner(role string) string {
	return fmt.Sprintf(bannerFormat, role)
}

// RenderYAML renders a workflow as YAML
func (r *Renderer) RenderYAML(workflow *model.Workflow) ([]byte, error) {
	return encodeYAML(workflow)
}

// Content renders the complete file for role: banner followed by the workflow YAML
func (r *Renderer) Content(role string, workflow *model.Workflow) ([]byte, error) {
	data, err := r.RenderYAML(workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to render workflow for role %s: %w", role, err)
	}

	var buf bytes.Buffer
	buf.WriteString(Banner(role))
	buf.Write(data)
	return buf.Bytes(), nil
}

// ParseWorkflow decodes generated workflow YAML. Banner comments are ignored.
func ParseWorkflow(data []byte) (*model.Workflow, error) {
	var workflow model.Workflow
	if err := yaml.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("failed to parse workflow: %w", err)
	}
	return &workflow, nil
}

func encodeYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
