package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Var is a single named value inside an ordered mapping
type Var struct {
	Name  string
	Value interface{}
}

// Vars is a mapping that keeps insertion order when encoded to or decoded from YAML
type Vars []Var

// Set assigns value to name. An existing entry keeps its position.
func (v *Vars) Set(name string, value interface{}) {
	for i := range *v {
		if (*v)[i].Name == name {
			(*v)[i].Value = value
			return
		}
	}
	*v = append(*v, Var{Name: name, Value: value})
}

// Get returns the value stored under name
func (v Vars) Get(name string) (interface{}, bool) {
	for _, item := range v {
		if item.Name == name {
			return item.Value, true
		}
	}
	return nil, false
}

// Names returns the keys in order
func (v Vars) Names() []string {
	names := make([]string, len(v))
	for i, item := range v {
		names[i] = item.Name
	}
	return names
}

// Merge applies other on top of v with Set semantics
func (v *Vars) Merge(other Vars) {
	for _, item := range other {
		v.Set(item.Name, item.Value)
	}
}

// Clone returns a copy that shares no backing array with v
func (v Vars) Clone() Vars {
	if v == nil {
		return nil
	}
	out := make(Vars, len(v))
	copy(out, v)
	return out
}

// MarshalYAML encodes the entries as a mapping node in insertion order
func (v Vars) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, item := range v {
		key := &yaml.Node{}
		key.SetString(item.Name)

		value := &yaml.Node{}
		if err := value.Encode(item.Value); err != nil {
			return nil, fmt.Errorf("failed to encode value for %s: %w", item.Name, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node, keeping the document order
func (v *Vars) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		*v = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.ShortTag())
	}

	vars := make(Vars, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("failed to decode %s: %w", node.Content[i].Value, err)
		}
		vars.Set(node.Content[i].Value, value)
	}
	*v = vars
	return nil
}
