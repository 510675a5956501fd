package manifest

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a single string or a sequence of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		*s = singleOrEmpty(str)

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// UnmarshalJSON accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}

		*s = singleOrEmpty(str)

		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("expected string or array: %w", err)
	}

	*s = arr

	return nil
}

func singleOrEmpty(str string) StringOrArray {
	if str == "" {
		return StringOrArray{}
	}

	return StringOrArray{str}
}

// typeParamFields avoids recursing into the custom unmarshalers.
type typeParamFields struct {
	Name  string `yaml:"name" json:"name"`
	Bound string `yaml:"bound" json:"bound"`
}

// UnmarshalYAML accepts a bare name or a {name, bound} mapping.
func (p *TypeParamDecl) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&p.Name)
	}

	var f typeParamFields
	if err := node.Decode(&f); err != nil {
		return err
	}

	*p = TypeParamDecl(f)

	return nil
}

// UnmarshalJSON accepts a bare name or a {name, bound} object.
func (p *TypeParamDecl) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.Name)
	}

	var f typeParamFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	*p = TypeParamDecl(f)

	return nil
}
