package sidebar

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// rawNode is the external shape of a sidebar node.
type rawNode struct {
	Type  string   `yaml:"type" json:"type"`
	Label string   `yaml:"label" json:"label"`
	Items []string `yaml:"items" json:"items"`
}

// Load reads a YAML sidebar file.
func Load(filename string) (Sidebars, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading sidebar file %s: %w", filename, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing sidebar file %s: %w", filename, err)
	}
	return s, nil
}

// Parse decodes sidebars from YAML.
func Parse(data []byte) (Sidebars, error) {
	var raw map[string][]rawNode
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, err
	}

	s := make(Sidebars, len(raw))
	for name, nodes := range raw {
		converted := make([]Node, 0, len(nodes))
		for i, rn := range nodes {
			n, err := rn.node()
			if err != nil {
				return nil, fmt.Errorf("sidebar %q item %d: %w", name, i, err)
			}
			converted = append(converted, n)
		}
		s[name] = converted
	}
	return s, nil
}

func (rn rawNode) node() (Node, error) {
	switch rn.Type {
	case TypeCategory:
		if rn.Label == "" {
			return nil, fmt.Errorf("category without label")
		}
		items := make([]DocumentReference, 0, len(rn.Items))
		for _, item := range rn.Items {
			if item == "" {
				return nil, fmt.Errorf("category %q has an empty item", rn.Label)
			}
			items = append(items, DocumentReference(item))
		}
		return Category{Label: rn.Label, Items: items}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, rn.Type)
	}
}

// Marshal encodes s in its external shape as "yaml" or "json".
func Marshal(s Sidebars, format string) ([]byte, error) {
	raw := make(map[string][]rawNode, len(s))
	for name, nodes := range s {
		out := make([]rawNode, 0, len(nodes))
		for _, n := range nodes {
			rn := rawNode{Type: n.Type(), Items: []string{}}
			if c, ok := n.(Category); ok {
				rn.Label = c.Label
			}
			for _, ref := range n.References() {
				rn.Items = append(rn.Items, string(ref))
			}
			out = append(out, rn)
		}
		raw[name] = out
	}

	switch format {
	case "yaml", "":
		return yaml.Marshal(raw)
	case "json":
		return json.MarshalIndent(raw, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported sidebar format %q", format)
	}
}
