package sections

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/vsplit/internal/timestamp"
)

var (
	ErrInvalidSectionConfig = errors.New("invalid section config")
	ErrDuplicateSection     = fmt.Errorf("%w: duplicate section name", ErrInvalidSectionConfig)
	ErrEmptyConfig          = fmt.Errorf("%w: no sections defined", ErrInvalidSectionConfig)
)

// Spec is the raw configuration of one section, either a RangeSpec or an
// EndOnlySpec.
type Spec interface {
	isSpec()
}

// explicit start and/or end; nil fields fall back to defaults
type RangeSpec struct {
	Start *timestamp.Input
	End   *timestamp.Input
}

// bare number in the document: the section's end, in minutes
type EndOnlySpec struct {
	End float64
}

func (RangeSpec) isSpec()   {}
func (EndOnlySpec) isSpec() {}

type Entry struct {
	Name string
	Spec Spec
}

// Document is a section config in declaration order.
type Document []Entry

// UnmarshalYAML decodes a top level mapping of section name to either a
// {start, end} mapping or a bare number, keeping key order.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf(
			"%w: line %d: expected a mapping of section names",
			ErrInvalidSectionConfig,
			node.Line,
		)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	entries := make(Document, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := resolveAlias(node.Content[i]), resolveAlias(node.Content[i+1])

		name, err := decodeName(keyNode)
		if err != nil {
			return err
		}
		if seen[name] {
			return fmt.Errorf("%w: %q (line %d)", ErrDuplicateSection, name, keyNode.Line)
		}
		seen[name] = true

		spec, err := decodeSpec(valueNode)
		if err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}

		entries = append(entries, Entry{Name: name, Spec: spec})
	}

	*d = entries
	return nil
}

func decodeName(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf(
			"%w: line %d: section name must be a scalar",
			ErrInvalidSectionConfig,
			node.Line,
		)
	}

	name := strings.TrimSpace(node.Value)
	switch {
	case name == "":
		return "", fmt.Errorf("%w: line %d: empty section name", ErrInvalidSectionConfig, node.Line)
	case name == "." || name == "..":
		return "", fmt.Errorf("%w: invalid section name %q", ErrInvalidSectionConfig, name)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf(
			"%w: section name %q must not contain path separators",
			ErrInvalidSectionConfig,
			name,
		)
	}
	return name, nil
}

func decodeSpec(node *yaml.Node) (Spec, error) {
	switch node.Kind {
	case yaml.MappingNode:
		var spec RangeSpec
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := resolveAlias(node.Content[i]).Value, resolveAlias(node.Content[i+1])
			switch key {
			case "start":
				in, err := decodeInput(value)
				if err != nil {
					return nil, fmt.Errorf("start: %w", err)
				}
				spec.Start = &in
			case "end":
				in, err := decodeInput(value)
				if err != nil {
					return nil, fmt.Errorf("end: %w", err)
				}
				spec.End = &in
			}
		}
		return spec, nil

	case yaml.ScalarNode:
		if isNumber(node) {
			var minutes float64
			if err := node.Decode(&minutes); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidSectionConfig, err)
			}
			return EndOnlySpec{End: minutes}, nil
		}
	}

	return nil, fmt.Errorf(
		"%w: line %d: expected a mapping with start/end or a number, got %q",
		ErrInvalidSectionConfig,
		node.Line,
		node.Value,
	)
}

func decodeInput(node *yaml.Node) (timestamp.Input, error) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		return timestamp.Input{}, fmt.Errorf(
			"%w: line %d: expected a time value",
			timestamp.ErrInvalidFormat,
			node.Line,
		)
	}

	if isNumber(node) {
		var minutes float64
		if err := node.Decode(&minutes); err != nil {
			return timestamp.Input{}, fmt.Errorf("%w: %v", timestamp.ErrInvalidFormat, err)
		}
		return timestamp.Number(minutes), nil
	}
	return timestamp.Text(node.Value), nil
}

// follows *name references to the anchored node
func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNumber(node *yaml.Node) bool {
	tag := node.ShortTag()
	return tag == "!!int" || tag == "!!float"
}
