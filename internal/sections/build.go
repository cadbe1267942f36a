package sections

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/vsplit/internal/timestamp"
)

// Load reads a section config file and builds its sections.
func Load(path string) ([]Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// ParseDocument decodes YAML into a Document. Tabs are expanded to four
// spaces first so tab-indented files still parse.
func ParseDocument(data []byte) (Document, error) {
	text := strings.ReplaceAll(string(data), "\t", "    ")

	var doc Document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(doc) == 0 {
		return nil, ErrEmptyConfig
	}
	return doc, nil
}

// Build resolves a document into sections. A section without an explicit
// start begins where the previous section ended; a section without an end
// leaves that default unchanged.
func Build(doc Document) ([]Section, error) {
	result := make([]Section, 0, len(doc))
	previousEnd := timestamp.Timestamp{}

	for _, entry := range doc {
		section, err := resolve(entry, previousEnd)
		if err != nil {
			return nil, err
		}
		if err := validate(section); err != nil {
			return nil, err
		}

		result = append(result, section)
		if section.End != nil {
			previousEnd = *section.End
		}
	}

	return result, nil
}

func resolve(entry Entry, previousEnd timestamp.Timestamp) (Section, error) {
	section := Section{Name: entry.Name, Start: previousEnd}

	switch spec := entry.Spec.(type) {
	case RangeSpec:
		if spec.Start != nil {
			start, err := timestamp.Parse(*spec.Start)
			if err != nil {
				return Section{}, fmt.Errorf("section %q start: %w", entry.Name, err)
			}
			section.Start = start
		}
		if spec.End != nil {
			end, err := timestamp.Parse(*spec.End)
			if err != nil {
				return Section{}, fmt.Errorf("section %q end: %w", entry.Name, err)
			}
			section.End = &end
		}
	case EndOnlySpec:
		end, err := timestamp.Parse(timestamp.Number(spec.End))
		if err != nil {
			return Section{}, fmt.Errorf("section %q end: %w", entry.Name, err)
		}
		section.End = &end
	default:
		return Section{}, fmt.Errorf("%w: section %q", ErrInvalidSectionConfig, entry.Name)
	}

	return section, nil
}

func validate(s Section) error {
	duration, ok := s.Duration()
	if ok && duration <= 0 {
		return fmt.Errorf(
			"%w: section %q ends at %s, not after its start %s",
			ErrInvalidSectionConfig,
			s.Name,
			*s.End,
			s.Start,
		)
	}
	return nil
}
