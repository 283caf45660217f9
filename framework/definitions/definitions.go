package definitions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/km-arc/go-beans/framework/beans"
)

var (
	// ErrInvalidDefinition is returned when an entry fails validation.
	ErrInvalidDefinition = errors.New("invalid bean definition")

	// ErrUnknownFormat is returned for a format or extension with no parser.
	ErrUnknownFormat = errors.New("unknown definition format")
)

// Format names a definition file syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	XML  Format = "xml"
)

// FormatOf infers the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".xml":
		return XML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// ParseFormat maps a format name to a Format. An empty name yields "".
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", YAML, TOML, XML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Parse decodes and validates data in the given format.
func Parse(data []byte, format Format) ([]beans.Definition, error) {
	var (
		defs []beans.Definition
		err  error
	)
	switch format {
	case YAML:
		defs, err = parseYAML(data)
	case TOML:
		defs, err = parseTOML(data)
	case XML:
		defs, err = parseXML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
	if err != nil {
		return nil, fmt.Errorf("%s parse failed: %w", format, err)
	}
	if err := Validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// ── File source ──────────────────────────────────────────────────────────────

// File is a beans.Source that reads one definition file.
type File struct {
	Path   string
	Format Format
}

// Open returns a File source for path. An empty format is inferred from the
// extension.
func Open(path string, format Format) (*File, error) {
	if format == "" {
		f, err := FormatOf(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return &File{Path: path, Format: format}, nil
}

// Definitions reads and parses the file.
func (f *File) Definitions() ([]beans.Definition, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("definitions load failed (%s): %w", f.Path, err)
	}
	defs, err := Parse(data, f.Format)
	if err != nil {
		return nil, fmt.Errorf("definitions load failed (%s): %w", f.Path, err)
	}
	return defs, nil
}

// ── Shared document model ────────────────────────────────────────────────────

// entry is one bean as written in YAML or TOML.
type entry struct {
	ID         string            `yaml:"id" toml:"id"`
	Type       string            `yaml:"type" toml:"type"`
	Properties map[string]string `yaml:"properties,omitempty" toml:"properties"`
	Refs       map[string]string `yaml:"refs,omitempty" toml:"refs"`
}

// document is the top level of a YAML or TOML file.
type document struct {
	PostProcessors []entry `yaml:"post_processors,omitempty" toml:"post_processors"`
	Beans          []entry `yaml:"beans,omitempty" toml:"beans"`
}

func (d document) definitions() []beans.Definition {
	defs := make([]beans.Definition, 0, len(d.PostProcessors)+len(d.Beans))
	for _, e := range d.PostProcessors {
		defs = append(defs, e.definition(true))
	}
	for _, e := range d.Beans {
		defs = append(defs, e.definition(false))
	}
	return defs
}

func (e entry) definition(postProcessor bool) beans.Definition {
	return beans.Definition{
		ID:            strings.TrimSpace(e.ID),
		Type:          strings.TrimSpace(e.Type),
		Properties:    nonEmpty(e.Properties),
		Refs:          nonEmpty(e.Refs),
		PostProcessor: postProcessor,
	}
}

func nonEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}
