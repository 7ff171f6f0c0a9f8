// Package specfile builds TypeSpecs from declarative definition files.
// TOML, YAML and JSON documents are supported; each decodes to the same
// raw map shape and is then mapped onto typed definitions. Attribute
// values are classified here: strings become identifiers, non-negative
// integers become integer literals, and a true boolean is a bare flag.
package specfile

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/youkchan/strict-encoding-derive/internal/attr"
	"github.com/youkchan/strict-encoding-derive/internal/schema"
)

// Format names a supported definition file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("specfile: unsupported extension %q", filepath.Ext(path))
	}
}

// Raw definition shapes, decoded from the document before classification.
type document struct {
	Types []typeDef `mapstructure:"types"`
}

type typeDef struct {
	Name     string         `mapstructure:"name"`
	Kind     string         `mapstructure:"kind"`
	Attrs    map[string]any `mapstructure:"attrs"`
	Fields   []fieldDef     `mapstructure:"fields"`
	Variants []variantDef   `mapstructure:"variants"`
}

type fieldDef struct {
	Name  string         `mapstructure:"name"`
	Type  string         `mapstructure:"type"`
	Attrs map[string]any `mapstructure:"attrs"`
}

type variantDef struct {
	Name    string         `mapstructure:"name"`
	Ordinal *uint64        `mapstructure:"ordinal"`
	Fields  []fieldDef     `mapstructure:"fields"`
	Attrs   map[string]any `mapstructure:"attrs"`
}

// Load reads a definition file and returns its TypeSpecs in document
// order.
func Load(path string) ([]*schema.TypeSpec, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("specfile: read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes a definition document and builds its TypeSpecs.
func Parse(data []byte, format Format) ([]*schema.TypeSpec, error) {
	raw := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("specfile: parse toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("specfile: parse yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("specfile: parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("specfile: unsupported format %s", format)
	}

	var doc document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("specfile: build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("specfile: decode document: %w", err)
	}

	specs := make([]*schema.TypeSpec, 0, len(doc.Types))
	for _, t := range doc.Types {
		spec, err := t.build()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (t typeDef) build() (*schema.TypeSpec, error) {
	attrs, err := classifyAttrs(t.Name, t.Attrs)
	if err != nil {
		return nil, err
	}
	spec := &schema.TypeSpec{Name: t.Name, Attrs: attrs}

	switch t.Kind {
	case "struct":
		spec.Kind = schema.KindStruct
		spec.Fields, err = buildFields(t.Name, t.Fields)
		if err != nil {
			return nil, err
		}
	case "enum":
		spec.Kind = schema.KindEnum
		for i, v := range t.Variants {
			vattrs, err := classifyAttrs(t.Name+"."+v.Name, v.Attrs)
			if err != nil {
				return nil, err
			}
			fields, err := buildFields(t.Name+"."+v.Name, v.Fields)
			if err != nil {
				return nil, err
			}
			ordinal := uint64(i)
			if v.Ordinal != nil {
				ordinal = *v.Ordinal
			}
			spec.Variants = append(spec.Variants, schema.VariantSpec{
				Name:    v.Name,
				Index:   i,
				Ordinal: ordinal,
				Fields:  fields,
				Attrs:   vattrs,
			})
		}
	default:
		return nil, fmt.Errorf("specfile: type %s: unknown kind %q", t.Name, t.Kind)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func buildFields(owner string, defs []fieldDef) ([]schema.FieldSpec, error) {
	fields := make([]schema.FieldSpec, 0, len(defs))
	for i, f := range defs {
		attrs, err := classifyAttrs(owner+"."+f.Name, f.Attrs)
		if err != nil {
			return nil, err
		}
		name := f.Name
		if name == "" {
			// Positional (tuple-style) field.
			name = fmt.Sprintf("%d", i)
		}
		fields = append(fields, schema.FieldSpec{
			Name:  name,
			Index: i,
			Type:  f.Type,
			Attrs: attrs,
		})
	}
	return fields, nil
}

// classifyAttrs turns a raw attribute map into a tokenized set. A false
// boolean means the flag is absent, so templated documents can switch
// markers off without deleting keys.
func classifyAttrs(owner string, raw map[string]any) (attr.Set, error) {
	if len(raw) == 0 {
		return attr.Set{}, nil
	}
	set := make(attr.Set, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case bool:
			if v {
				set[key] = attr.Flag()
			}
		case string:
			set[key] = attr.Ident(v)
		case int:
			if v < 0 {
				return nil, negativeErr(owner, key, int64(v))
			}
			set[key] = attr.Int(uint64(v))
		case int64:
			if v < 0 {
				return nil, negativeErr(owner, key, v)
			}
			set[key] = attr.Int(uint64(v))
		case uint64:
			set[key] = attr.Int(v)
		case float64:
			// JSON numbers arrive as float64; only integral values are
			// valid attribute literals.
			if v != math.Trunc(v) || v < 0 || v > math.MaxUint64 {
				return nil, fmt.Errorf("specfile: %s: attribute %q: %v is not an unsigned integer", owner, key, v)
			}
			set[key] = attr.Int(uint64(v))
		default:
			return nil, fmt.Errorf("specfile: %s: attribute %q has unsupported value type %T", owner, key, value)
		}
	}
	return set, nil
}

func negativeErr(owner, key string, v int64) error {
	return fmt.Errorf("specfile: %s: attribute %q: negative value %d", owner, key, v)
}
