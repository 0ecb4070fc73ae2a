package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"gopkg.in/yaml.v3"
)

// Formatter writes command results in one output format.
type Formatter interface {
	// Format writes data to the output writer.
	Format(data any) error
}

// FormatterOptions contains configuration for formatters.
type FormatterOptions struct {
	// Writer is where output is written (defaults to os.Stdout).
	Writer io.Writer
	// NoColor disables styling in text output.
	NoColor bool
	// Compact disables indentation for JSON and YAML.
	Compact bool
	// Query is a JMESPath expression applied to the data before it is written.
	Query string
}

// Printable is a result with a dedicated human-readable rendering. JSON and
// YAML output, and queries, use Payload.
type Printable interface {
	Payload() any
	RenderText(w io.Writer, styles Styles) error
}

type printable struct {
	data   any
	render func(w io.Writer, styles Styles) error
}

func (p printable) Payload() any { return p.data }

func (p printable) RenderText(w io.Writer, styles Styles) error {
	return p.render(w, styles)
}

// WithText pairs data with a text renderer.
func WithText(data any, render func(w io.Writer, styles Styles) error) Printable {
	return printable{data: data, render: render}
}

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml"}

// NewFormatter creates a formatter for format. An invalid query is
// rejected here rather than after the backend call.
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		if _, err := jmespath.Compile(q); err != nil {
			return nil, fmt.Errorf("invalid --query expression %q: %w", q, err)
		}
	}

	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{opts: opts}, nil
	case "yaml", "yml":
		return &YAMLFormatter{opts: opts}, nil
	case "text", "":
		return &TextFormatter{opts: opts, styles: NewStyles(opts.NoColor)}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// prepare unwraps Printable values and applies the query.
func prepare(data any, query string) (any, error) {
	if p, ok := data.(Printable); ok {
		data = p.Payload()
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return data, nil
	}
	generic, err := toGeneric(data)
	if err != nil {
		return nil, err
	}
	out, err := jmespath.Search(query, generic)
	if err != nil {
		return nil, fmt.Errorf("query %q failed: %w", query, err)
	}
	return out, nil
}

// toGeneric converts data to maps and slices so JMESPath sees the JSON
// field names.
func toGeneric(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data for query: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to prepare data for query: %w", err)
	}
	return out, nil
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	opts *FormatterOptions
}

// Format writes data as JSON.
func (f *JSONFormatter) Format(data any) error {
	v, err := prepare(data, f.opts.Query)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct {
	opts *FormatterOptions
}

// Format writes data as YAML. Raw JSON payloads are decoded first so they
// come out as YAML documents rather than byte lists.
func (f *YAMLFormatter) Format(data any) error {
	v, err := prepare(data, f.opts.Query)
	if err != nil {
		return err
	}
	if raw, ok := v.(json.RawMessage); ok {
		if v, err = toGeneric(raw); err != nil {
			return err
		}
	}
	encoder := yaml.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent(2)
	}
	defer encoder.Close()
	return encoder.Encode(v)
}

// TextFormatter formats output for people.
type TextFormatter struct {
	opts   *FormatterOptions
	styles Styles
}

// Format writes data as text. Printable values render themselves unless a
// query is set; strings and Stringers are printed as is; anything else is
// written as YAML.
func (f *TextFormatter) Format(data any) error {
	if p, ok := data.(Printable); ok && strings.TrimSpace(f.opts.Query) == "" {
		return p.RenderText(f.opts.Writer, f.styles)
	}

	v, err := prepare(data, f.opts.Query)
	if err != nil {
		return err
	}

	switch v := v.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(f.opts.Writer, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.opts.Writer, v.String())
		return err
	case float64, bool, int, int64:
		_, err := fmt.Fprintln(f.opts.Writer, v)
		return err
	}

	generic, err := toGeneric(v)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return err
	}
	_, err = f.opts.Writer.Write(out)
	return err
}

var (
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*YAMLFormatter)(nil)
	_ Formatter = (*TextFormatter)(nil)
)
