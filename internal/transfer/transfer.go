package transfer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agentx-labs/guisettings/internal/settings"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"
	"github.com/tidwall/jsonc"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/settings.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Document maps group → key → stored text.
type Document map[string]map[string]string

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// Issue is one schema violation.
type Issue struct {
	Path    string // Instance location (e.g., "/GameList/sortAsc")
	Message string
	Keyword string
}

// ValidationError reports a document that failed schema validation.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Path+": "+is.Message)
	}
	return printer.Sprintf("invalid settings document (%d issues): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Export collects the store's keys into a Document. Meta keys are left
// out when excludeMeta is set.
func Export(s *settings.Store, excludeMeta bool) Document {
	doc := Document{}
	for _, path := range s.Keys() {
		if excludeMeta && settings.IsMeta(path) {
			continue
		}
		group, key := settings.SplitPath(path)
		if doc[group] == nil {
			doc[group] = map[string]string{}
		}
		doc[group][key] = s.GetPath(path, nil).Raw()
	}
	return doc
}

// Marshal encodes doc in the given format.
func Marshal(doc Document, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling settings as JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling settings as YAML: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// Parse decodes and validates a JSON or YAML document. JSON documents may
// carry // and /* */ comments and trailing commas. Schema violations are
// returned as *ValidationError.
func Parse(data []byte) (Document, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	if isJSON(data) {
		data = jsonc.ToJSON(data)
	}

	// YAML is a superset of JSON, so one decoder covers both.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		return nil, &ValidationError{Issues: extractIssues(ve)}
	}

	doc := Document{}
	for group, keys := range raw.(map[string]any) {
		doc[group] = map[string]string{}
		for key, v := range keys.(map[string]any) {
			doc[group][key] = cast.ToString(v)
		}
	}
	return doc, nil
}

// isJSON reports whether data is a JSON object rather than YAML. Comment
// stripping is limited to JSON since "//" is ordinary text in YAML.
func isJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Import parses data and writes every key into s as stored text. Nothing
// is written when the document is invalid. It returns the number of keys
// written.
func Import(s *settings.Store, data []byte) (int, error) {
	doc, err := Parse(data)
	if err != nil {
		return 0, err
	}

	groups := make([]string, 0, len(doc))
	for g := range doc {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var issues []Issue
	for _, g := range groups {
		for key := range doc[g] {
			if err := settings.ValidateKey(documentPath(g, key)); err != nil {
				issues = append(issues, Issue{Path: "/" + g + "/" + key, Message: err.Error(), Keyword: "key"})
			}
		}
	}
	if len(issues) > 0 {
		sort.Slice(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
		return 0, &ValidationError{Issues: issues}
	}

	n := 0
	for _, g := range groups {
		for key, raw := range doc[g] {
			s.SetRaw(documentPath(g, key), raw)
			n++
		}
	}
	return n, nil
}

// documentPath maps a document group and key to a store key path.
func documentPath(group, key string) string {
	if group == settings.RootGroup {
		return key
	}
	return group + "/" + key
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("settings.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("settings.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// extractIssues flattens the validation error tree to its leaves.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return issues
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := "/" + strings.Join(ve.InstanceLocation, "/")
	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}
