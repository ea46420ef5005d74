// Package registry holds named capabilities with declared parameter schemas
// and dispatches invocations to them.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/mod/semver"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
)

// Kind distinguishes action-style tools from content-producing resources.
// The distinction is descriptive only; both dispatch the same way.
type Kind string

const (
	KindTool     Kind = "tool"
	KindResource Kind = "resource"
)

// InvalidArgsStatus is the status attached to a rejected invocation.
const InvalidArgsStatus = 400

// Handler performs an invocation. args has already been validated against
// the capability's parameter schema.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Capability is a named, described, parameterized operation.
type Capability struct {
	Name        string
	Kind        Kind
	Description string
	Params      *jsonschema.Schema
	Handler     Handler
}

// Descriptor is the discovery view of a capability.
type Descriptor struct {
	Name        string             `json:"name"`
	Kind        Kind               `json:"kind"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// ParamsFor reflects the parameter schema of an args struct. Field
// constraints come from `jsonschema` struct tags; fields without omitempty
// are required.
func ParamsFor[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	var v T
	return r.Reflect(v)
}

// Registry is safe for concurrent use.
type Registry struct {
	name        string
	version     string
	description string

	mu      sync.RWMutex
	caps    map[string]Capability
	schemas map[string]*llm.Schema
}

// New creates an empty registry. version must be a semantic version; the
// leading "v" is optional, so "1.0" is accepted.
func New(name, version, description string) (*Registry, error) {
	if name == "" {
		return nil, fmt.Errorf("registry name is empty")
	}
	if !semver.IsValid(canonicalVersion(version)) {
		return nil, fmt.Errorf("registry %q: invalid version %q", name, version)
	}
	return &Registry{
		name:        name,
		version:     version,
		description: description,
		caps:        make(map[string]Capability),
		schemas:     make(map[string]*llm.Schema),
	}, nil
}

func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

func (r *Registry) Name() string        { return r.name }
func (r *Registry) Version() string     { return r.version }
func (r *Registry) Description() string { return r.description }

// Register adds a capability. Names must be unique.
func (r *Registry) Register(c Capability) error {
	if c.Name == "" {
		return fmt.Errorf("capability name is empty")
	}
	if c.Handler == nil {
		return fmt.Errorf("capability %q has no handler", c.Name)
	}
	if c.Kind != KindTool && c.Kind != KindResource {
		return fmt.Errorf("capability %q: unknown kind %q", c.Name, c.Kind)
	}

	var schema *llm.Schema
	if c.Params != nil {
		def, err := schemaDefinition(c.Params)
		if err != nil {
			return fmt.Errorf("capability %q: %w", c.Name, err)
		}
		schema = &llm.Schema{
			Name:        "capability-" + r.name + "-" + c.Name,
			Description: c.Description,
			Definition:  def,
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.caps[c.Name]; exists {
		return fmt.Errorf("capability %q already registered", c.Name)
	}
	r.caps[c.Name] = c
	r.schemas[c.Name] = schema
	return nil
}

func schemaDefinition(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal parameter schema: %w", err)
	}
	var def map[string]any
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse parameter schema: %w", err)
	}
	return def, nil
}

// Describe returns every capability sorted by name.
func (r *Registry) Describe() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.caps)
	slices.Sort(names)
	return lo.Map(names, func(name string, _ int) Descriptor {
		c := r.caps[name]
		return Descriptor{
			Name:        c.Name,
			Kind:        c.Kind,
			Description: c.Description,
			Parameters:  c.Params,
		}
	})
}

// Names returns the sorted names of capabilities of the given kind.
func (r *Registry) Names(kind Kind) []string {
	names := lo.FilterMap(r.Describe(), func(d Descriptor, _ int) (string, bool) {
		return d.Name, d.Kind == kind
	})
	return names
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	c, ok := r.caps[name]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Name: c.Name, Kind: c.Kind, Description: c.Description, Parameters: c.Params}, true
}

// Dispatch invokes the named capability. Arguments that fail the parameter
// schema yield {"error": ..., "status": 400} without calling the handler.
// The only error returned is *UnknownCapabilityError; handler errors are
// folded into {"error": ..., "status": 500}.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (any, error) {
	r.mu.RLock()
	c, ok := r.caps[name]
	schema := r.schemas[name]
	r.mu.RUnlock()

	if !ok {
		return nil, r.unknown(name)
	}

	if len(strings.TrimSpace(string(args))) == 0 {
		args = json.RawMessage(`{}`)
	}
	if !json.Valid(args) {
		return ErrorResult("invalid arguments: malformed JSON", InvalidArgsStatus), nil
	}
	if err := llm.Validate(schema, args); err != nil {
		return ErrorResult(invalidArgsMessage(err), InvalidArgsStatus), nil
	}

	out, err := c.Handler(ctx, args)
	if err != nil {
		return ErrorResult(err.Error(), 500), nil
	}
	return out, nil
}

// ErrorResult is the error projection shared by every capability.
func ErrorResult(message string, status int) map[string]any {
	return map[string]any{"error": message, "status": status}
}

func invalidArgsMessage(err error) string {
	var inner error = err
	if ir, ok := err.(*llm.ErrInvalidResponse); ok && ir.Err != nil {
		inner = ir.Err
	}
	return "invalid arguments: " + inner.Error()
}

func (r *Registry) unknown(name string) *UnknownCapabilityError {
	r.mu.RLock()
	names := lo.Keys(r.caps)
	r.mu.RUnlock()

	ranks := fuzzy.RankFindFold(name, names)
	slices.SortFunc(ranks, func(a, b fuzzy.Rank) int { return a.Distance - b.Distance })
	return &UnknownCapabilityError{
		Name: name,
		Suggestions: lo.Map(ranks, func(rk fuzzy.Rank, _ int) string {
			return rk.Target
		}),
	}
}

// UnknownCapabilityError is returned by Dispatch for an unregistered name.
type UnknownCapabilityError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCapabilityError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown capability %q", e.Name)
	}
	return fmt.Sprintf("unknown capability %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}
