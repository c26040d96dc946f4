package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/cloudwego/eino/schema"
	catalogx "github.com/panuwat-dev/storefront-agent/agent/catalog"
	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
	faqx "github.com/panuwat-dev/storefront-agent/agent/faq"
)

// Sources bundles the read-only data snapshots handlers run against.
type Sources struct {
	Catalog *catalogx.Catalog
	Faq     *faqx.Index
}

// Handler executes a tool against its data source with already-validated
// parameters. Handlers are pure with respect to the snapshots.
type Handler func(ctx context.Context, params map[string]any, src Sources) (contractx.ToolOutput, error)

// Param declares one named tool parameter.
type Param struct {
	Type     schema.DataType
	Desc     string
	Required bool
	Enum     []string
}

// Spec declares an invocable tool: name, parameter schema, handler. Immutable
// after registration.
type Spec struct {
	Name    string
	Desc    string
	Params  map[string]Param
	Handler Handler
}

// Registry holds the closed set of tools the router may select. Entries are
// unique by name and keep registration order for deterministic exposure.
type Registry struct {
	order []string
	specs map[string]Spec
}

func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return errors.New("tool name is required")
	}
	if spec.Handler == nil {
		return fmt.Errorf("tool %s: handler is required", spec.Name)
	}
	if _, exists := r.specs[spec.Name]; exists {
		return fmt.Errorf("%w: %s", contractx.ErrDuplicateTool, spec.Name)
	}
	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
	return nil
}

func (r *Registry) Lookup(name string) (Spec, error) {
	spec, ok := r.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", contractx.ErrUnknownTool, name)
	}
	return spec, nil
}

func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Validate checks params against the declared schema of the named tool. It is
// total and side-effect free, and it runs before every dispatch; dispatch
// never trusts upstream validation.
func (r *Registry) Validate(name string, params map[string]any) error {
	spec, err := r.Lookup(name)
	if err != nil {
		return err
	}

	declared := make([]string, 0, len(spec.Params))
	for pname := range spec.Params {
		declared = append(declared, pname)
	}
	sort.Strings(declared)

	for _, pname := range declared {
		p := spec.Params[pname]
		raw, ok := params[pname]
		if !ok {
			if p.Required {
				return fmt.Errorf("%w: %s", contractx.ErrMissingParameter, pname)
			}
			continue
		}
		if err := checkParam(pname, p, raw); err != nil {
			return err
		}
	}

	supplied := make([]string, 0, len(params))
	for pname := range params {
		supplied = append(supplied, pname)
	}
	sort.Strings(supplied)
	for _, pname := range supplied {
		if _, ok := spec.Params[pname]; !ok {
			return fmt.Errorf("%w: parameter %q is not declared for tool %s", contractx.ErrInvalidParameterValue, pname, name)
		}
	}
	return nil
}

// Infos renders the registry as eino tool schemas, in registration order, for
// binding to the chat model.
func (r *Registry) Infos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		spec := r.specs[name]
		params := make(map[string]*schema.ParameterInfo, len(spec.Params))
		for pname, p := range spec.Params {
			params[pname] = &schema.ParameterInfo{
				Type:     p.Type,
				Desc:     p.Desc,
				Required: p.Required,
				Enum:     slices.Clone(p.Enum),
			}
		}
		infos = append(infos, &schema.ToolInfo{
			Name:        spec.Name,
			Desc:        spec.Desc,
			ParamsOneOf: schema.NewParamsOneOfByParams(params),
		})
	}
	return infos
}

func checkParam(name string, p Param, raw any) error {
	switch p.Type {
	case schema.String:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects string, got %T", contractx.ErrInvalidParameterType, name, raw)
		}
		if len(p.Enum) > 0 && !slices.Contains(p.Enum, s) {
			return fmt.Errorf("%w: %s=%q is not one of %v", contractx.ErrInvalidParameterValue, name, s, p.Enum)
		}
	case schema.Number:
		if !isNumber(raw) {
			return fmt.Errorf("%w: %s expects number, got %T", contractx.ErrInvalidParameterType, name, raw)
		}
	case schema.Integer:
		if !isInteger(raw) {
			return fmt.Errorf("%w: %s expects integer, got %T (%v)", contractx.ErrInvalidParameterType, name, raw, raw)
		}
	case schema.Boolean:
		if _, ok := raw.(bool); !ok {
			return fmt.Errorf("%w: %s expects boolean, got %T", contractx.ErrInvalidParameterType, name, raw)
		}
	default:
		return fmt.Errorf("%w: %s has unsupported declared type %q", contractx.ErrInvalidParameterType, name, p.Type)
	}
	return nil
}

func isNumber(raw any) bool {
	switch v := raw.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	default:
		return false
	}
}

func isInteger(raw any) bool {
	switch v := raw.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == math.Trunc(v)
	case json.Number:
		_, err := v.Int64()
		return err == nil
	default:
		return false
	}
}
