package schema

import (
	"github.com/uischema/uischema/field"
)

// DSL the UI schema
type DSL struct {
	Name   string       `json:"name,omitempty"`
	Fields field.Fields `json:"fields"`
	Layout *LayoutDSL   `json:"layout,omitempty"`
}

// LayoutDSL the optional layout configuration
type LayoutDSL struct {
	Groups []GroupDSL `json:"groups,omitempty"`
	Order  []string   `json:"order,omitempty"`
}

// GroupDSL layout.groups[*]
type GroupDSL struct {
	Name        string   `json:"name"`
	Label       string   `json:"label,omitempty"`
	Fields      []string `json:"fields,omitempty"`
	Collapsible bool     `json:"collapsible,omitempty"`
}

// Validator checks a schema and reports the problems found
type Validator func(dsl *DSL) []error

// Transformer rewrites a schema. Transformers must be pure and idempotent:
// with caching disabled the registry re-runs them on every Get.
type Transformer func(dsl *DSL) *DSL
