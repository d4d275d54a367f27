package schema

import (
	"fmt"
	"sort"

	"github.com/uischema/uischema/field"
)

// BasicValidator the baseline schema checks: at least one field, valid field
// kinds, select/multiselect fields carry selectable values, layout groups are
// named and reference existing fields.
func BasicValidator(dsl *DSL) []error {
	errors := []error{}

	if len(dsl.Fields) == 0 {
		errors = append(errors, fmt.Errorf("schema must have at least one field"))
	}

	names := make([]string, 0, len(dsl.Fields))
	for name := range dsl.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := dsl.Fields[name]
		if def == nil {
			errors = append(errors, fmt.Errorf("field %s is empty", name))
			continue
		}

		if !field.Types[def.Type] {
			errors = append(errors, fmt.Errorf("field %s has invalid type: %s", name, def.Type))
			continue
		}

		if def.Type == field.TypeSelect || def.Type == field.TypeMultiSelect {
			if len(def.Options) == 0 && len(def.OptionGroups) == 0 && def.Reference == nil {
				errors = append(errors, fmt.Errorf("field %s must have options or reference", name))
			}
		}
	}

	if dsl.Layout != nil {
		for i, group := range dsl.Layout.Groups {
			if group.Name == "" {
				errors = append(errors, fmt.Errorf("group %d must have a name", i))
			}
			for _, name := range group.Fields {
				if _, has := dsl.Fields[name]; !has {
					errors = append(errors, fmt.Errorf("group %d references non-existent field: %s", i, name))
				}
			}
		}
		for _, name := range dsl.Layout.Order {
			if _, has := dsl.Fields[name]; !has {
				errors = append(errors, fmt.Errorf("order references non-existent field: %s", name))
			}
		}
	}

	return errors
}
