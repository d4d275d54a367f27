package schema

import (
	"strings"
	"unicode/utf8"
)

// ReadOnlyTransformer force read-only fields to be not required. A read-only
// field cannot be filled by the user, so a required constraint can never be
// satisfied. Always the first transformer of every registry pipeline.
func ReadOnlyTransformer(dsl *DSL) *DSL {
	new := dsl.Clone()
	for _, def := range new.Fields {
		if def.ReadOnly && def.Validation != nil && def.Validation.Required != nil && *def.Validation.Required {
			required := false
			def.Validation.Required = &required
		}
	}
	return new
}

// DefaultValueTransformer fill the type default of every field without a
// declared defaultValue. Already-set defaults are never overwritten, so
// applying the transformer twice equals applying it once.
func DefaultValueTransformer(dsl *DSL) *DSL {
	new := dsl.Clone()
	for _, def := range new.Fields {
		if def.Default == nil {
			def.Default = def.DefaultValue()
		}
	}
	return new
}

// LabelTransformer derive a label from the field name when none is declared
func LabelTransformer(dsl *DSL) *DSL {
	new := dsl.Clone()
	for name, def := range new.Fields {
		if def.Label == "" && name != "" {
			first, size := utf8.DecodeRuneInString(name)
			def.Label = strings.ToUpper(string(first)) + name[size:]
		}
	}
	return new
}
