package field

// Clone the field definition
func (dsl *DSL) Clone() *DSL {
	if dsl == nil {
		return nil
	}

	new := *dsl
	if dsl.Validation != nil {
		validation := *dsl.Validation
		new.Validation = &validation
	}

	if dsl.Reference != nil {
		reference := *dsl.Reference
		new.Reference = &reference
	}

	if dsl.Options != nil {
		new.Options = append([]Option{}, dsl.Options...)
	}

	if dsl.OptionGroups != nil {
		new.OptionGroups = make([]OptionGroup, len(dsl.OptionGroups))
		for i, group := range dsl.OptionGroups {
			new.OptionGroups[i] = OptionGroup{Label: group.Label, Options: append([]Option{}, group.Options...)}
		}
	}

	if dsl.BitFlags != nil {
		flags := BitFlagsDSL{FlagValue: dsl.BitFlags.FlagValue}
		flags.Groups = make([]BitFlagGroup, len(dsl.BitFlags.Groups))
		for i, group := range dsl.BitFlags.Groups {
			flags.Groups[i] = BitFlagGroup{
				Name:    group.Name,
				Label:   group.Label,
				Options: append([]BitFlagOption{}, group.Options...),
			}
		}
		new.BitFlags = &flags
	}

	if dsl.Dependencies != nil {
		new.Dependencies = append([]DependencyRule{}, dsl.Dependencies...)
	}

	return &new
}

// Clone the fields DSL
func (fields Fields) Clone() Fields {
	new := Fields{}
	for name, dsl := range fields {
		new[name] = dsl.Clone()
	}
	return new
}

// DefaultValue the type default of the field. The declared defaultValue wins;
// without one each kind falls back to its zero display value.
func (dsl *DSL) DefaultValue() interface{} {
	if dsl.Default != nil {
		return dsl.Default
	}

	switch dsl.Type {
	case TypeText, TypeDate, TypeSelect:
		return ""
	case TypeNumber:
		return float64(0)
	case TypeCheckbox:
		return false
	case TypeMultiSelect, TypeList:
		return []interface{}{}
	}
	return ""
}

// Merge copy the directives present in src over those of the effect.
// Absent keys do not clear earlier ones. Last write wins per key.
func (effect *Effect) Merge(src Effect) {
	if src.Hide != nil {
		effect.Hide = src.Hide
	}
	if src.Disable != nil {
		effect.Disable = src.Disable
	}
	if src.SetValue != nil {
		effect.SetValue = src.SetValue
	}
	if src.ClearValue {
		effect.ClearValue = true
	}
	if src.SetRequired != nil {
		effect.SetRequired = src.SetRequired
	}
	if src.SetValidation != nil {
		effect.SetValidation = src.SetValidation
	}
	if src.SetOptions != nil {
		effect.SetOptions = src.SetOptions
	}
	if src.SetOptionGroups != nil {
		effect.SetOptionGroups = src.SetOptionGroups
	}
}

// Merge apply a partial validation override. Present keys replace, absent keys keep.
func (validation *ValidationDSL) Merge(patch *ValidationDSL) {
	if patch == nil {
		return
	}
	if patch.Required != nil {
		validation.Required = patch.Required
	}
	if patch.Min != nil {
		validation.Min = patch.Min
	}
	if patch.Max != nil {
		validation.Max = patch.Max
	}
	if patch.Step != nil {
		validation.Step = patch.Step
	}
	if patch.MinLength != nil {
		validation.MinLength = patch.MinLength
	}
	if patch.MaxLength != nil {
		validation.MaxLength = patch.MaxLength
	}
	if patch.Pattern != "" {
		validation.Pattern = patch.Pattern
	}
	if patch.PatternMessage != "" {
		validation.PatternMessage = patch.PatternMessage
	}
	if patch.Custom != "" {
		validation.Custom = patch.Custom
	}
}
