package field

// the enumerated field kinds
const (
	TypeText        = "text"
	TypeNumber      = "number"
	TypeDate        = "date"
	TypeSelect      = "select"
	TypeCheckbox    = "checkbox"
	TypeMultiSelect = "multiselect"
	TypeList        = "list"
)

// Types the valid field kinds
var Types = map[string]bool{
	TypeText:        true,
	TypeNumber:      true,
	TypeDate:        true,
	TypeSelect:      true,
	TypeCheckbox:    true,
	TypeMultiSelect: true,
	TypeList:        true,
}

// the dependency operators
const (
	OpEquals             = "equals"
	OpNotEquals          = "notEquals"
	OpContains           = "contains"
	OpNotContains        = "notContains"
	OpGreaterThan        = "greaterThan"
	OpLessThan           = "lessThan"
	OpGreaterThanOrEqual = "greaterThanOrEqual"
	OpLessThanOrEqual    = "lessThanOrEqual"
	OpIn                 = "in"
	OpNotIn              = "notIn"
	OpIsNull             = "isNull"
	OpIsNotNull          = "isNotNull"
	OpStartsWith         = "startsWith"
	OpEndsWith           = "endsWith"
	OpRegex              = "regex"
)

// Fields the fields DSL
type Fields map[string]*DSL

// DSL the field definition DSL
type DSL struct {
	Type         string           `json:"type"`
	Label        string           `json:"label,omitempty"`
	Description  string           `json:"description,omitempty"`
	Default      interface{}      `json:"defaultValue,omitempty"`
	Placeholder  string           `json:"placeholder,omitempty"`
	Validation   *ValidationDSL   `json:"validation,omitempty"`
	Reference    *ReferenceDSL    `json:"reference,omitempty"`
	Options      []Option         `json:"options,omitempty"`
	OptionGroups []OptionGroup    `json:"optionGroups,omitempty"`
	BitFlags     *BitFlagsDSL     `json:"bitFlags,omitempty"`
	ReadOnly     bool             `json:"readOnly,omitempty"`
	Hidden       bool             `json:"hidden,omitempty"`
	Dependencies []DependencyRule `json:"dependencies,omitempty"`
	Mapper       *Mapper          `json:"-"`
}

// Option a selectable value
type Option struct {
	Value interface{} `json:"value"`
	Label string      `json:"label,omitempty"`
}

// OptionGroup a labeled option bucket
type OptionGroup struct {
	Label   string   `json:"label,omitempty"`
	Options []Option `json:"options"`
}

// BitFlagOption one bit position
type BitFlagOption struct {
	Value int64  `json:"value"`
	Label string `json:"label,omitempty"`
}

// BitFlagGroup an ordered group of flag options.
// Groups are a slice, not a map: flag collection order is declaration order.
type BitFlagGroup struct {
	Name    string          `json:"name,omitempty"`
	Label   string          `json:"label,omitempty"`
	Options []BitFlagOption `json:"options"`
}

// BitFlagsDSL the bit-position-to-label mapping of a compound integer field
type BitFlagsDSL struct {
	FlagValue int64          `json:"flagValue,omitempty"`
	Groups    []BitFlagGroup `json:"groups"`
}

// ValidationDSL the constraint set of a field
type ValidationDSL struct {
	Required       *bool    `json:"required,omitempty"`
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	Step           *float64 `json:"step,omitempty"`
	MinLength      *int     `json:"minLength,omitempty"`
	MaxLength      *int     `json:"maxLength,omitempty"`
	Pattern        string   `json:"pattern,omitempty"`
	PatternMessage string   `json:"patternMessage,omitempty"`
	Custom         string   `json:"custom,omitempty"`
}

// ReferenceDSL the foreign-entity binding of a field
type ReferenceDSL struct {
	Model        string `json:"modelName"`
	DisplayField string `json:"displayField,omitempty"`
	Multiple     bool   `json:"multiple,omitempty"`
}

// Mapper a custom display⇄storage converter pair
type Mapper struct {
	ToDisplay   func(value interface{}) interface{}
	FromDisplay func(value interface{}) interface{}
}

// DependencyRule one condition with the effect it applies to the owning field
type DependencyRule struct {
	Field    string           `json:"field"`
	Operator string           `json:"operator"`
	Value    interface{}      `json:"value,omitempty"`
	Effect   Effect           `json:"effect"`
	And      []DependencyRule `json:"and,omitempty"`
	Or       []DependencyRule `json:"or,omitempty"`
}

// Effect the directives applied when a rule condition holds
type Effect struct {
	Hide            *bool          `json:"hide,omitempty"`
	Disable         *bool          `json:"disable,omitempty"`
	SetValue        interface{}    `json:"setValue,omitempty"`
	ClearValue      bool           `json:"clearValue,omitempty"`
	SetRequired     *bool          `json:"setRequired,omitempty"`
	SetValidation   *ValidationDSL `json:"setValidation,omitempty"`
	SetOptions      []Option       `json:"setOptions,omitempty"`
	SetOptionGroups []OptionGroup  `json:"setOptionGroups,omitempty"`
}
