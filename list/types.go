package list

// the enumerated column types
const (
	TypeText      = "text"
	TypeNumber    = "number"
	TypeDate      = "date"
	TypeBoolean   = "boolean"
	TypeArray     = "array"
	TypeReference = "reference"
	TypeAction    = "action"
)

// Types the valid column types
var Types = map[string]bool{
	TypeText:      true,
	TypeNumber:    true,
	TypeDate:      true,
	TypeBoolean:   true,
	TypeArray:     true,
	TypeReference: true,
	TypeAction:    true,
}

// DSL the list schema
type DSL struct {
	Name    string                `json:"name,omitempty"`
	Columns map[string]*ColumnDSL `json:"columns"`
	Options *OptionsDSL           `json:"options,omitempty"`
}

// ColumnDSL one table column
type ColumnDSL struct {
	Label      string        `json:"label,omitempty"`
	Field      string        `json:"field"`
	Type       string        `json:"type"`
	Width      interface{}   `json:"width,omitempty"`
	Sortable   bool          `json:"sortable,omitempty"`
	Filterable bool          `json:"filterable,omitempty"`
	Format     *FormatDSL    `json:"format,omitempty"`
	Reference  *ReferenceDSL `json:"reference,omitempty"`
}

// FormatDSL the type-specific rendering rules of a column
type FormatDSL struct {
	Text      *TextFormat      `json:"text,omitempty"`
	Number    *NumberFormat    `json:"number,omitempty"`
	Date      *DateFormat      `json:"date,omitempty"`
	Boolean   *BooleanFormat   `json:"boolean,omitempty"`
	Array     *ArrayFormat     `json:"array,omitempty"`
	Reference *ReferenceFormat `json:"reference,omitempty"`
}

// TextFormat format.text
type TextFormat struct {
	Truncate  int    `json:"truncate,omitempty"`
	Transform string `json:"transform,omitempty"` // uppercase | lowercase | capitalize
}

// NumberFormat format.number
type NumberFormat struct {
	Precision *int   `json:"precision,omitempty"`
	Notation  string `json:"notation,omitempty"` // standard | scientific | engineering | compact
	Currency  string `json:"currency,omitempty"` // ISO 4217 code
}

// DateFormat format.date
type DateFormat struct {
	Layout   string `json:"format,omitempty"` // Go reference layout
	Relative bool   `json:"relative,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// BooleanFormat format.boolean
type BooleanFormat struct {
	TrueText  string `json:"trueText,omitempty"`
	FalseText string `json:"falseText,omitempty"`
}

// ArrayFormat format.array
type ArrayFormat struct {
	Separator     string                        `json:"separator,omitempty"`
	MaxItems      int                           `json:"maxItems,omitempty"`
	More          string                        `json:"more,omitempty"`
	ItemFormatter func(item interface{}) string `json:"-"`
}

// ReferenceFormat format.reference
type ReferenceFormat struct {
	LabelField string `json:"labelField"`
	Fallback   string `json:"fallback,omitempty"`
}

// ReferenceDSL the lookup binding of a reference column
type ReferenceDSL struct {
	QueryKey   string `json:"queryKey"`
	Collection string `json:"collection,omitempty"`
	ValueField string `json:"valueField,omitempty"` // defaults to "id"
}

// OptionsDSL the list options
type OptionsDSL struct {
	Pagination  *PaginationDSL  `json:"pagination,omitempty"`
	GroupBy     *GroupByDSL     `json:"groupBy,omitempty"`
	DefaultSort *DefaultSortDSL `json:"defaultSort,omitempty"`
}

// PaginationDSL options.pagination
type PaginationDSL struct {
	Enabled         bool  `json:"enabled"`
	PageSize        int   `json:"pageSize,omitempty"`
	PageSizeOptions []int `json:"pageSizeOptions,omitempty"`
}

// GroupByDSL options.groupBy
type GroupByDSL struct {
	Field      string `json:"field"`
	Expanded   bool   `json:"expanded,omitempty"`
	ShowCounts bool   `json:"showCounts,omitempty"`
	LabelField string `json:"labelField,omitempty"` // reference grouping sub-field, defaults to "name"
}

// DefaultSortDSL options.defaultSort
type DefaultSortDSL struct {
	Field     string `json:"field"`
	Direction string `json:"direction,omitempty"` // asc | desc
}
