package list

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/yaoapp/kun/maps"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var collator = collate.New(language.English)

// SortFunc build a comparator for the given column. The comparator reports
// a negative value when a orders before b in ascending direction.
func (dsl *DSL) SortFunc(name string) func(a, b maps.MapStrAny) int {
	column := dsl.column(name)
	if column == nil || !column.Sortable {
		return nil
	}

	field := column.Field
	switch column.Type {
	case TypeNumber:
		return func(a, b maps.MapStrAny) int {
			return compareFloat(numberKey(a[field]), numberKey(b[field]))
		}

	case TypeDate:
		// unparseable dates collapse to the epoch and sort first
		return func(a, b maps.MapStrAny) int {
			return compareInt(dateKey(a[field]), dateKey(b[field]))
		}

	case TypeBoolean:
		// true rows order before false rows
		return func(a, b maps.MapStrAny) int {
			return compareFloat(booleanKey(a[field]), booleanKey(b[field]))
		}

	case TypeArray:
		return func(a, b maps.MapStrAny) int {
			return collator.CompareString(arrayKey(column, a[field]), arrayKey(column, b[field]))
		}

	case TypeReference:
		return func(a, b maps.MapStrAny) int {
			return collator.CompareString(referenceKey(column, a[field]), referenceKey(column, b[field]))
		}
	}

	return func(a, b maps.MapStrAny) int {
		return collator.CompareString(textKey(column, a[field]), textKey(column, b[field]))
	}
}

// Sort rows in place by the given column and direction. Rows keep their
// relative order when the column is unknown or not sortable.
func (dsl *DSL) Sort(rows []maps.MapStrAny, name string, direction string) {
	compare := dsl.SortFunc(name)
	if compare == nil {
		return
	}

	descending := strings.EqualFold(direction, "desc")
	sort.SliceStable(rows, func(i, j int) bool {
		order := compare(rows[i], rows[j])
		if descending {
			return order > 0
		}
		return order < 0
	})
}

// ApplyDefaultSort sort rows by the options defaultSort when one is declared
func (dsl *DSL) ApplyDefaultSort(rows []maps.MapStrAny) {
	if dsl.Options == nil || dsl.Options.DefaultSort == nil {
		return
	}
	dsl.Sort(rows, dsl.Options.DefaultSort.Field, dsl.Options.DefaultSort.Direction)
}

func numberKey(value interface{}) float64 {
	if value == nil {
		return 0
	}
	return cast.ToFloat64(value)
}

func dateKey(value interface{}) int64 {
	date, ok := timeOf(value)
	if !ok {
		return 0
	}
	return date.UnixMilli()
}

func booleanKey(value interface{}) float64 {
	if cast.ToBool(value) {
		return 0
	}
	return 1
}

func arrayKey(column *ColumnDSL, value interface{}) string {
	if value == nil {
		return ""
	}
	items := cast.ToSlice(value)
	parts := make([]string, len(items))
	for i, item := range items {
		if column.Format != nil && column.Format.Array != nil && column.Format.Array.ItemFormatter != nil {
			parts[i] = column.Format.Array.ItemFormatter(item)
			continue
		}
		parts[i] = cast.ToString(item)
	}
	return strings.Join(parts, ",")
}

func referenceKey(column *ColumnDSL, value interface{}) string {
	entity := entityOf(value)
	if entity == nil {
		return cast.ToString(value)
	}
	labelField := "name"
	if column.Format != nil && column.Format.Reference != nil && column.Format.Reference.LabelField != "" {
		labelField = column.Format.Reference.LabelField
	}
	return cast.ToString(entity[labelField])
}

func textKey(column *ColumnDSL, value interface{}) string {
	text := cast.ToString(value)
	if column.Format != nil && column.Format.Text != nil {
		switch column.Format.Text.Transform {
		case "uppercase":
			return strings.ToUpper(text)
		case "lowercase":
			return strings.ToLower(text)
		}
	}
	return text
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
