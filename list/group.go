package list

import (
	"github.com/spf13/cast"
	"github.com/yaoapp/kun/maps"
)

// Group one bucket of rows sharing the groupBy value
type Group struct {
	Key      string
	Rows     []maps.MapStrAny
	Count    int
	Expanded bool
}

// Expansion track which groups are open
type Expansion map[string]bool

// GroupRows bucket rows by the options groupBy field. Groups appear in the
// order their key first shows up in the rows. Resolved reference values
// group by their label field.
func (dsl *DSL) GroupRows(rows []maps.MapStrAny) []Group {
	if dsl.Options == nil || dsl.Options.GroupBy == nil {
		return []Group{{Key: "", Rows: rows, Count: len(rows), Expanded: true}}
	}

	groupBy := dsl.Options.GroupBy
	index := map[string]int{}
	groups := []Group{}
	for _, row := range rows {
		key := groupKey(row[groupBy.Field], groupBy)
		at, has := index[key]
		if !has {
			at = len(groups)
			index[key] = at
			groups = append(groups, Group{Key: key, Expanded: groupBy.Expanded})
		}
		groups[at].Rows = append(groups[at].Rows, row)
		groups[at].Count++
	}
	return groups
}

// Toggle flip one group open or closed
func (expansion Expansion) Toggle(key string) {
	expansion[key] = !expansion[key]
}

func groupKey(value interface{}, groupBy *GroupByDSL) string {
	if value == nil {
		return "-"
	}
	if entity := entityOf(value); entity != nil {
		labelField := groupBy.LabelField
		if labelField == "" {
			labelField = "name"
		}
		if label, has := entity[labelField]; has && label != nil {
			return cast.ToString(label)
		}
		return "-"
	}
	return cast.ToString(value)
}
