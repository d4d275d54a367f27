package list

import (
	"github.com/spf13/cast"
	"github.com/yaoapp/kun/maps"
)

// CacheLookup fetch the cached entities of a collection by its query key
type CacheLookup func(queryKey string) []maps.MapStrAny

// ResolveReferences replace foreign key cells with the referenced entities.
// Scalar keys without a cached entity keep their raw value, array elements
// without one are dropped. Rows are copied, the input is left untouched.
func (dsl *DSL) ResolveReferences(rows []maps.MapStrAny, lookup CacheLookup) []maps.MapStrAny {
	columns := dsl.referenceColumns()
	if len(columns) == 0 || lookup == nil {
		return rows
	}

	indexes := map[string]map[string]maps.MapStrAny{}
	for _, column := range columns {
		key := column.Reference.QueryKey
		if _, has := indexes[key]; has {
			continue
		}
		indexes[key] = indexEntities(lookup(key), column.Reference.valueField())
	}

	resolved := make([]maps.MapStrAny, len(rows))
	for i, row := range rows {
		next := maps.MapStrAny{}
		for name, value := range row {
			next[name] = value
		}
		for _, column := range columns {
			next[column.Field] = resolveCell(next[column.Field], indexes[column.Reference.QueryKey])
		}
		resolved[i] = next
	}
	return resolved
}

func (ref *ReferenceDSL) valueField() string {
	if ref.ValueField != "" {
		return ref.ValueField
	}
	return "id"
}

func (dsl *DSL) referenceColumns() []*ColumnDSL {
	columns := []*ColumnDSL{}
	for _, name := range dsl.columnNames() {
		column := dsl.Columns[name]
		if column.Type == TypeReference && column.Reference != nil {
			columns = append(columns, column)
		}
	}
	return columns
}

func indexEntities(entities []maps.MapStrAny, valueField string) map[string]maps.MapStrAny {
	index := map[string]maps.MapStrAny{}
	for _, entity := range entities {
		id, has := entity[valueField]
		if !has || id == nil {
			continue
		}
		index[cast.ToString(id)] = entity
	}
	return index
}

func resolveCell(value interface{}, index map[string]maps.MapStrAny) interface{} {
	if value == nil {
		return nil
	}

	switch value.(type) {
	case []interface{}, []string, []int, []int64, []float64:
		items := cast.ToSlice(value)
		resolved := []interface{}{}
		for _, item := range items {
			if entity, has := index[cast.ToString(item)]; has {
				resolved = append(resolved, entity)
			}
		}
		return resolved
	}

	if entity, has := index[cast.ToString(value)]; has {
		return entity
	}
	return value
}
