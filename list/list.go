package list

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/maps"
)

// New create a new list DSL
func New(name string) *DSL {
	return &DSL{Name: name, Columns: map[string]*ColumnDSL{}}
}

// LoadData load and validate a list schema from a DSL document
func LoadData(data []byte, name string) (*DSL, error) {
	dsl := New(name)
	err := jsoniter.Unmarshal(data, dsl)
	if err != nil {
		return nil, fmt.Errorf("[List] LoadData %s %s", name, err.Error())
	}

	err = dsl.Validate()
	if err != nil {
		return nil, fmt.Errorf("[List] LoadData %s %s", name, err.Error())
	}
	return dsl, nil
}

// Validate check the list schema
func (dsl *DSL) Validate() error {
	var errs error
	if len(dsl.Columns) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("list must have at least one column"))
	}

	for _, name := range dsl.columnNames() {
		column := dsl.Columns[name]
		if column == nil {
			errs = multierror.Append(errs, fmt.Errorf("column %s is empty", name))
			continue
		}
		if !Types[column.Type] {
			errs = multierror.Append(errs, fmt.Errorf("column %s has invalid type: %s", name, column.Type))
		}
		if column.Field == "" && column.Type != TypeAction {
			errs = multierror.Append(errs, fmt.Errorf("column %s must have a field", name))
		}
		if column.Type == TypeReference && column.Reference == nil {
			errs = multierror.Append(errs, fmt.Errorf("column %s must have a reference", name))
		}
	}

	if dsl.Options != nil && dsl.Options.GroupBy != nil {
		if dsl.column(dsl.Options.GroupBy.Field) == nil {
			errs = multierror.Append(errs, fmt.Errorf("groupBy references non-existent field: %s", dsl.Options.GroupBy.Field))
		}
	}
	return errs
}

// columnNames the column names in stable order
func (dsl *DSL) columnNames() []string {
	names := make([]string, 0, len(dsl.Columns))
	for name := range dsl.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// column find the column bound to the given field
func (dsl *DSL) column(field string) *ColumnDSL {
	for _, column := range dsl.Columns {
		if column != nil && column.Field == field {
			return column
		}
	}
	return nil
}

// Paginate slice one page out of the rows. Pages are 1-based.
func Paginate(rows []maps.MapStrAny, page int, size int) []maps.MapStrAny {
	if size <= 0 || page <= 0 {
		return rows
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []maps.MapStrAny{}
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
