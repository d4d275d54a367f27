package schema

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/uischema/uischema/field"
)

// New create a new schema DSL
func New(name string) *DSL {
	return &DSL{Name: name, Fields: field.Fields{}}
}

// LoadData load a schema from a DSL document
func LoadData(data []byte, name string) (*DSL, error) {
	dsl := New(name)
	err := jsoniter.Unmarshal(data, dsl)
	if err != nil {
		return nil, fmt.Errorf("[Schema] LoadData %s %s", name, err.Error())
	}

	if dsl.Fields == nil {
		dsl.Fields = field.Fields{}
	}
	return dsl, nil
}

// Clone the schema
func (dsl *DSL) Clone() *DSL {
	if dsl == nil {
		return nil
	}

	new := DSL{Name: dsl.Name, Fields: dsl.Fields.Clone()}
	if dsl.Layout != nil {
		layout := LayoutDSL{}
		if dsl.Layout.Groups != nil {
			layout.Groups = make([]GroupDSL, len(dsl.Layout.Groups))
			for i, group := range dsl.Layout.Groups {
				layout.Groups[i] = GroupDSL{
					Name:        group.Name,
					Label:       group.Label,
					Fields:      append([]string{}, group.Fields...),
					Collapsible: group.Collapsible,
				}
			}
		}
		if dsl.Layout.Order != nil {
			layout.Order = append([]string{}, dsl.Layout.Order...)
		}
		new.Layout = &layout
	}
	return &new
}
