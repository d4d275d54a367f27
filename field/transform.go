package field

import (
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// DateLayout the display layout of date values
const DateLayout = "2006-01-02"

// Transformer converts a field value between its stored and display shapes
type Transformer struct {
	field *DSL
}

// NewTransformer create a transformer for the field definition
func NewTransformer(field *DSL) *Transformer {
	return &Transformer{field: field}
}

// ToDisplay map a stored value to its display value
func (transformer *Transformer) ToDisplay(value interface{}) interface{} {
	if transformer.field.Mapper != nil && transformer.field.Mapper.ToDisplay != nil {
		return transformer.field.Mapper.ToDisplay(value)
	}

	if transformer.field.BitFlags != nil {
		return transformer.flagsOf(value)
	}

	switch transformer.field.Type {
	case TypeText:
		if value == nil {
			return ""
		}
		return cast.ToString(value)

	case TypeNumber:
		if value == nil {
			return float64(0)
		}
		return cast.ToFloat64(value)

	case TypeDate:
		if value == nil {
			return ""
		}
		if date, ok := value.(time.Time); ok {
			if date.IsZero() {
				return ""
			}
			return date.Format(DateLayout)
		}
		return value

	case TypeCheckbox:
		return cast.ToBool(value)

	case TypeMultiSelect, TypeList:
		if value == nil {
			return []interface{}{}
		}
		return value
	}

	return value
}

// FromDisplay map a display value back to its stored value
func (transformer *Transformer) FromDisplay(value interface{}) interface{} {
	if transformer.field.Mapper != nil && transformer.field.Mapper.FromDisplay != nil {
		return transformer.field.Mapper.FromDisplay(value)
	}

	if transformer.field.BitFlags != nil {
		return transformer.flagValue(value)
	}

	switch transformer.field.Type {
	case TypeText:
		if value == nil {
			return ""
		}
		return cast.ToString(value)

	case TypeNumber:
		if value == nil {
			return float64(0)
		}
		return cast.ToFloat64(value)

	case TypeDate:
		if value == nil {
			return nil
		}
		if date, ok := value.(time.Time); ok {
			return date
		}
		// the zero time marks an unparseable date, it does not raise
		date, err := time.Parse(DateLayout, cast.ToString(value))
		if err != nil {
			if date, err := cast.ToTimeE(value); err == nil {
				return date
			}
			return time.Time{}
		}
		return date

	case TypeCheckbox:
		return cast.ToBool(value)

	case TypeMultiSelect, TypeList:
		if value == nil {
			return []interface{}{}
		}
		return value
	}

	return value
}

// flagsOf collect the flag values whose bit is set, in declaration order
func (transformer *Transformer) flagsOf(value interface{}) []int64 {
	stored := cast.ToInt64(value)
	flags := []int64{}
	for _, group := range transformer.field.BitFlags.Groups {
		for _, option := range group.Options {
			if option.Value != 0 && stored&option.Value == option.Value {
				flags = append(flags, option.Value)
			}
		}
	}
	return flags
}

// flagValue fold the selected flag values into a single integer
func (transformer *Transformer) flagValue(value interface{}) int64 {
	var stored int64
	if value == nil {
		return stored
	}

	reflected := reflect.ValueOf(value)
	if reflected.Kind() != reflect.Slice && reflected.Kind() != reflect.Array {
		return cast.ToInt64(value)
	}

	for i := 0; i < reflected.Len(); i++ {
		stored = stored | cast.ToInt64(reflected.Index(i).Interface())
	}
	return stored
}
