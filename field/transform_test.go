package field

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransformText(t *testing.T) {
	transformer := NewTransformer(&DSL{Type: TypeText})
	assert.Equal(t, "hello", transformer.ToDisplay("hello"))
	assert.Equal(t, "", transformer.ToDisplay(nil))
	assert.Equal(t, "42", transformer.ToDisplay(42))
	assert.Equal(t, "hello", transformer.FromDisplay("hello"))
	assert.Equal(t, "", transformer.FromDisplay(nil))
}

func TestTransformNumber(t *testing.T) {
	transformer := NewTransformer(&DSL{Type: TypeNumber})
	assert.Equal(t, float64(42), transformer.ToDisplay(42))
	assert.Equal(t, float64(0), transformer.ToDisplay(nil))
	assert.Equal(t, 3.14, transformer.ToDisplay("3.14"))
	assert.Equal(t, float64(42), transformer.FromDisplay("42"))
	assert.Equal(t, float64(0), transformer.FromDisplay(nil))
}

func TestTransformDate(t *testing.T) {
	transformer := NewTransformer(&DSL{Type: TypeDate})

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15", transformer.ToDisplay(date))
	assert.Equal(t, "", transformer.ToDisplay(nil))
	assert.Equal(t, "", transformer.ToDisplay(time.Time{}))

	stored := transformer.FromDisplay("2024-03-15")
	assert.Equal(t, date, stored)

	passthrough := transformer.FromDisplay(date)
	assert.Equal(t, date, passthrough)

	assert.Nil(t, transformer.FromDisplay(nil))
}

func TestTransformInvalidDate(t *testing.T) {
	transformer := NewTransformer(&DSL{Type: TypeDate})
	stored := transformer.FromDisplay("not a date")
	date, ok := stored.(time.Time)
	assert.True(t, ok)
	assert.True(t, date.IsZero())
	assert.Equal(t, "", transformer.ToDisplay(date))
}

func TestTransformCheckbox(t *testing.T) {
	transformer := NewTransformer(&DSL{Type: TypeCheckbox})
	assert.Equal(t, true, transformer.ToDisplay(true))
	assert.Equal(t, false, transformer.ToDisplay(nil))
	assert.Equal(t, true, transformer.ToDisplay(1))
	assert.Equal(t, true, transformer.FromDisplay("true"))
}

func TestTransformMultiSelect(t *testing.T) {
	transformer := NewTransformer(&DSL{Type: TypeMultiSelect})
	assert.Equal(t, []interface{}{}, transformer.ToDisplay(nil))
	assert.Equal(t, []interface{}{"a", "b"}, transformer.ToDisplay([]interface{}{"a", "b"}))
	assert.Equal(t, []interface{}{}, transformer.FromDisplay(nil))
}

func TestTransformBitFlags(t *testing.T) {
	transformer := NewTransformer(&DSL{
		Type: TypeMultiSelect,
		BitFlags: &BitFlagsDSL{
			Groups: []BitFlagGroup{
				{Name: "basic", Options: []BitFlagOption{
					{Value: 1, Label: "Read"},
					{Value: 2, Label: "Write"},
				}},
				{Name: "admin", Options: []BitFlagOption{
					{Value: 16, Label: "Manage"},
					{Value: 32, Label: "Audit"},
				}},
			},
		},
	})

	assert.Equal(t, []int64{1, 2}, transformer.ToDisplay(3))
	assert.Equal(t, []int64{16, 32}, transformer.ToDisplay(48))
	assert.Equal(t, []int64{}, transformer.ToDisplay(0))
	assert.Equal(t, []int64{}, transformer.ToDisplay(nil))

	assert.Equal(t, int64(3), transformer.FromDisplay([]interface{}{1, 2}))
	assert.Equal(t, int64(48), transformer.FromDisplay([]int64{16, 32}))
	assert.Equal(t, int64(0), transformer.FromDisplay([]interface{}{}))
	assert.Equal(t, int64(0), transformer.FromDisplay(nil))

	// selection round trip keeps the stored integer stable
	assert.Equal(t, int64(48), transformer.FromDisplay(transformer.ToDisplay(48)))
}

func TestTransformBitFlagsOrder(t *testing.T) {
	transformer := NewTransformer(&DSL{
		Type: TypeMultiSelect,
		BitFlags: &BitFlagsDSL{
			Groups: []BitFlagGroup{
				{Options: []BitFlagOption{{Value: 8}, {Value: 2}}},
				{Options: []BitFlagOption{{Value: 1}}},
			},
		},
	})
	// declaration order, not numeric order
	assert.Equal(t, []int64{8, 2, 1}, transformer.ToDisplay(11))
}

func TestTransformMapper(t *testing.T) {
	transformer := NewTransformer(&DSL{
		Type: TypeText,
		Mapper: &Mapper{
			ToDisplay: func(value interface{}) interface{} {
				return "display:" + value.(string)
			},
			FromDisplay: func(value interface{}) interface{} {
				return "stored:" + value.(string)
			},
		},
	})
	assert.Equal(t, "display:x", transformer.ToDisplay("x"))
	assert.Equal(t, "stored:x", transformer.FromDisplay("x"))
}

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, "given", (&DSL{Type: TypeText, Default: "given"}).DefaultValue())
	assert.Equal(t, "", (&DSL{Type: TypeText}).DefaultValue())
	assert.Equal(t, float64(0), (&DSL{Type: TypeNumber}).DefaultValue())
	assert.Equal(t, false, (&DSL{Type: TypeCheckbox}).DefaultValue())
	assert.Equal(t, []interface{}{}, (&DSL{Type: TypeMultiSelect}).DefaultValue())
	assert.Equal(t, []interface{}{}, (&DSL{Type: TypeList}).DefaultValue())
}
