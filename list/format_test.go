package list

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/kun/maps"
)

func intp(v int) *int { return &v }

func TestFormatCellNil(t *testing.T) {
	column := &ColumnDSL{Type: TypeText, Field: "name"}
	assert.Equal(t, "-", FormatCell(column, nil, maps.MapStrAny{}))
}

func TestFormatText(t *testing.T) {
	column := &ColumnDSL{Type: TypeText, Field: "name", Format: &FormatDSL{
		Text: &TextFormat{Transform: "uppercase"},
	}}
	assert.Equal(t, "ALICE", FormatCell(column, "alice", nil))

	column.Format.Text = &TextFormat{Transform: "capitalize"}
	assert.Equal(t, "Alice", FormatCell(column, "alice", nil))

	column.Format.Text = &TextFormat{Truncate: 5}
	assert.Equal(t, "a lon...", FormatCell(column, "a long description", nil))
	assert.Equal(t, "short", FormatCell(column, "short", nil))
}

func TestFormatTextMultibyte(t *testing.T) {
	column := &ColumnDSL{Type: TypeText, Field: "name", Format: &FormatDSL{
		Text: &TextFormat{Truncate: 2},
	}}

	// truncation cuts runes, never the middle of a character
	truncated := FormatCell(column, "héllo", nil)
	assert.Equal(t, "hé...", truncated)
	assert.True(t, utf8.ValidString(truncated))

	column.Format.Text = &TextFormat{Transform: "capitalize"}
	assert.Equal(t, "Éclair", FormatCell(column, "éclair", nil))
}

func TestFormatNumber(t *testing.T) {
	column := &ColumnDSL{Type: TypeNumber, Field: "amount", Format: &FormatDSL{
		Number: &NumberFormat{Precision: intp(2)},
	}}
	assert.Equal(t, "1,234.50", FormatCell(column, 1234.5, nil))

	column.Format.Number = &NumberFormat{Notation: "scientific", Precision: intp(2)}
	assert.Equal(t, "1.23e+06", FormatCell(column, 1234500.0, nil))

	column.Format.Number = &NumberFormat{Notation: "engineering", Precision: intp(2)}
	assert.Equal(t, "1.23e+06", FormatCell(column, 1234500.0, nil))

	column.Format.Number = &NumberFormat{Notation: "compact"}
	assert.Equal(t, "1.2M", FormatCell(column, 1234500.0, nil))
	assert.Equal(t, "1.5K", FormatCell(column, 1500.0, nil))
	assert.Equal(t, "950", FormatCell(column, 950.0, nil))
	assert.Equal(t, "2.1B", FormatCell(column, 2.1e9, nil))
}

func TestFormatCurrency(t *testing.T) {
	column := &ColumnDSL{Type: TypeNumber, Field: "amount", Format: &FormatDSL{
		Number: &NumberFormat{Currency: "USD"},
	}}
	res := FormatCell(column, 1234.5, nil)
	assert.True(t, strings.Contains(res, "$"), res)
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	column := &ColumnDSL{Type: TypeDate, Field: "due", Format: &FormatDSL{
		Date: &DateFormat{Layout: "Jan 2, 2006"},
	}}
	assert.Equal(t, "Mar 15, 2024", FormatCell(column, date, nil))
	assert.Equal(t, "Mar 15, 2024", FormatCell(column, "2024-03-15", nil))

	// an unparseable date renders as-is
	assert.Equal(t, "not-a-date", FormatCell(column, "not-a-date", nil))
}

func TestFormatDateRelative(t *testing.T) {
	column := &ColumnDSL{Type: TypeDate, Field: "due", Format: &FormatDSL{
		Date: &DateFormat{Relative: true},
	}}
	assert.Equal(t, "in 3 days", FormatCell(column, time.Now().Add(73*time.Hour), nil))
	assert.Equal(t, "3 days ago", FormatCell(column, time.Now().Add(-71*time.Hour), nil))
	assert.Equal(t, "today", FormatCell(column, time.Now().Add(time.Hour), nil))
}

func TestFormatBoolean(t *testing.T) {
	column := &ColumnDSL{Type: TypeBoolean, Field: "active", Format: &FormatDSL{
		Boolean: &BooleanFormat{},
	}}
	assert.Equal(t, "Yes", FormatCell(column, true, nil))
	assert.Equal(t, "No", FormatCell(column, false, nil))

	column.Format.Boolean = &BooleanFormat{TrueText: "Active", FalseText: "Inactive"}
	assert.Equal(t, "Active", FormatCell(column, true, nil))
	assert.Equal(t, "Inactive", FormatCell(column, false, nil))
}

func TestFormatArray(t *testing.T) {
	column := &ColumnDSL{Type: TypeArray, Field: "tags", Format: &FormatDSL{
		Array: &ArrayFormat{},
	}}
	assert.Equal(t, "a, b, c", FormatCell(column, []interface{}{"a", "b", "c"}, nil))

	column.Format.Array = &ArrayFormat{MaxItems: 2}
	assert.Equal(t, "a, b, +2 more", FormatCell(column, []interface{}{"a", "b", "c", "d"}, nil))

	column.Format.Array = &ArrayFormat{Separator: " | ", ItemFormatter: func(item interface{}) string {
		return "#" + item.(string)
	}}
	assert.Equal(t, "#a | #b", FormatCell(column, []interface{}{"a", "b"}, nil))
}

func TestFormatReference(t *testing.T) {
	column := &ColumnDSL{
		Type:      TypeReference,
		Field:     "departmentId",
		Reference: &ReferenceDSL{QueryKey: "departments"},
		Format:    &FormatDSL{Reference: &ReferenceFormat{LabelField: "name"}},
	}

	entity := maps.MapStrAny{"id": 7, "name": "Engineering"}
	assert.Equal(t, "Engineering", FormatCell(column, entity, nil))

	// an unresolved foreign key falls back
	assert.Equal(t, "-", FormatCell(column, 7, nil))

	column.Format.Reference.Fallback = "Unknown"
	assert.Equal(t, "Unknown", FormatCell(column, 7, nil))
	assert.Equal(t, "Unknown", FormatCell(column, maps.MapStrAny{"id": 7}, nil))
}
