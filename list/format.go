package list

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"
	"github.com/yaoapp/kun/maps"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatCell render a cell value for display. Null values always render as
// the dash placeholder, whatever the column type.
func FormatCell(column *ColumnDSL, value interface{}, row maps.MapStrAny) string {
	if value == nil {
		return "-"
	}

	if column.Type == TypeReference {
		return formatReference(column, value)
	}

	if column.Format == nil {
		return cast.ToString(value)
	}

	switch column.Type {
	case TypeText:
		return formatText(column.Format.Text, cast.ToString(value))

	case TypeNumber:
		return formatNumber(column.Format.Number, cast.ToFloat64(value))

	case TypeDate:
		return formatDate(column.Format.Date, value)

	case TypeBoolean:
		return formatBoolean(column.Format.Boolean, cast.ToBool(value))

	case TypeArray:
		return formatArray(column.Format.Array, value)
	}

	return cast.ToString(value)
}

func formatReference(column *ColumnDSL, value interface{}) string {
	fallback := "-"
	labelField := ""
	if column.Format != nil && column.Format.Reference != nil {
		labelField = column.Format.Reference.LabelField
		if column.Format.Reference.Fallback != "" {
			fallback = column.Format.Reference.Fallback
		}
	}

	entity := entityOf(value)
	if entity == nil || labelField == "" {
		return fallback
	}
	if label, has := entity[labelField]; has && label != nil {
		return cast.ToString(label)
	}
	return fallback
}

// entityOf a resolved reference value, nil for raw foreign keys
func entityOf(value interface{}) maps.MapStrAny {
	switch v := value.(type) {
	case maps.MapStrAny:
		return v
	case map[string]interface{}:
		return maps.MapStrAny(v)
	}
	return nil
}

func formatText(format *TextFormat, value string) string {
	if format == nil {
		return value
	}

	switch format.Transform {
	case "uppercase":
		value = strings.ToUpper(value)
	case "lowercase":
		value = strings.ToLower(value)
	case "capitalize":
		if value != "" {
			first, size := utf8.DecodeRuneInString(value)
			value = strings.ToUpper(string(first)) + value[size:]
		}
	}

	// truncation counts runes, a multibyte character is never split
	if format.Truncate > 0 {
		if runes := []rune(value); len(runes) > format.Truncate {
			return string(runes[:format.Truncate]) + "..."
		}
	}
	return value
}

func formatNumber(format *NumberFormat, value float64) string {
	if format == nil {
		return cast.ToString(value)
	}

	if format.Currency != "" {
		unit, err := currency.ParseISO(format.Currency)
		if err == nil {
			return printer.Sprintf("%v", currency.Symbol(unit.Amount(value)))
		}
	}

	precision := 2
	if format.Precision != nil {
		precision = *format.Precision
	}

	switch format.Notation {
	case "scientific":
		return strconv.FormatFloat(value, 'e', precision, 64)

	case "engineering":
		return formatEngineering(value, precision)

	case "compact":
		return formatCompact(value)
	}

	if format.Precision != nil {
		return printer.Sprintf("%v", number.Decimal(value, number.Scale(precision)))
	}
	return printer.Sprintf("%v", number.Decimal(value))
}

// formatEngineering scientific notation with the exponent a multiple of 3
func formatEngineering(value float64, precision int) string {
	if value == 0 {
		return strconv.FormatFloat(0, 'e', precision, 64)
	}
	exponent := int(math.Floor(math.Log10(math.Abs(value))/3)) * 3
	mantissa := value / math.Pow(10, float64(exponent))
	return fmt.Sprintf("%se%+03d", strconv.FormatFloat(mantissa, 'f', precision, 64), exponent)
}

func formatCompact(value float64) string {
	abs := math.Abs(value)
	switch {
	case abs >= 1e12:
		return trimZero(value/1e12) + "T"
	case abs >= 1e9:
		return trimZero(value/1e9) + "B"
	case abs >= 1e6:
		return trimZero(value/1e6) + "M"
	case abs >= 1e3:
		return trimZero(value/1e3) + "K"
	}
	return trimZero(value)
}

func trimZero(value float64) string {
	return strconv.FormatFloat(math.Round(value*10)/10, 'f', -1, 64)
}

func formatDate(format *DateFormat, value interface{}) string {
	date, ok := timeOf(value)
	if !ok {
		return cast.ToString(value)
	}

	if format == nil {
		return date.Format("2006-01-02")
	}

	if format.Timezone != "" {
		if location, err := time.LoadLocation(format.Timezone); err == nil {
			date = date.In(location)
		}
	}

	if format.Relative {
		return formatRelative(date)
	}

	if format.Layout != "" {
		return date.Format(format.Layout)
	}
	return date.Format("Jan 2, 2006")
}

// formatRelative days-from-now wording
func formatRelative(date time.Time) string {
	days := int(math.Floor(time.Until(date).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "in 1 day"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == -1:
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", -days)
}

func formatBoolean(format *BooleanFormat, value bool) string {
	if value {
		if format != nil && format.TrueText != "" {
			return format.TrueText
		}
		return "Yes"
	}
	if format != nil && format.FalseText != "" {
		return format.FalseText
	}
	return "No"
}

func formatArray(format *ArrayFormat, value interface{}) string {
	items := cast.ToSlice(value)
	if format == nil {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = cast.ToString(item)
		}
		return strings.Join(parts, ", ")
	}

	shown := items
	if format.MaxItems > 0 && len(items) > format.MaxItems {
		shown = items[:format.MaxItems]
	}

	parts := make([]string, 0, len(shown)+1)
	for _, item := range shown {
		if format.ItemFormatter != nil {
			parts = append(parts, format.ItemFormatter(item))
		} else {
			parts = append(parts, cast.ToString(item))
		}
	}

	if format.MaxItems > 0 && len(items) > format.MaxItems {
		more := format.More
		if more == "" {
			more = fmt.Sprintf("+%d more", len(items)-format.MaxItems)
		}
		parts = append(parts, more)
	}

	separator := format.Separator
	if separator == "" {
		separator = ", "
	}
	return strings.Join(parts, separator)
}

// timeOf coerce a cell value into a time. The zero time of an unparseable
// value reports false.
func timeOf(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		if date, err := time.Parse("2006-01-02", v); err == nil {
			return date, true
		}
		if date, err := cast.ToTimeE(v); err == nil {
			return date, true
		}
		return time.Time{}, false
	}
	if date, err := cast.ToTimeE(value); err == nil {
		return date, true
	}
	return time.Time{}, false
}
