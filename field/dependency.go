package field

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/kun/maps"
)

// Handler evaluates dependency rules against a snapshot of field values.
// It is a pure evaluator: no state beyond the schema reference and the
// reverse index built at construction.
type Handler struct {
	fields Fields
	index  map[string][]string // trigger field -> owning fields
	owners []string            // fields with dependencies, name-sorted
}

// NewHandler build a handler with the reverse dependency index
func NewHandler(fields Fields) *Handler {
	handler := &Handler{fields: fields, index: map[string][]string{}, owners: []string{}}

	for name, dsl := range fields {
		if len(dsl.Dependencies) == 0 {
			continue
		}
		handler.owners = append(handler.owners, name)
		for _, rule := range dsl.Dependencies {
			for _, trigger := range rule.triggers() {
				handler.index[trigger] = append(handler.index[trigger], name)
			}
		}
	}

	sort.Strings(handler.owners)
	for trigger, names := range handler.index {
		sort.Strings(names)
		handler.index[trigger] = unique(names)
	}
	return handler
}

// DependentFields the fields whose rules reference the given field
func (handler *Handler) DependentFields(name string) []string {
	return handler.index[name]
}

// Evaluate compute the effects of the fields whose rules reference the
// changed field. Unknown trigger fields yield an empty map.
func (handler *Handler) Evaluate(changed string, values maps.MapStrAny) map[string]Effect {
	effects := map[string]Effect{}
	for _, owner := range handler.index[changed] {
		handler.evaluateOwner(owner, values, effects)
	}
	return effects
}

// EvaluateAll re-run every field's rules against the full value snapshot
func (handler *Handler) EvaluateAll(values maps.MapStrAny) map[string]Effect {
	effects := map[string]Effect{}
	for _, owner := range handler.owners {
		handler.evaluateOwner(owner, values, effects)
	}
	return effects
}

func (handler *Handler) evaluateOwner(owner string, values maps.MapStrAny, effects map[string]Effect) {
	dsl, has := handler.fields[owner]
	if !has {
		return
	}

	for _, rule := range dsl.Dependencies {
		if !rule.Satisfied(values) {
			continue
		}
		effect := effects[owner]
		effect.Merge(rule.effects(values))
		effects[owner] = effect
	}
}

// Satisfied report whether the composite rule condition holds: the operator
// test, AND all and-rules, AND (no or-rules OR at least one or-rule).
func (rule DependencyRule) Satisfied(values maps.MapStrAny) bool {
	if !compare(rule.Operator, values[rule.Field], rule.Value) {
		return false
	}

	for _, sub := range rule.And {
		if !sub.Satisfied(values) {
			return false
		}
	}

	if len(rule.Or) > 0 {
		any := false
		for _, sub := range rule.Or {
			if sub.Satisfied(values) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}

	return true
}

// effects fold the rule's effect with the effects of its satisfied sub-rules
func (rule DependencyRule) effects(values maps.MapStrAny) Effect {
	effect := rule.Effect
	for _, sub := range rule.And {
		if sub.Satisfied(values) {
			effect.Merge(sub.effects(values))
		}
	}
	for _, sub := range rule.Or {
		if sub.Satisfied(values) {
			effect.Merge(sub.effects(values))
		}
	}
	return effect
}

// triggers the fields the rule reads, including nested and/or rules
func (rule DependencyRule) triggers() []string {
	names := []string{rule.Field}
	for _, sub := range rule.And {
		names = append(names, sub.triggers()...)
	}
	for _, sub := range rule.Or {
		names = append(names, sub.triggers()...)
	}
	return names
}

func compare(operator string, value interface{}, want interface{}) bool {
	switch operator {
	case OpEquals:
		return equals(value, want)

	case OpNotEquals:
		return !equals(value, want)

	case OpContains:
		return strings.Contains(cast.ToString(value), cast.ToString(want))

	case OpNotContains:
		return !strings.Contains(cast.ToString(value), cast.ToString(want))

	case OpGreaterThan:
		return cast.ToFloat64(value) > cast.ToFloat64(want)

	case OpLessThan:
		return cast.ToFloat64(value) < cast.ToFloat64(want)

	case OpGreaterThanOrEqual:
		return cast.ToFloat64(value) >= cast.ToFloat64(want)

	case OpLessThanOrEqual:
		return cast.ToFloat64(value) <= cast.ToFloat64(want)

	case OpIn:
		return within(value, want)

	case OpNotIn:
		return !within(value, want)

	case OpIsNull:
		return value == nil

	case OpIsNotNull:
		return value != nil

	case OpStartsWith:
		return strings.HasPrefix(cast.ToString(value), cast.ToString(want))

	case OpEndsWith:
		return strings.HasSuffix(cast.ToString(value), cast.ToString(want))

	case OpRegex:
		re, err := regexp.Compile(cast.ToString(want))
		if err != nil {
			log.Warn("[Field] dependency regex %s %s", cast.ToString(want), err.Error())
			return false
		}
		return re.MatchString(cast.ToString(value))
	}

	return false
}

func equals(value interface{}, want interface{}) bool {
	if value == nil || want == nil {
		return value == nil && want == nil
	}
	if reflect.DeepEqual(value, want) {
		return true
	}

	// JSON numbers arrive as float64, schema authors may write integers
	vnum, verr := cast.ToFloat64E(value)
	wnum, werr := cast.ToFloat64E(want)
	if verr == nil && werr == nil {
		return vnum == wnum
	}

	vstr, verr2 := cast.ToStringE(value)
	wstr, werr2 := cast.ToStringE(want)
	if verr2 == nil && werr2 == nil {
		return vstr == wstr
	}
	return false
}

func within(value interface{}, want interface{}) bool {
	reflected := reflect.ValueOf(want)
	if want == nil || (reflected.Kind() != reflect.Slice && reflected.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < reflected.Len(); i++ {
		if equals(value, reflected.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func unique(names []string) []string {
	res := []string{}
	last := ""
	for i, name := range names {
		if i == 0 || name != last {
			res = append(res, name)
		}
		last = name
	}
	return res
}
