package form

import (
	"fmt"
	"regexp"
	"time"

	"github.com/expr-lang/expr"
	"github.com/spf13/cast"
	"github.com/uischema/uischema/field"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/kun/maps"
)

// awaitFieldValidation debounce the field validation and block until it
// settles. A newer call supersedes a pending one: the superseded caller is
// released at once and only the newest validation writes into state.
func (store *Store) awaitFieldValidation(name string, value interface{}) {
	store.mu.Lock()
	store.generations[name]++
	generation := store.generations[name]

	if timer, has := store.timers[name]; has {
		timer.Stop()
	}
	if done, has := store.pending[name]; has {
		delete(store.pending, name)
		close(done)
	}

	done := make(chan struct{})
	store.pending[name] = done

	values := maps.MapStrAny{}
	for key, v := range store.state.Values {
		values[key] = v
	}

	store.timers[name] = time.AfterFunc(store.delay, func() {
		store.runFieldValidation(name, value, values, generation, done)
	})
	store.mu.Unlock()

	<-done
}

// runFieldValidation execute the validator once the debounce timer fires.
// A stale generation discards its result instead of writing state.
func (store *Store) runFieldValidation(name string, value interface{}, values maps.MapStrAny, generation uint64, done chan struct{}) {
	store.mu.Lock()
	if store.generations[name] != generation {
		store.mu.Unlock()
		return
	}
	validator := store.validators[name]
	var validation *field.ValidationDSL
	label := name
	if def, has := store.schema.Fields[name]; has {
		if def.Label != "" {
			label = def.Label
		}
		if def.Validation != nil {
			v := *def.Validation
			validation = &v
		}
	}
	store.state.Validating = true
	store.mu.Unlock()
	store.notify()

	var message string
	var err error
	if validator != nil {
		message, err = validator(value, values)
	} else {
		message, err = validateValue(validation, label, value, values)
	}
	if err != nil {
		log.Error("[Form] validate %s %s", name, err.Error())
		message = err.Error()
	}

	store.mu.Lock()
	if store.generations[name] != generation {
		store.mu.Unlock()
		return
	}
	if message != "" {
		store.state.Errors[name] = message
	} else {
		delete(store.state.Errors, name)
	}
	store.state.Valid = len(store.state.Errors) == 0
	delete(store.pending, name)
	store.state.Validating = store.validating()
	store.mu.Unlock()

	store.notify()
	store.notifyField(name)
	close(done)
}

// validating whether any field validation is still pending or a form-level
// run is underway. Callers hold the lock.
func (store *Store) validating() bool {
	return store.formValidating || len(store.pending) > 0
}

// validateForm run the form-level validator and merge its error map
func (store *Store) validateForm() map[string]string {
	store.mu.Lock()
	validator := store.formValidator
	if validator == nil {
		store.mu.Unlock()
		return map[string]string{}
	}
	values := maps.MapStrAny{}
	for key, value := range store.state.Values {
		values[key] = value
	}
	store.formValidating = true
	store.state.Validating = true
	store.mu.Unlock()
	store.notify()

	errors, err := validator(values)
	if err != nil {
		log.Error("[Form] validate form %s", err.Error())
		errors = map[string]string{}
	}

	store.mu.Lock()
	for name, message := range errors {
		if message != "" {
			store.state.Errors[name] = message
		} else {
			delete(store.state.Errors, name)
		}
	}
	store.state.Valid = len(store.state.Errors) == 0
	store.formValidating = false
	store.state.Validating = store.validating()
	store.mu.Unlock()

	store.notify()
	for name := range errors {
		store.notifyField(name)
	}
	return errors
}

// validateValue the built-in constraint checks: required, string length
// bounds, numeric bounds, pattern, then the custom predicate
func validateValue(validation *field.ValidationDSL, label string, value interface{}, values maps.MapStrAny) (string, error) {
	if validation == nil {
		return "", nil
	}

	if validation.Required != nil && *validation.Required && falsy(value) {
		return fmt.Sprintf("%s is required", label), nil
	}

	if !falsy(value) {
		switch v := value.(type) {
		case string:
			if validation.MinLength != nil && len(v) < *validation.MinLength {
				return fmt.Sprintf("%s must be at least %d characters", label, *validation.MinLength), nil
			}
			if validation.MaxLength != nil && len(v) > *validation.MaxLength {
				return fmt.Sprintf("%s must be at most %d characters", label, *validation.MaxLength), nil
			}
			if validation.Pattern != "" {
				re, err := regexp.Compile(validation.Pattern)
				if err != nil {
					return "", fmt.Errorf("invalid pattern %s", validation.Pattern)
				}
				if !re.MatchString(v) {
					if validation.PatternMessage != "" {
						return validation.PatternMessage, nil
					}
					return fmt.Sprintf("%s format is invalid", label), nil
				}
			}

		case int, int32, int64, float32, float64:
			num := cast.ToFloat64(v)
			if validation.Min != nil && num < *validation.Min {
				return fmt.Sprintf("%s must be at least %v", label, *validation.Min), nil
			}
			if validation.Max != nil && num > *validation.Max {
				return fmt.Sprintf("%s must be at most %v", label, *validation.Max), nil
			}
		}
	}

	if validation.Custom != "" {
		return validateCustom(validation.Custom, label, value, values)
	}
	return "", nil
}

// validateCustom run the custom predicate expression with {value, values} in
// scope. A string result is the error message, false is the generic invalid
// message, anything else passes.
func validateCustom(stmt string, label string, value interface{}, values maps.MapStrAny) (string, error) {
	env := map[string]interface{}{"value": value, "values": map[string]interface{}(values)}
	program, err := expr.Compile(stmt, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		log.Warn("[Form] custom validation %s %s", stmt, err.Error())
		return "", fmt.Errorf("invalid custom validation: %s", err.Error())
	}

	res, err := expr.Run(program, env)
	if err != nil {
		log.Warn("[Form] custom validation %s %s", stmt, err.Error())
		return "", fmt.Errorf("custom validation failed: %s", err.Error())
	}

	switch v := res.(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case bool:
		if !v {
			return fmt.Sprintf("%s is invalid", label), nil
		}
	}
	return "", nil
}
