package form

import (
	"time"

	"github.com/yaoapp/kun/maps"
)

// DefaultValidationDelay the debounce delay before a validator runs
var DefaultValidationDelay = 200 * time.Millisecond

// State the form state snapshot published to subscribers
type State struct {
	Values     maps.MapStrAny
	Errors     map[string]string
	Touched    map[string]bool
	Dirty      bool
	Valid      bool
	Validating bool
	Submitting bool
}

// FieldState the state of a single field store
type FieldState struct {
	Value      interface{}
	Error      string
	Touched    bool
	Dirty      bool
	Validating bool
	Dependent  bool
}

// Subscriber receives form state snapshots
type Subscriber func(state State)

// FieldSubscriber receives a field's current value and error
type FieldSubscriber func(value interface{}, err string)

// FieldStateSubscriber receives field store state snapshots
type FieldStateSubscriber func(state FieldState)

// FieldValidator validates one field value against the full value snapshot.
// The message is the user-facing error, empty means valid. A non-nil error
// marks a failing validator, its message surfaces as the field error.
type FieldValidator func(value interface{}, values maps.MapStrAny) (string, error)

// FormValidator validates the whole form and returns the error map
type FormValidator func(values maps.MapStrAny) (map[string]string, error)

// ReferenceLoader loads the entities of a referenced model
type ReferenceLoader func(model string) ([]maps.MapStrAny, error)

func (state State) clone() State {
	new := State{
		Values:     maps.MapStrAny{},
		Errors:     map[string]string{},
		Touched:    map[string]bool{},
		Dirty:      state.Dirty,
		Valid:      state.Valid,
		Validating: state.Validating,
		Submitting: state.Submitting,
	}
	for key, value := range state.Values {
		new.Values[key] = value
	}
	for key, message := range state.Errors {
		new.Errors[key] = message
	}
	for key, touched := range state.Touched {
		new.Touched[key] = touched
	}
	return new
}

// falsy the emptiness test used by auto-select and the required constraint
func falsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case int32:
		return v == 0
	case int64:
		return v == 0
	case float32:
		return v == 0
	case float64:
		return v == 0
	case []interface{}:
		return len(v) == 0
	}
	return false
}
