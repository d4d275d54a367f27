package form

import (
	"sync"
	"time"

	"github.com/uischema/uischema/field"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/kun/maps"
)

// FieldValidatorFunc validates a single stored value
type FieldValidatorFunc func(value interface{}) (string, error)

// FieldStore drives one field outside of a form: value, flags, debounced
// validation and dependency effects.
type FieldStore struct {
	def         *field.DSL
	transformer *field.Transformer

	mu    sync.Mutex
	state FieldState

	subscribers map[int]FieldStateSubscriber
	nextID      int

	validator  FieldValidatorFunc
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	pending    chan struct{}

	dependencyFields []string
}

// FieldOption configures a field store
type FieldOption func(*FieldStore)

// WithFieldValidationDelay override the debounce delay
func WithFieldValidationDelay(delay time.Duration) FieldOption {
	return func(store *FieldStore) { store.delay = delay }
}

// NewFieldStore create a field store from a definition and an optional
// initial display value
func NewFieldStore(def *field.DSL, initial interface{}, options ...FieldOption) *FieldStore {
	store := &FieldStore{
		def:         def,
		transformer: field.NewTransformer(def),
		subscribers: map[int]FieldStateSubscriber{},
		delay:       DefaultValidationDelay,
	}
	for _, option := range options {
		option(store)
	}

	value := def.DefaultValue()
	if initial != nil {
		value = store.transformer.FromDisplay(initial)
	}
	store.state = FieldState{Value: value}

	seen := map[string]bool{}
	for _, rule := range def.Dependencies {
		if !seen[rule.Field] {
			seen[rule.Field] = true
			store.dependencyFields = append(store.dependencyFields, rule.Field)
		}
	}
	return store
}

// Subscribe register a subscriber, replayed the current state at once
func (store *FieldStore) Subscribe(subscriber FieldStateSubscriber) func() {
	store.mu.Lock()
	store.nextID++
	id := store.nextID
	store.subscribers[id] = subscriber
	state := store.state
	store.mu.Unlock()

	subscriber(state)
	return func() {
		store.mu.Lock()
		delete(store.subscribers, id)
		store.mu.Unlock()
	}
}

// SetValue store the display value, mark the field touched and dirty, then
// schedule the debounced validation and return. Call WaitValidation for the
// post-validation state.
func (store *FieldStore) SetValue(value interface{}) {
	store.mu.Lock()
	store.state.Value = store.transformer.FromDisplay(value)
	store.state.Touched = true
	store.state.Dirty = true
	stored := store.state.Value
	store.mu.Unlock()

	store.notify()
	store.scheduleValidation(stored)
}

// WaitValidation block until the pending validation settles. Returns at once
// when none is pending.
func (store *FieldStore) WaitValidation() {
	store.mu.Lock()
	done := store.pending
	store.mu.Unlock()
	if done != nil {
		<-done
	}
}

// GetValue the display value of the field
func (store *FieldStore) GetValue() interface{} {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.transformer.ToDisplay(store.state.Value)
}

// StoredValue the raw stored value
func (store *FieldStore) StoredValue() interface{} {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state.Value
}

// SetError set the field error
func (store *FieldStore) SetError(err string) {
	store.mu.Lock()
	store.state.Error = err
	store.mu.Unlock()
	store.notify()
}

// Reset restore the given value, or the field default, and clear the flags.
// The dependent flag survives: a dependency-controlled field stays so.
func (store *FieldStore) Reset(value interface{}) {
	store.mu.Lock()
	if store.timer != nil {
		store.timer.Stop()
	}
	if store.pending != nil {
		close(store.pending)
		store.pending = nil
	}
	store.generation++
	new := FieldState{Dependent: store.state.Dependent}
	if value != nil {
		new.Value = value
	} else {
		new.Value = store.def.DefaultValue()
	}
	store.state = new
	store.mu.Unlock()
	store.notify()
}

// SetValidator register the field validator
func (store *FieldStore) SetValidator(validator FieldValidatorFunc) {
	store.mu.Lock()
	store.validator = validator
	store.mu.Unlock()
}

// GetState the current field state
func (store *FieldStore) GetState() FieldState {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// DependencyFields the fields this field's rules read
func (store *FieldStore) DependencyFields() []string {
	return append([]string{}, store.dependencyFields...)
}

// UpdateFromDependencies apply the effects of the rules satisfied by the
// given values of the other fields. Subscribers are only notified when at
// least one effect applied.
func (store *FieldStore) UpdateFromDependencies(values maps.MapStrAny) {
	store.mu.Lock()
	applied := false
	for _, rule := range store.def.Dependencies {
		if !rule.Satisfied(values) {
			continue
		}
		if rule.Effect.Hide != nil {
			store.state.Dependent = true
			applied = true
		}
		if rule.Effect.SetValue != nil {
			store.state.Value = rule.Effect.SetValue
			store.state.Dependent = true
			applied = true
		}
		if rule.Effect.ClearValue {
			store.state.Value = store.def.DefaultValue()
			store.state.Dependent = true
			applied = true
		}
	}
	store.mu.Unlock()

	if applied {
		store.notify()
	}
}

// scheduleValidation debounce the validation, last call wins. A superseded
// timer keeps the pending channel: waiters are released once the newest
// validation settles.
func (store *FieldStore) scheduleValidation(value interface{}) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.validator == nil {
		return
	}

	store.generation++
	generation := store.generation
	if store.timer != nil {
		store.timer.Stop()
	}
	if store.pending == nil {
		store.pending = make(chan struct{})
	}
	done := store.pending

	store.timer = time.AfterFunc(store.delay, func() {
		store.runValidation(value, generation, done)
	})
}

func (store *FieldStore) runValidation(value interface{}, generation uint64, done chan struct{}) {
	store.mu.Lock()
	if store.generation != generation {
		store.mu.Unlock()
		return
	}
	validator := store.validator
	store.state.Validating = true
	store.mu.Unlock()
	store.notify()

	message, err := validator(value)
	if err != nil {
		log.Error("[Field] validate %s", err.Error())
		message = err.Error()
	}

	store.mu.Lock()
	if store.generation != generation {
		store.mu.Unlock()
		return
	}
	store.state.Error = message
	store.state.Validating = false
	store.pending = nil
	store.mu.Unlock()

	store.notify()
	close(done)
}

func (store *FieldStore) notify() {
	store.mu.Lock()
	subscribers := make([]FieldStateSubscriber, 0, len(store.subscribers))
	for _, subscriber := range store.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	state := store.state
	store.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(state)
	}
}
