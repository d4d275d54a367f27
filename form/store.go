package form

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/uischema/uischema/field"
	"github.com/uischema/uischema/schema"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/kun/maps"
)

// Store drives a whole form: values, dependency effects, validation and
// reference data. Effects are applied to an owned resolved copy of the
// schema, the caller's schema is never touched.
type Store struct {
	schema  *schema.DSL
	handler *field.Handler

	mu    sync.Mutex
	state State

	subscribers      map[int]Subscriber
	fieldSubscribers map[string]map[int]FieldSubscriber
	nextID           int

	validators     map[string]FieldValidator
	formValidator  FormValidator
	formValidating bool

	delay       time.Duration
	timers      map[string]*time.Timer
	generations map[string]uint64
	pending     map[string]chan struct{}

	loader           ReferenceLoader
	referenceData    map[string][]field.Option
	referenceLoading map[string]bool
	refWait          sync.WaitGroup
}

// StoreOption configures a form store
type StoreOption func(*Store)

// WithReferenceLoader set the injected reference data loader
func WithReferenceLoader(loader ReferenceLoader) StoreOption {
	return func(store *Store) { store.loader = loader }
}

// WithValidationDelay override the debounce delay
func WithValidationDelay(delay time.Duration) StoreOption {
	return func(store *Store) { store.delay = delay }
}

// NewStore create a form store from a schema and initial values
func NewStore(dsl *schema.DSL, initial maps.MapStrAny, options ...StoreOption) (*Store, error) {
	if dsl == nil || len(dsl.Fields) == 0 {
		return nil, fmt.Errorf("[Form] invalid schema: fields are required")
	}

	store := &Store{
		schema:           dsl.Clone(),
		subscribers:      map[int]Subscriber{},
		fieldSubscribers: map[string]map[int]FieldSubscriber{},
		validators:       map[string]FieldValidator{},
		delay:            DefaultValidationDelay,
		timers:           map[string]*time.Timer{},
		generations:      map[string]uint64{},
		pending:          map[string]chan struct{}{},
		referenceData:    map[string][]field.Option{},
		referenceLoading: map[string]bool{},
	}
	for _, option := range options {
		option(store)
	}
	store.handler = field.NewHandler(store.schema.Fields)

	// base values: the provided initial values, then the first option of
	// every select field still empty
	values := maps.MapStrAny{}
	for key, value := range initial {
		values[key] = value
	}
	for _, name := range store.fieldNames() {
		def := store.schema.Fields[name]
		if def.Type == field.TypeSelect && len(def.Options) > 0 && falsy(values[name]) {
			values[name] = def.Options[0].Value
		}
	}

	store.state = State{
		Values:  values,
		Errors:  map[string]string{},
		Touched: map[string]bool{},
		Valid:   true,
	}
	store.applyEffects(store.handler.EvaluateAll(values))

	if store.loader != nil {
		store.loadReferences()
	}
	return store, nil
}

// MustNewStore create a form store, throw on a malformed schema
func MustNewStore(dsl *schema.DSL, initial maps.MapStrAny, options ...StoreOption) *Store {
	store, err := NewStore(dsl, initial, options...)
	if err != nil {
		exception.New(err.Error(), 400).Throw()
	}
	return store
}

// ResolvedSchema the store's schema copy with all dependency effects applied.
// Readers see hidden/read-only/option changes here, not on the input schema.
func (store *Store) ResolvedSchema() *schema.DSL {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.schema.Clone()
}

// GetState the current form state
func (store *Store) GetState() State {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state.clone()
}

// SetFieldValue set one field value, re-evaluate all dependencies, then run
// the debounced field validation. Returns after the validation settles, so
// callers observe the post-validation state.
func (store *Store) SetFieldValue(name string, value interface{}) error {
	store.mu.Lock()
	if _, has := store.schema.Fields[name]; !has {
		store.mu.Unlock()
		return fmt.Errorf("[Form] SetFieldValue field %s does not exist in schema", name)
	}

	store.state.Values[name] = value
	store.applyEffects(store.handler.EvaluateAll(store.state.Values))
	store.state.Touched[name] = true
	store.state.Dirty = true
	store.mu.Unlock()

	store.notify()
	store.notifyField(name)

	store.awaitFieldValidation(name, value)
	return nil
}

// SetValues shallow-merge the given values, then run the form validation
func (store *Store) SetValues(values maps.MapStrAny) {
	store.mu.Lock()
	for key, value := range values {
		if value == nil {
			continue
		}
		store.state.Values[key] = value
	}
	store.state.Dirty = true
	store.mu.Unlock()

	store.notify()
	store.validateForm()
}

// Reset restore the given values, or the schema defaults, and clear all flags
func (store *Store) Reset(values maps.MapStrAny) {
	store.mu.Lock()
	new := maps.MapStrAny{}
	if values != nil {
		for key, value := range values {
			new[key] = value
		}
	} else {
		for name, def := range store.schema.Fields {
			new[name] = def.DefaultValue()
		}
	}
	store.state = State{
		Values:  new,
		Errors:  map[string]string{},
		Touched: map[string]bool{},
		Valid:   true,
	}
	store.mu.Unlock()
	store.notify()
}

// SetSubmitting flag the form as submitting
func (store *Store) SetSubmitting(submitting bool) {
	store.mu.Lock()
	store.state.Submitting = submitting
	store.mu.Unlock()
	store.notify()
}

// SetFormValidator register the form-level validator and run it once
func (store *Store) SetFormValidator(validator FormValidator) {
	store.mu.Lock()
	store.formValidator = validator
	store.mu.Unlock()
	store.validateForm()
}

// SetFieldValidator register a field validator and validate the current value
func (store *Store) SetFieldValidator(name string, validator FieldValidator) error {
	store.mu.Lock()
	if _, has := store.schema.Fields[name]; !has {
		store.mu.Unlock()
		return fmt.Errorf("[Form] SetFieldValidator field %s does not exist in schema", name)
	}
	store.validators[name] = validator
	value := store.state.Values[name]
	store.mu.Unlock()

	store.awaitFieldValidation(name, value)
	return nil
}

// Validate run the form validator, report whether the form is clean
func (store *Store) Validate() bool {
	errors := store.validateForm()
	return len(errors) == 0
}

// applyEffects apply dependency effects to the working values and the
// resolved schema. Caller holds the lock. Field-name order keeps the
// last-write-wins precedence deterministic.
func (store *Store) applyEffects(effects map[string]field.Effect) {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def, has := store.schema.Fields[name]
		if !has {
			continue
		}
		effect := effects[name]

		if effect.SetValue != nil {
			store.state.Values[name] = effect.SetValue
		}
		if effect.ClearValue {
			store.state.Values[name] = nil
		}
		if effect.Hide != nil {
			def.Hidden = *effect.Hide
		}
		if effect.Disable != nil {
			def.ReadOnly = *effect.Disable
		}
		if effect.SetValidation != nil {
			if def.Validation == nil {
				def.Validation = &field.ValidationDSL{}
			}
			def.Validation.Merge(effect.SetValidation)
		}
		if effect.SetRequired != nil {
			if def.Validation == nil {
				def.Validation = &field.ValidationDSL{}
			}
			def.Validation.Required = effect.SetRequired
		}
		if effect.SetOptions != nil {
			def.Options = effect.SetOptions
		}
		if effect.SetOptionGroups != nil {
			def.OptionGroups = effect.SetOptionGroups
		}
	}
}

func (store *Store) fieldNames() []string {
	names := make([]string, 0, len(store.schema.Fields))
	for name := range store.schema.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
