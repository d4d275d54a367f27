package form

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/kun/maps"

	"github.com/uischema/uischema/field"
	"github.com/uischema/uischema/schema"
)

var testDelay = 5 * time.Millisecond

func employmentSchema() *schema.DSL {
	hide := true
	show := false
	required := true
	return &schema.DSL{
		Name: "employment",
		Fields: field.Fields{
			"employmentType": {
				Type:  field.TypeSelect,
				Label: "Employment Type",
				Options: []field.Option{
					{Value: "fullTime", Label: "Full Time"},
					{Value: "contract", Label: "Contract"},
				},
			},
			"employerName": {
				Type:  field.TypeText,
				Label: "Employer Name",
				Dependencies: []field.DependencyRule{
					{
						Field:    "employmentType",
						Operator: field.OpEquals,
						Value:    "fullTime",
						Effect:   field.Effect{Hide: &show, SetRequired: &required},
					},
					{
						Field:    "employmentType",
						Operator: field.OpNotEquals,
						Value:    "fullTime",
						Effect:   field.Effect{Hide: &hide, ClearValue: true},
					},
				},
			},
		},
	}
}

func TestNewStoreInvalid(t *testing.T) {
	_, err := NewStore(nil, nil)
	assert.NotNil(t, err)
	assert.Equal(t, "[Form] invalid schema: fields are required", err.Error())

	_, err = NewStore(&schema.DSL{Name: "empty"}, nil)
	assert.NotNil(t, err)

	assert.Panics(t, func() { MustNewStore(nil, nil) })
}

func TestNewStoreAutoSelect(t *testing.T) {
	store, err := NewStore(employmentSchema(), nil, WithValidationDelay(testDelay))
	assert.Nil(t, err)

	// the first option of an empty select becomes the value
	state := store.GetState()
	assert.Equal(t, "fullTime", state.Values["employmentType"])
	assert.True(t, state.Valid)
	assert.False(t, state.Dirty)

	// a provided initial value wins
	store, err = NewStore(employmentSchema(), maps.MapStrAny{"employmentType": "contract"}, WithValidationDelay(testDelay))
	assert.Nil(t, err)
	assert.Equal(t, "contract", store.GetState().Values["employmentType"])
}

func TestStoreDependencyEffects(t *testing.T) {
	dsl := employmentSchema()
	store, err := NewStore(dsl, nil, WithValidationDelay(testDelay))
	assert.Nil(t, err)

	// fullTime was auto-selected, employerName is visible and required
	resolved := store.ResolvedSchema()
	assert.False(t, resolved.Fields["employerName"].Hidden)
	assert.True(t, *resolved.Fields["employerName"].Validation.Required)

	assert.Nil(t, store.SetFieldValue("employmentType", "contract"))
	resolved = store.ResolvedSchema()
	assert.True(t, resolved.Fields["employerName"].Hidden)
	assert.Nil(t, store.GetState().Values["employerName"])

	// the caller's schema is never touched
	assert.False(t, dsl.Fields["employerName"].Hidden)
	assert.Nil(t, dsl.Fields["employerName"].Validation)
}

func TestStoreSetFieldValueUnknown(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))
	err := store.SetFieldValue("nope", "x")
	assert.NotNil(t, err)
	assert.Equal(t, "[Form] SetFieldValue field nope does not exist in schema", err.Error())
}

func TestStoreBuiltinValidation(t *testing.T) {
	required := true
	min := 18.0
	dsl := &schema.DSL{
		Name: "person",
		Fields: field.Fields{
			"email": {Type: field.TypeText, Label: "Email", Validation: &field.ValidationDSL{
				Required: &required,
				Pattern:  `^[^@]+@[^@]+$`,
			}},
			"age": {Type: field.TypeNumber, Label: "Age", Validation: &field.ValidationDSL{Min: &min}},
		},
	}
	store := MustNewStore(dsl, nil, WithValidationDelay(testDelay))

	assert.Nil(t, store.SetFieldValue("email", ""))
	assert.Equal(t, "Email is required", store.GetState().Errors["email"])
	assert.False(t, store.GetState().Valid)

	assert.Nil(t, store.SetFieldValue("email", "nope"))
	assert.Equal(t, "Email format is invalid", store.GetState().Errors["email"])

	assert.Nil(t, store.SetFieldValue("email", "me@example.com"))
	assert.Empty(t, store.GetState().Errors["email"])
	assert.True(t, store.GetState().Valid)

	assert.Nil(t, store.SetFieldValue("age", float64(12)))
	assert.Equal(t, "Age must be at least 18", store.GetState().Errors["age"])
}

func TestStoreCustomValidator(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))

	err := store.SetFieldValidator("employerName", func(value interface{}, values maps.MapStrAny) (string, error) {
		if value == "ACME" {
			return "ACME is not allowed", nil
		}
		return "", nil
	})
	assert.Nil(t, err)

	assert.Nil(t, store.SetFieldValue("employerName", "ACME"))
	assert.Equal(t, "ACME is not allowed", store.GetState().Errors["employerName"])

	assert.Nil(t, store.SetFieldValue("employerName", "Initech"))
	assert.Empty(t, store.GetState().Errors["employerName"])

	err = store.SetFieldValidator("nope", nil)
	assert.NotNil(t, err)
}

func TestStoreCustomExpression(t *testing.T) {
	dsl := &schema.DSL{
		Name: "signup",
		Fields: field.Fields{
			"code": {Type: field.TypeText, Label: "Code", Validation: &field.ValidationDSL{
				Custom: `value == "" || len(value) == 4 ? "" : "Code must be 4 characters"`,
			}},
		},
	}
	store := MustNewStore(dsl, nil, WithValidationDelay(testDelay))

	assert.Nil(t, store.SetFieldValue("code", "12"))
	assert.Equal(t, "Code must be 4 characters", store.GetState().Errors["code"])

	assert.Nil(t, store.SetFieldValue("code", "1234"))
	assert.Empty(t, store.GetState().Errors["code"])
}

func TestStoreValidatorFailure(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))
	assert.Nil(t, store.SetFieldValidator("employerName", func(value interface{}, values maps.MapStrAny) (string, error) {
		return "", fmt.Errorf("lookup service down")
	}))
	assert.Equal(t, "lookup service down", store.GetState().Errors["employerName"])
}

func TestStoreDebounce(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(40*time.Millisecond))

	var runs int64
	assert.Nil(t, store.SetFieldValidator("employerName", func(value interface{}, values maps.MapStrAny) (string, error) {
		atomic.AddInt64(&runs, 1)
		return "", nil
	}))
	atomic.StoreInt64(&runs, 0)

	// the first two calls are superseded before their timers fire
	go store.SetFieldValue("employerName", "v1")
	time.Sleep(10 * time.Millisecond)
	go store.SetFieldValue("employerName", "v2")
	time.Sleep(10 * time.Millisecond)
	assert.Nil(t, store.SetFieldValue("employerName", "v3"))

	assert.Equal(t, int64(1), atomic.LoadInt64(&runs))
	assert.Equal(t, "v3", store.GetState().Values["employerName"])
}

func TestStoreConcurrentValidating(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))

	var armed int64
	started := make(chan struct{})
	gate := make(chan struct{})

	assert.Nil(t, store.SetFieldValidator("employmentType", func(value interface{}, values maps.MapStrAny) (string, error) {
		if atomic.LoadInt64(&armed) == 1 {
			started <- struct{}{}
			<-gate
		}
		return "", nil
	}))
	assert.Nil(t, store.SetFieldValidator("employerName", func(value interface{}, values maps.MapStrAny) (string, error) {
		return "", nil
	}))
	atomic.StoreInt64(&armed, 1)

	finished := make(chan struct{})
	go func() {
		store.SetFieldValue("employmentType", "contract")
		close(finished)
	}()
	<-started

	// a second field settles while the first is still running, the flag
	// only drops once both are done
	assert.Nil(t, store.SetFieldValue("employerName", "Initech"))
	assert.True(t, store.GetState().Validating)

	close(gate)
	<-finished
	assert.False(t, store.GetState().Validating)
}

func TestStoreSetValues(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))
	store.SetValues(maps.MapStrAny{
		"employerName":   "Initech",
		"employmentType": nil, // nil entries are skipped
	})

	state := store.GetState()
	assert.Equal(t, "Initech", state.Values["employerName"])
	assert.Equal(t, "fullTime", state.Values["employmentType"])
	assert.True(t, state.Dirty)
}

func TestStoreReset(t *testing.T) {
	dsl := employmentSchema()
	dsl.Fields["employerName"].Default = "n/a"
	store := MustNewStore(dsl, nil, WithValidationDelay(testDelay))

	assert.Nil(t, store.SetFieldValue("employerName", "Initech"))
	store.Reset(nil)

	state := store.GetState()
	assert.Equal(t, "n/a", state.Values["employerName"])
	assert.False(t, state.Dirty)
	assert.Empty(t, state.Touched)
	assert.Empty(t, state.Errors)
	assert.True(t, state.Valid)

	store.Reset(maps.MapStrAny{"employerName": "Globex"})
	assert.Equal(t, "Globex", store.GetState().Values["employerName"])
}

func TestStoreSubscribe(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))

	var count int64
	unsubscribe := store.Subscribe(func(state State) {
		atomic.AddInt64(&count, 1)
	})

	// replayed once on subscribe
	assert.Equal(t, int64(1), atomic.LoadInt64(&count))

	store.SetSubmitting(true)
	assert.Equal(t, int64(2), atomic.LoadInt64(&count))
	assert.True(t, store.GetState().Submitting)

	unsubscribe()
	store.SetSubmitting(false)
	assert.Equal(t, int64(2), atomic.LoadInt64(&count))
}

func TestStoreSubscribeToField(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))

	var last interface{}
	unsubscribe := store.SubscribeToField("employerName", func(value interface{}, err string) {
		last = value
	})

	assert.Nil(t, store.SetFieldValue("employerName", "Initech"))
	assert.Equal(t, "Initech", last)

	unsubscribe()
	assert.Nil(t, store.SetFieldValue("employerName", "Globex"))
	assert.Equal(t, "Initech", last)
}

func TestStoreFormValidator(t *testing.T) {
	store := MustNewStore(employmentSchema(), nil, WithValidationDelay(testDelay))
	store.SetFormValidator(func(values maps.MapStrAny) (map[string]string, error) {
		errors := map[string]string{}
		if values["employerName"] == nil || values["employerName"] == "" {
			errors["employerName"] = "Employer name is required"
		}
		return errors, nil
	})

	assert.False(t, store.Validate())
	assert.Equal(t, "Employer name is required", store.GetState().Errors["employerName"])

	store.SetValues(maps.MapStrAny{"employerName": "Initech"})
	assert.True(t, store.Validate())
}

func TestStoreReferences(t *testing.T) {
	dsl := &schema.DSL{
		Name: "task",
		Fields: field.Fields{
			"assignee": {
				Type:      field.TypeSelect,
				Label:     "Assignee",
				Reference: &field.ReferenceDSL{Model: "users", DisplayField: "fullName"},
			},
			"project": {
				Type:      field.TypeSelect,
				Label:     "Project",
				Reference: &field.ReferenceDSL{Model: "projects"},
			},
		},
	}

	loader := func(model string) ([]maps.MapStrAny, error) {
		switch model {
		case "users":
			return []maps.MapStrAny{
				{"id": 1, "fullName": "Alice Johnson"},
				{"_id": 2, "name": "Bob Smith"},
			}, nil
		}
		return nil, fmt.Errorf("unknown model %s", model)
	}

	store := MustNewStore(dsl, nil, WithValidationDelay(testDelay), WithReferenceLoader(loader))
	store.WaitReferences()

	options := store.ReferenceData("assignee")
	assert.Len(t, options, 2)
	assert.Equal(t, 1, options[0].Value)
	assert.Equal(t, "Alice Johnson", options[0].Label)
	assert.Equal(t, 2, options[1].Value)
	assert.Equal(t, "Bob Smith", options[1].Label)

	// a failing load leaves the field without data and not loading
	assert.Nil(t, store.ReferenceData("project"))
	assert.False(t, store.IsReferenceLoading("project"))
}
