package schema

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/kun/exception"
)

// Registry caches validated and transformed schemas. Construct one per
// process (or per test) and pass it explicitly; there is no package-level
// instance.
type Registry struct {
	mu           sync.RWMutex
	entries      map[string]*Entry
	validators   []Validator
	transformers []Transformer
	caching      bool
}

// Entry a registered schema with its registration metadata
type Entry struct {
	Schema    *DSL
	Timestamp time.Time
	Version   int
}

// Option configures a registry
type Option func(*Registry)

// WithValidators append schema validators
func WithValidators(validators ...Validator) Option {
	return func(registry *Registry) {
		registry.validators = append(registry.validators, validators...)
	}
}

// WithTransformers append schema transformers after the read-only transformer
func WithTransformers(transformers ...Transformer) Option {
	return func(registry *Registry) {
		registry.transformers = append(registry.transformers, transformers...)
	}
}

// WithoutCache re-run the transformer pipeline on every Get
func WithoutCache() Option {
	return func(registry *Registry) {
		registry.caching = false
	}
}

// NewRegistry create a registry. The read-only transformer is always the
// first of the pipeline.
func NewRegistry(options ...Option) *Registry {
	registry := &Registry{
		entries:      map[string]*Entry{},
		validators:   []Validator{},
		transformers: []Transformer{ReadOnlyTransformer},
		caching:      true,
	}
	for _, option := range options {
		option(registry)
	}
	return registry
}

// Register validate, transform and cache a schema
func (registry *Registry) Register(name string, dsl *DSL) error {
	transformed, err := registry.prepare(name, dsl)
	if err != nil {
		return err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.entries[name] = &Entry{Schema: transformed, Timestamp: time.Now(), Version: 1}
	return nil
}

// Update replace a registered schema and bump its version
func (registry *Registry) Update(name string, dsl *DSL) error {
	registry.mu.RLock()
	entry, has := registry.entries[name]
	registry.mu.RUnlock()
	if !has {
		return fmt.Errorf("[Schema] Update %s does not exist", name)
	}

	transformed, err := registry.prepare(name, dsl)
	if err != nil {
		return err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.entries[name] = &Entry{Schema: transformed, Timestamp: time.Now(), Version: entry.Version + 1}
	return nil
}

// Get a registered schema. With caching disabled the transformer pipeline
// runs again on the cached schema.
func (registry *Registry) Get(name string) (*DSL, error) {
	registry.mu.RLock()
	entry, has := registry.entries[name]
	caching := registry.caching
	registry.mu.RUnlock()
	if !has {
		return nil, fmt.Errorf("[Schema] %s does not exist", name)
	}

	if caching {
		return entry.Schema, nil
	}
	return registry.transform(entry.Schema), nil
}

// MustGet get a registered schema, throw on missing
func (registry *Registry) MustGet(name string) *DSL {
	dsl, err := registry.Get(name)
	if err != nil {
		exception.New(err.Error(), 400).Throw()
	}
	return dsl
}

// Has check if a schema is registered
func (registry *Registry) Has(name string) bool {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	_, has := registry.entries[name]
	return has
}

// Remove delete a registered schema
func (registry *Registry) Remove(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	_, has := registry.entries[name]
	delete(registry.entries, name)
	return has
}

// Metadata the registration timestamp and version of a schema
func (registry *Registry) Metadata(name string) (Entry, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	entry, has := registry.entries[name]
	if !has {
		return Entry{}, false
	}
	return Entry{Timestamp: entry.Timestamp, Version: entry.Version}, true
}

// AddValidator append a validator
func (registry *Registry) AddValidator(validator Validator) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.validators = append(registry.validators, validator)
}

// AddTransformer append a transformer
func (registry *Registry) AddTransformer(transformer Transformer) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.transformers = append(registry.transformers, transformer)
}

// Clear drop all registered schemas
func (registry *Registry) Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.entries = map[string]*Entry{}
}

func (registry *Registry) prepare(name string, dsl *DSL) (*DSL, error) {
	if dsl == nil {
		return nil, fmt.Errorf("[Schema] Register %s schema is nil", name)
	}

	registry.mu.RLock()
	validators := append([]Validator{}, registry.validators...)
	registry.mu.RUnlock()

	var errs error
	for _, validator := range validators {
		for _, err := range validator(dsl) {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("[Schema] Register %s invalid schema: %s", name, errs.Error())
	}

	return registry.transform(dsl), nil
}

func (registry *Registry) transform(dsl *DSL) *DSL {
	registry.mu.RLock()
	transformers := append([]Transformer{}, registry.transformers...)
	registry.mu.RUnlock()

	new := dsl.Clone()
	for _, transformer := range transformers {
		new = transformer(new)
	}
	return new
}
