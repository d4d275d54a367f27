package form

import (
	"github.com/spf13/cast"
	"github.com/uischema/uischema/field"
	"github.com/yaoapp/kun/log"
)

// loadReferences fetch the reference data of every reference-backed field.
// Loads run concurrently; a failing load is logged and leaves the field's
// reference data unset, it never breaks the store.
func (store *Store) loadReferences() {
	for name, def := range store.schema.Fields {
		if def.Reference == nil {
			continue
		}
		store.refWait.Add(1)
		go store.loadReference(name, def.Reference)
	}
}

func (store *Store) loadReference(name string, reference *field.ReferenceDSL) {
	defer store.refWait.Done()

	store.mu.Lock()
	store.referenceLoading[name] = true
	store.mu.Unlock()
	store.notify()

	items, err := store.loader(reference.Model)
	if err != nil {
		log.Error("[Form] load reference %s %s", name, err.Error())
	} else {
		options := make([]field.Option, 0, len(items))
		for _, item := range items {
			value, has := item["id"]
			if !has {
				value = item["_id"]
			}
			label := cast.ToString(item[reference.DisplayField])
			if label == "" {
				label = cast.ToString(item["name"])
			}
			options = append(options, field.Option{Value: value, Label: label})
		}
		store.mu.Lock()
		store.referenceData[name] = options
		store.mu.Unlock()
	}

	store.mu.Lock()
	store.referenceLoading[name] = false
	store.mu.Unlock()
	store.notify()
}

// ReferenceData the loaded options of a reference-backed field
func (store *Store) ReferenceData(name string) []field.Option {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.referenceData[name]
}

// IsReferenceLoading check if a field's reference data is still loading
func (store *Store) IsReferenceLoading(name string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.referenceLoading[name]
}

// WaitReferences block until all reference loads settle
func (store *Store) WaitReferences() {
	store.refWait.Wait()
}
