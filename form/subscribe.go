package form

// Subscribe register a form subscriber. The subscriber is replayed the
// current state at once and on every transition after, until the returned
// unsubscribe function runs. Notification happens outside the store lock, so
// a subscriber may call back into the store.
func (store *Store) Subscribe(subscriber Subscriber) func() {
	store.mu.Lock()
	store.nextID++
	id := store.nextID
	store.subscribers[id] = subscriber
	state := store.state.clone()
	store.mu.Unlock()

	subscriber(state)
	return func() {
		store.mu.Lock()
		delete(store.subscribers, id)
		store.mu.Unlock()
	}
}

// SubscribeToField register a subscriber for one field's value and error
func (store *Store) SubscribeToField(name string, subscriber FieldSubscriber) func() {
	store.mu.Lock()
	store.nextID++
	id := store.nextID
	if _, has := store.fieldSubscribers[name]; !has {
		store.fieldSubscribers[name] = map[int]FieldSubscriber{}
	}
	store.fieldSubscribers[name][id] = subscriber
	value := store.state.Values[name]
	err := store.state.Errors[name]
	store.mu.Unlock()

	subscriber(value, err)
	return func() {
		store.mu.Lock()
		if subscribers, has := store.fieldSubscribers[name]; has {
			delete(subscribers, id)
		}
		store.mu.Unlock()
	}
}

func (store *Store) notify() {
	store.mu.Lock()
	subscribers := make([]Subscriber, 0, len(store.subscribers))
	for _, subscriber := range store.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	state := store.state.clone()
	store.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(state)
	}
}

func (store *Store) notifyField(name string) {
	store.mu.Lock()
	subscribers := make([]FieldSubscriber, 0)
	for _, subscriber := range store.fieldSubscribers[name] {
		subscribers = append(subscribers, subscriber)
	}
	value := store.state.Values[name]
	err := store.state.Errors[name]
	store.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(value, err)
	}
}
