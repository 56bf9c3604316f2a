package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/stockpile/internal/store"
)

// Entity is the contract every stored entity satisfies: it carries a
// string id and can produce a copy with a different one. Implemented
// on value types so WithEntityID never mutates the caller's copy.
type Entity[E any] interface {
	EntityID() string
	WithEntityID(id string) E
}

// DB wraps a document store with per-collection-key locks. All
// collections over one store share a DB so two repositories on the same
// key serialize their read-modify-write cycles through the same mutex.
//
// Raw store access stays inside this package: callers mutate
// collections only through Collection methods.
type DB struct {
	store *store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDB creates a DB over an open store.
func NewDB(st *store.Store) *DB {
	return &DB{
		store: st,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing mutations of one collection key,
// creating it on first use.
func (d *DB) lockFor(key string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.locks[key]
	if !ok {
		l = &sync.Mutex{}
		d.locks[key] = l
	}
	return l
}

// Collection is a typed repository over one document key. Every
// operation re-reads the collection from the store; nothing is cached
// across calls, so the store stays the single source of truth.
type Collection[E Entity[E]] struct {
	db    *DB
	key   string
	newID func() string
}

// NewCollection creates a repository for the collection stored under key.
func NewCollection[E Entity[E]](db *DB, key string) *Collection[E] {
	return &Collection[E]{
		db:  db,
		key: key,
		// UUIDv7 ids are time-ordered and collision-free, unlike the
		// wall-clock millisecond ids in the data this format descends from.
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
}

// NewCollectionWithIDs creates a repository with a caller-supplied id
// generator. Used by tests that need deterministic ids.
func NewCollectionWithIDs[E Entity[E]](db *DB, key string, newID func() string) *Collection[E] {
	c := NewCollection[E](db, key)
	c.newID = newID
	return c
}

// Key returns the document key this collection is stored under.
func (c *Collection[E]) Key() string { return c.key }

// List returns all entities in stored (insertion) order.
//
// An absent key yields an empty collection. A stored document that does
// not deserialize also yields an empty collection plus a
// BAD_COLLECTION_DATA warning - the app must stay usable even when a
// document is corrupt. Only storage IO failures are errors.
func (c *Collection[E]) List(ctx context.Context) ([]E, []Warning, error) {
	return c.load(ctx)
}

// Insert assigns a fresh id to e, appends it, and writes the whole
// collection back. Returns the stored entity with its id set.
func (c *Collection[E]) Insert(ctx context.Context, e E) (E, error) {
	var zero E

	lock := c.db.lockFor(c.key)
	lock.Lock()
	defer lock.Unlock()

	entities, _, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	stored := e.WithEntityID(c.newID())
	entities = append(entities, stored)

	if err := c.save(ctx, entities); err != nil {
		return zero, err
	}
	return stored, nil
}

// Update replaces the entity whose id matches, leaving every other
// entity untouched. Returns NOT_FOUND if no entity matches.
func (c *Collection[E]) Update(ctx context.Context, id string, e E) (E, error) {
	var zero E

	lock := c.db.lockFor(c.key)
	lock.Lock()
	defer lock.Unlock()

	entities, _, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	replaced := false
	stored := e.WithEntityID(id)
	for i := range entities {
		if entities[i].EntityID() == id {
			entities[i] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		return zero, NewNotFoundError(c.key, id)
	}

	if err := c.save(ctx, entities); err != nil {
		return zero, err
	}
	return stored, nil
}

// Delete removes the entity whose id matches. Returns NOT_FOUND if no
// entity matches; a second delete of the same id is NOT_FOUND with no
// state change.
func (c *Collection[E]) Delete(ctx context.Context, id string) error {
	lock := c.db.lockFor(c.key)
	lock.Lock()
	defer lock.Unlock()

	entities, _, err := c.load(ctx)
	if err != nil {
		return err
	}

	kept := entities[:0]
	removed := false
	for _, e := range entities {
		if e.EntityID() == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return NewNotFoundError(c.key, id)
	}

	return c.save(ctx, kept)
}

// Append adds e to the collection without assigning an id, for entities
// whose ids are created by the caller. Used by the audit log.
func (c *Collection[E]) Append(ctx context.Context, e E) error {
	lock := c.db.lockFor(c.key)
	lock.Lock()
	defer lock.Unlock()

	entities, _, err := c.load(ctx)
	if err != nil {
		return err
	}
	entities = append(entities, e)
	return c.save(ctx, entities)
}

// load reads and deserializes the whole collection.
func (c *Collection[E]) load(ctx context.Context) ([]E, []Warning, error) {
	data, ok, err := c.db.store.Get(ctx, c.key)
	if err != nil {
		return nil, nil, NewStorageError(c.key, err)
	}
	if !ok {
		return []E{}, nil, nil
	}

	var entities []E
	if err := json.Unmarshal(data, &entities); err != nil {
		warning := Warning{
			Code:    WarnCodeBadCollectionData,
			Message: fmt.Sprintf("stored document is not a valid collection: %v", err),
			Key:     c.key,
		}
		return []E{}, []Warning{warning}, nil
	}

	if entities == nil {
		entities = []E{}
	}
	return entities, nil, nil
}

// save serializes and writes the whole collection back.
func (c *Collection[E]) save(ctx context.Context, entities []E) error {
	data, err := json.Marshal(entities)
	if err != nil {
		return NewStorageError(c.key, fmt.Errorf("marshal collection: %w", err))
	}
	if err := c.db.store.Set(ctx, c.key, data); err != nil {
		return NewStorageError(c.key, err)
	}
	return nil
}
