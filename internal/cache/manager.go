package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/logging"
	"campus-hub/agora/internal/metrics"

	"go.uber.org/zap"
)

// Patch carries the fields of a partial update. Fields absent from the map
// are left untouched by the store.
type Patch map[string]interface{}

// Store is the backing CRUD interface the manager reads through to.
// GetByID and Update return (nil, nil) when no such entity exists.
type Store[E any] interface {
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int64) (*E, error)
	Create(ctx context.Context, entity *E) (*E, error)
	Update(ctx context.Context, id int64, patch Patch) (*E, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// KeyedStore is a Store whose entities also carry a unique natural key
// (e.g. a login).
type KeyedStore[E any] interface {
	Store[E]
	GetByKey(ctx context.Context, key string) (*E, error)
}

// Config describes how one entity type maps onto the cache key namespace.
type Config[E any] struct {
	// Singular and Plural name the key namespaces: "{plural}:all",
	// "{singular}:{id}", "{singular}:{keyName}:{key}".
	Singular string
	Plural   string

	// IDOf extracts the store-assigned id, used to build item keys after
	// writes.
	IDOf func(*E) int64

	// KeyName and KeyOf configure the optional natural-key namespace.
	KeyName string
	KeyOf   func(*E) string

	// IndexKeysOf lists additional index keys an entity contributes to
	// (e.g. "messages:user:{login}" for both endpoints of a message).
	// They are invalidated on create and delete; on update only the keys
	// whose membership changed are invalidated, computed by diffing the
	// pre- and post-mutation sets.
	IndexKeysOf func(*E) []string

	// TTL overrides; constants.ListTTL / constants.ItemTTL when zero.
	ListTTL time.Duration
	ItemTTL time.Duration
}

// Manager provides read-through and write-through caching for one entity
// type. Callers never learn whether data came from the cache or the store,
// and cache-store failures silently degrade to store reads.
type Manager[E any] struct {
	store Store[E]
	keyed KeyedStore[E]
	cache common.Cache
	cfg   Config[E]
	reg   *metrics.Registry
	log   *zap.SugaredLogger
}

// New builds a Manager. The natural-key operations are enabled when the
// store implements KeyedStore and cfg.KeyOf is set.
func New[E any](store Store[E], cacheStore common.Cache, cfg Config[E]) *Manager[E] {
	if cfg.ListTTL == 0 {
		cfg.ListTTL = constants.ListTTL
	}
	if cfg.ItemTTL == 0 {
		cfg.ItemTTL = constants.ItemTTL
	}

	m := &Manager[E]{
		store: store,
		cache: cacheStore,
		cfg:   cfg,
		log:   logging.GetLogger().With("entity", cfg.Singular),
	}
	if ks, ok := store.(KeyedStore[E]); ok && cfg.KeyOf != nil {
		m.keyed = ks
	}
	return m
}

// WithMetrics attaches a metrics registry to the manager
func (m *Manager[E]) WithMetrics(reg *metrics.Registry) *Manager[E] {
	m.reg = reg
	return m
}

func (m *Manager[E]) listKey() string {
	return m.cfg.Plural + ":all"
}

func (m *Manager[E]) itemKey(id int64) string {
	return fmt.Sprintf("%s:%d", m.cfg.Singular, id)
}

func (m *Manager[E]) naturalKey(key string) string {
	return m.cfg.Singular + ":" + m.cfg.KeyName + ":" + key
}

// GetAll returns every entity, serving the cached list when present and
// repopulating it from the store otherwise.
func (m *Manager[E]) GetAll(ctx context.Context) ([]E, error) {
	if data, ok := m.cache.Get(ctx, m.listKey()); ok {
		var items []E
		if err := json.Unmarshal(data, &items); err == nil {
			m.reg.RecordCacheHit(m.cfg.Singular)
			return items, nil
		}
		m.log.Warnw("discarding undecodable cached list", "key", m.listKey())
	}
	m.reg.RecordCacheMiss(m.cfg.Singular)

	items, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	m.cache.Set(ctx, m.listKey(), items, m.cfg.ListTTL)
	return items, nil
}

// GetByID returns one entity or (nil, nil) when it does not exist. Misses
// are not cached: repeated lookups of an absent id keep hitting the store.
func (m *Manager[E]) GetByID(ctx context.Context, id int64) (*E, error) {
	if e := m.readCached(ctx, m.itemKey(id)); e != nil {
		m.reg.RecordCacheHit(m.cfg.Singular)
		return e, nil
	}
	m.reg.RecordCacheMiss(m.cfg.Singular)

	e, err := m.store.GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}

	m.cache.Set(ctx, m.itemKey(id), e, m.cfg.ItemTTL)
	return e, nil
}

// GetByKey returns one entity by natural key, populating both the by-key and
// the by-id cache entries on a store hit so the two namespaces stay
// consistent.
func (m *Manager[E]) GetByKey(ctx context.Context, key string) (*E, error) {
	if m.keyed == nil {
		return nil, fmt.Errorf("%s: no natural key configured", m.cfg.Singular)
	}

	if e := m.readCached(ctx, m.naturalKey(key)); e != nil {
		m.reg.RecordCacheHit(m.cfg.Singular)
		return e, nil
	}
	m.reg.RecordCacheMiss(m.cfg.Singular)

	e, err := m.keyed.GetByKey(ctx, key)
	if err != nil || e == nil {
		return nil, err
	}

	m.writeItem(ctx, e)
	return e, nil
}

// Create inserts the entity, invalidates the list key, and writes the fresh
// item entries. Store-level constraint violations propagate unchanged.
func (m *Manager[E]) Create(ctx context.Context, entity *E) (*E, error) {
	created, err := m.store.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	stale := []string{m.listKey()}
	if m.cfg.IndexKeysOf != nil {
		stale = append(stale, m.cfg.IndexKeysOf(created)...)
	}
	m.cache.Delete(ctx, stale...)
	m.writeItem(ctx, created)
	return created, nil
}

// Update applies a partial update. On success the list key, the stale item
// key, the pre-update natural key (when it changed) and the changed index
// keys are invalidated before the fresh entries are written, in that order.
// Returns (nil, nil) when the entity does not exist; no cache state is
// touched in that case.
func (m *Manager[E]) Update(ctx context.Context, id int64, patch Patch) (*E, error) {
	var before *E
	if m.keyed != nil || m.cfg.IndexKeysOf != nil {
		b, err := m.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		before = b
	}

	after, err := m.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, nil
	}

	stale := []string{m.listKey(), m.itemKey(id)}
	if m.keyed != nil && before != nil {
		if old := m.cfg.KeyOf(before); old != m.cfg.KeyOf(after) {
			stale = append(stale, m.naturalKey(old))
		}
	}
	if m.cfg.IndexKeysOf != nil {
		var beforeKeys []string
		if before != nil {
			beforeKeys = m.cfg.IndexKeysOf(before)
		}
		stale = append(stale, diffKeys(beforeKeys, m.cfg.IndexKeysOf(after))...)
	}

	m.cache.Delete(ctx, stale...)
	m.writeItem(ctx, after)
	return after, nil
}

// Delete removes the entity and every cache key derived from it. The entity
// is fetched first so its natural and index keys are known.
func (m *Manager[E]) Delete(ctx context.Context, id int64) (bool, error) {
	before, err := m.store.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	deleted, err := m.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	stale := []string{m.listKey(), m.itemKey(id)}
	if before != nil {
		if m.keyed != nil {
			stale = append(stale, m.naturalKey(m.cfg.KeyOf(before)))
		}
		if m.cfg.IndexKeysOf != nil {
			stale = append(stale, m.cfg.IndexKeysOf(before)...)
		}
	}
	m.cache.Delete(ctx, stale...)
	return true, nil
}

// readCached returns the decoded entity under key, or nil on miss
func (m *Manager[E]) readCached(ctx context.Context, key string) *E {
	data, ok := m.cache.Get(ctx, key)
	if !ok {
		return nil
	}

	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		m.log.Warnw("discarding undecodable cached item", "key", key)
		return nil
	}
	return &e
}

// writeItem refreshes the by-id entry and, when configured, the by-key entry
// for the same object
func (m *Manager[E]) writeItem(ctx context.Context, e *E) {
	m.cache.Set(ctx, m.itemKey(m.cfg.IDOf(e)), e, m.cfg.ItemTTL)
	if m.keyed != nil {
		m.cache.Set(ctx, m.naturalKey(m.cfg.KeyOf(e)), e, m.cfg.ItemTTL)
	}
}

// diffKeys returns the symmetric difference of two key sets: the keys whose
// membership changed across a mutation.
func diffKeys(before, after []string) []string {
	beforeSet := make(map[string]bool, len(before))
	for _, k := range before {
		beforeSet[k] = true
	}
	afterSet := make(map[string]bool, len(after))
	for _, k := range after {
		afterSet[k] = true
	}

	var out []string
	for _, k := range before {
		if !afterSet[k] {
			out = append(out, k)
		}
	}
	for _, k := range after {
		if !beforeSet[k] {
			out = append(out, k)
		}
	}
	return out
}
