package binder

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ParseFunc converts a raw string into a value of the type it was resolved for.
// The boolean result reports whether parsing succeeded.
type ParseFunc func(raw string) (any, bool)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	timeType            = reflect.TypeFor[time.Time]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// DefaultRegistry is used by Query when no registry is given explicitly.
var DefaultRegistry = NewRegistry()

// Registry resolves and caches a ParseFunc per scalar type.
// The cache holds at most one entry per type; failed lookups are not cached.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	cache map[reflect.Type]ParseFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[reflect.Type]ParseFunc),
	}
}

// Lookup returns the parse function for t, resolving it on first use.
// It reports false when t cannot be parsed from a string; no error is raised,
// the caller decides how to treat such a parameter.
func (r *Registry) Lookup(t reflect.Type) (ParseFunc, bool) {
	if t == nil {
		return nil, false
	}

	r.mu.RLock()
	fn, ok := r.cache[t]
	r.mu.RUnlock()
	if ok {
		return fn, true
	}

	fn, ok = resolveParseFunc(t)
	if !ok {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have resolved the same type meanwhile.
	if existing, ok := r.cache[t]; ok {
		return existing, true
	}
	r.cache[t] = fn
	return fn, true
}

// Register installs a custom parse function for t, replacing any cached entry.
func (r *Registry) Register(t reflect.Type, fn ParseFunc) {
	if t == nil || fn == nil {
		return
	}
	r.mu.Lock()
	r.cache[t] = fn
	r.mu.Unlock()
}

// Len returns the number of cached types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// RegisterFunc installs a typed parse function for T into the registry.
// A nil registry means DefaultRegistry.
func RegisterFunc[T any](r *Registry, fn func(raw string) (T, error)) {
	if r == nil {
		r = DefaultRegistry
	}
	if fn == nil {
		return
	}
	r.Register(reflect.TypeFor[T](), func(raw string) (any, bool) {
		v, err := fn(raw)
		if err != nil {
			return nil, false
		}
		return v, true
	})
}

// Lookup resolves t in DefaultRegistry.
func Lookup(t reflect.Type) (ParseFunc, bool) {
	return DefaultRegistry.Lookup(t)
}

// Register installs fn for t in DefaultRegistry.
func Register(t reflect.Type, fn ParseFunc) {
	DefaultRegistry.Register(t, fn)
}

// resolveParseFunc builds a parse function for t or reports that t is not
// parsable from a string.
func resolveParseFunc(t reflect.Type) (ParseFunc, bool) {
	switch t {
	case durationType:
		return func(raw string) (any, bool) {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, false
			}
			return d, true
		}, true
	case timeType:
		return func(raw string) (any, bool) {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, false
			}
			return ts, true
		}, true
	}

	// Types with an UnmarshalText method (uuid.UUID, netip.Addr, ...) are parsable.
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return func(raw string) (any, bool) {
			v := reflect.New(t)
			if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
				return nil, false
			}
			return v.Elem().Interface(), true
		}, true
	}

	switch t.Kind() {
	case reflect.Bool:
		return func(raw string) (any, bool) {
			b, ok := parseBool(raw)
			if !ok {
				return nil, false
			}
			return reflect.ValueOf(b).Convert(t).Interface(), true
		}, true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(raw string) (any, bool) {
			n, err := strconv.ParseInt(raw, 10, t.Bits())
			if err != nil {
				return nil, false
			}
			return reflect.ValueOf(n).Convert(t).Interface(), true
		}, true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(raw string) (any, bool) {
			n, err := strconv.ParseUint(raw, 10, t.Bits())
			if err != nil {
				return nil, false
			}
			return reflect.ValueOf(n).Convert(t).Interface(), true
		}, true

	case reflect.Float32, reflect.Float64:
		return func(raw string) (any, bool) {
			n, err := strconv.ParseFloat(raw, t.Bits())
			if err != nil {
				return nil, false
			}
			return reflect.ValueOf(n).Convert(t).Interface(), true
		}, true

	case reflect.String:
		// Named string types; plain string is bound raw and never reaches the registry.
		return func(raw string) (any, bool) {
			return reflect.ValueOf(raw).Convert(t).Interface(), true
		}, true
	}

	return nil, false
}

// parseBool accepts strconv.ParseBool input plus common form representations.
func parseBool(raw string) (bool, bool) {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b, true
	}
	switch strings.ToLower(raw) {
	case "on", "yes":
		return true, true
	case "off", "no":
		return false, true
	}
	return false, false
}
