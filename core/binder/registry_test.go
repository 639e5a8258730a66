package binder_test

import (
	"errors"
	"net/netip"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipeline/core/binder"
)

type level string

func TestRegistryLookupBuiltins(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name     string
		typ      reflect.Type
		raw      string
		expected any
	}{
		{"int", reflect.TypeFor[int](), "2000", 2000},
		{"int8", reflect.TypeFor[int8](), "-12", int8(-12)},
		{"int64", reflect.TypeFor[int64](), "9000000000", int64(9000000000)},
		{"uint16", reflect.TypeFor[uint16](), "65535", uint16(65535)},
		{"float32", reflect.TypeFor[float32](), "1.5", float32(1.5)},
		{"float64", reflect.TypeFor[float64](), "3.25", 3.25},
		{"bool", reflect.TypeFor[bool](), "true", true},
		{"bool_yes", reflect.TypeFor[bool](), "yes", true},
		{"bool_off", reflect.TypeFor[bool](), "off", false},
		{"duration", reflect.TypeFor[time.Duration](), "1m30s", 90 * time.Second},
		{"uuid", reflect.TypeFor[uuid.UUID](), id.String(), id},
		{"netip", reflect.TypeFor[netip.Addr](), "127.0.0.1", netip.MustParseAddr("127.0.0.1")},
		{"named_string", reflect.TypeFor[level](), "debug", level("debug")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := binder.NewRegistry()
			fn, ok := reg.Lookup(tt.typ)
			require.True(t, ok)

			v, ok := fn(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestRegistryLookupTime(t *testing.T) {
	t.Parallel()

	fn, ok := binder.NewRegistry().Lookup(reflect.TypeFor[time.Time]())
	require.True(t, ok)

	v, ok := fn("2000-01-02T03:04:05Z")
	require.True(t, ok)

	ts, ok := v.(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2000, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestRegistryParseFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  reflect.Type
		raw  string
	}{
		{"int_text", reflect.TypeFor[int](), "abc"},
		{"int8_overflow", reflect.TypeFor[int8](), "300"},
		{"uint_negative", reflect.TypeFor[uint](), "-1"},
		{"float_text", reflect.TypeFor[float64](), "x1"},
		{"bool_text", reflect.TypeFor[bool](), "maybe"},
		{"duration_text", reflect.TypeFor[time.Duration](), "soon"},
		{"time_format", reflect.TypeFor[time.Time](), "2000-01-02"},
		{"uuid_text", reflect.TypeFor[uuid.UUID](), "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn, ok := binder.NewRegistry().Lookup(tt.typ)
			require.True(t, ok)

			_, ok = fn(tt.raw)
			assert.False(t, ok)
		})
	}
}

func TestRegistryUnsupportedTypes(t *testing.T) {
	t.Parallel()

	reg := binder.NewRegistry()
	for _, typ := range []reflect.Type{
		reflect.TypeFor[chan int](),
		reflect.TypeFor[[]int](),
		reflect.TypeFor[map[string]string](),
		reflect.TypeFor[struct{ A int }](),
		reflect.TypeFor[*int](),
		reflect.TypeFor[func()](),
		nil,
	} {
		fn, ok := reg.Lookup(typ)
		assert.False(t, ok, "type %v", typ)
		assert.Nil(t, fn)
	}
	assert.Equal(t, 0, reg.Len(), "misses are not cached")
}

func TestRegistryCachesOneEntryPerType(t *testing.T) {
	t.Parallel()

	reg := binder.NewRegistry()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := reg.Lookup(reflect.TypeFor[int]())
			assert.True(t, ok)
			_, ok = reg.Lookup(reflect.TypeFor[bool]())
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, reg.Len())
}

func TestRegistryRegisterCustom(t *testing.T) {
	t.Parallel()

	type csv []string

	reg := binder.NewRegistry()
	_, ok := reg.Lookup(reflect.TypeFor[csv]())
	require.False(t, ok)

	binder.RegisterFunc(reg, func(raw string) (csv, error) {
		if raw == "" {
			return nil, errors.New("empty")
		}
		return csv(strings.Split(raw, ",")), nil
	})

	fn, ok := reg.Lookup(reflect.TypeFor[csv]())
	require.True(t, ok)

	v, ok := fn("a,b")
	require.True(t, ok)
	assert.Equal(t, csv{"a", "b"}, v)

	_, ok = fn("")
	assert.False(t, ok)

	// Overriding a built-in replaces the cached entry instead of adding one.
	_, ok = reg.Lookup(reflect.TypeFor[int]())
	require.True(t, ok)
	before := reg.Len()
	reg.Register(reflect.TypeFor[int](), func(string) (any, bool) { return 42, true })
	assert.Equal(t, before, reg.Len())

	fn, ok = reg.Lookup(reflect.TypeFor[int]())
	require.True(t, ok)
	v, ok = fn("anything")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}
