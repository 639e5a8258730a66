package binder

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// Kind is the binding strategy chosen for a handler parameter.
type Kind uint8

const (
	// KindUnsupported marks a parameter whose type cannot be bound.
	KindUnsupported Kind = iota
	// KindString binds the raw query value.
	KindString
	// KindContext binds the whole request context.
	KindContext
	// KindParsable binds a query value converted by a registry ParseFunc.
	KindParsable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindContext:
		return "context"
	case KindParsable:
		return "parsable"
	default:
		return "unsupported"
	}
}

var (
	stringType  = reflect.TypeFor[string]()
	contextType = reflect.TypeFor[*handler.Context]()
)

// Parameter describes how one handler argument is bound.
// It is derived once at registration time and never modified afterwards.
type Parameter struct {
	Name  string
	Kind  Kind
	Type  reflect.Type
	parse ParseFunc
}

func (p Parameter) validate() error {
	switch p.Kind {
	case KindUnsupported:
		return fmt.Errorf("%w: parameter %q of type %s", ErrUnsupportedParameter, p.Name, p.Type)
	case KindString, KindParsable:
		if p.Name == "" {
			return fmt.Errorf("%w: %s parameter", ErrEmptyParameterName, p.Type)
		}
	}
	return nil
}

// Param is a typed parameter declaration used to build a Handler.
type Param[T any] struct {
	Parameter
}

// Query declares a parameter bound from the named query string value.
// The binding kind is classified from T using DefaultRegistry:
// string is bound raw, *handler.Context is bound to the whole request,
// any other type must be parsable from a string.
func Query[T any](name string) Param[T] {
	return QueryWith[T](DefaultRegistry, name)
}

// QueryWith is like Query but resolves parse functions in the given registry.
func QueryWith[T any](reg *Registry, name string) Param[T] {
	if reg == nil {
		reg = DefaultRegistry
	}

	t := reflect.TypeFor[T]()
	p := Parameter{Name: name, Type: t}

	switch {
	case t == stringType:
		p.Kind = KindString
	case t == contextType:
		p.Kind = KindContext
	default:
		if fn, ok := reg.Lookup(t); ok {
			p.Kind = KindParsable
			p.parse = fn
		}
	}

	return Param[T]{Parameter: p}
}

// Context declares a parameter bound to the request context itself.
func Context() Param[*handler.Context] {
	return Param[*handler.Context]{Parameter: Parameter{Name: "ctx", Kind: KindContext, Type: contextType}}
}

// bind extracts the argument for this parameter from the request.
// Missing or empty values bind to the zero value of T.
func (p Param[T]) bind(ctx *handler.Context) (T, error) {
	var zero T

	switch p.Kind {
	case KindString:
		v, _ := any(sanitizeStringValue(ctx.Query(p.Name))).(T)
		return v, nil

	case KindContext:
		v, _ := any(ctx).(T)
		return v, nil

	case KindParsable:
		raw, ok := ctx.LookupQuery(p.Name)
		if !ok || raw == "" {
			return zero, nil
		}
		parsed, ok := p.parse(raw)
		if !ok {
			return zero, &BindError{Param: p.Name, Value: raw, Type: p.Type}
		}
		v, ok := parsed.(T)
		if !ok {
			return zero, &BindError{Param: p.Name, Value: raw, Type: p.Type}
		}
		return v, nil
	}

	return zero, fmt.Errorf("%w: parameter %q of type %s", ErrUnsupportedParameter, p.Name, p.Type)
}

// sanitizeStringValue removes dangerous characters that could be used in injection attacks.
// It prevents CRLF injection, null byte attacks, and filters invalid Unicode sequences.
func sanitizeStringValue(value string) string {
	value = strings.ReplaceAll(value, "\x00", "")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\n", "")

	var builder strings.Builder
	builder.Grow(len(value))

	for _, r := range value {
		if r == utf8.RuneError {
			continue
		}
		if r == '\t' || unicode.IsPrint(r) || unicode.IsGraphic(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}
