package binder

import (
	"slices"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// Handler is a compiled dispatcher: the parameter descriptors of an endpoint
// function and the request closure that binds them and invokes the function.
// Binding strategies are resolved once when the Handler is built.
type Handler struct {
	params []Parameter
	fn     handler.HandlerFunc
	err    error
}

// Params returns the parameter descriptors in declaration order.
func (h Handler) Params() []Parameter {
	return slices.Clone(h.params)
}

// Err returns the registration error, if any.
func (h Handler) Err() error {
	return h.err
}

// Compile returns the request closure, or the error that makes this handler unusable.
func (h Handler) Compile() (handler.HandlerFunc, error) {
	if h.err != nil {
		return nil, h.err
	}
	if h.fn == nil {
		return nil, ErrNilHandler
	}
	return h.fn, nil
}

// Raw wraps an already request-shaped handler. It declares no parameters.
func Raw(fn handler.HandlerFunc) Handler {
	if fn == nil {
		return Handler{err: ErrNilHandler}
	}
	return Handler{fn: fn}
}

// Func0 compiles a handler without parameters.
func Func0(fn func() handler.Result) Handler {
	h := newHandler(fn == nil)
	if h.err != nil {
		return h
	}
	h.fn = func(ctx *handler.Context) error {
		return execute(ctx, fn())
	}
	return h
}

// Func1 compiles a handler with one bound parameter.
func Func1[A any](a Param[A], fn func(A) handler.Result) Handler {
	h := newHandler(fn == nil, a.Parameter)
	if h.err != nil {
		return h
	}
	h.fn = func(ctx *handler.Context) error {
		av, err := a.bind(ctx)
		if err != nil {
			return err
		}
		return execute(ctx, fn(av))
	}
	return h
}

// Func2 compiles a handler with two bound parameters.
func Func2[A, B any](a Param[A], b Param[B], fn func(A, B) handler.Result) Handler {
	h := newHandler(fn == nil, a.Parameter, b.Parameter)
	if h.err != nil {
		return h
	}
	h.fn = func(ctx *handler.Context) error {
		av, err := a.bind(ctx)
		if err != nil {
			return err
		}
		bv, err := b.bind(ctx)
		if err != nil {
			return err
		}
		return execute(ctx, fn(av, bv))
	}
	return h
}

// Func3 compiles a handler with three bound parameters.
func Func3[A, B, C any](a Param[A], b Param[B], c Param[C], fn func(A, B, C) handler.Result) Handler {
	h := newHandler(fn == nil, a.Parameter, b.Parameter, c.Parameter)
	if h.err != nil {
		return h
	}
	h.fn = func(ctx *handler.Context) error {
		av, err := a.bind(ctx)
		if err != nil {
			return err
		}
		bv, err := b.bind(ctx)
		if err != nil {
			return err
		}
		cv, err := c.bind(ctx)
		if err != nil {
			return err
		}
		return execute(ctx, fn(av, bv, cv))
	}
	return h
}

// Func4 compiles a handler with four bound parameters.
func Func4[A, B, C, D any](a Param[A], b Param[B], c Param[C], d Param[D], fn func(A, B, C, D) handler.Result) Handler {
	h := newHandler(fn == nil, a.Parameter, b.Parameter, c.Parameter, d.Parameter)
	if h.err != nil {
		return h
	}
	h.fn = func(ctx *handler.Context) error {
		av, err := a.bind(ctx)
		if err != nil {
			return err
		}
		bv, err := b.bind(ctx)
		if err != nil {
			return err
		}
		cv, err := c.bind(ctx)
		if err != nil {
			return err
		}
		dv, err := d.bind(ctx)
		if err != nil {
			return err
		}
		return execute(ctx, fn(av, bv, cv, dv))
	}
	return h
}

func newHandler(nilFn bool, params ...Parameter) Handler {
	h := Handler{params: params}
	if nilFn {
		h.err = ErrNilHandler
		return h
	}
	for _, p := range params {
		if err := p.validate(); err != nil {
			h.err = err
			return h
		}
	}
	return h
}

// execute runs a handler's result against the request. A nil result is ignored.
func execute(ctx *handler.Context, res handler.Result) error {
	if res == nil {
		return nil
	}
	return res.Execute(ctx)
}
