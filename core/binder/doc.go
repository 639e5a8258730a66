// Package binder turns endpoint functions into request handlers that read their
// arguments from the query string.
//
// # Declaring Parameters
//
// Go keeps no parameter names at run time, so each argument is declared next to
// the function with its query name and type. Binding strategies are classified
// once, when the handler is built:
//
//	hello := binder.Func1(binder.Query[string]("name"), func(name string) handler.Result {
//		return response.OK("Hello " + name + "!")
//	})
//
//	age := binder.Func1(binder.Query[int]("year"), func(year int) handler.Result {
//		return response.OK(fmt.Sprintf("You are %d years old!", time.Now().Year()-year))
//	})
//
// Classification, per parameter in declaration order:
//
//   - string: the raw query value, with control characters stripped
//   - *handler.Context: the whole request context (see Context)
//   - any type the Registry can parse: bool, ints, uints, floats, named string
//     types, time.Duration, time.Time (RFC 3339) and every type implementing
//     encoding.TextUnmarshaler, such as uuid.UUID
//   - anything else is unsupported and Compile reports ErrUnsupportedParameter
//
// Missing or empty query values bind to the zero value. A present value that
// fails to parse stops the request with a *BindError, which carries status 400.
//
// # Results
//
// Endpoint functions return a handler.Result. A non-nil result is executed
// against the request; a nil result is ignored and nothing is written.
//
// # Type Coercion Registry
//
// The Registry caches one ParseFunc per type after the first lookup. Custom types
// can be added with RegisterFunc:
//
//	binder.RegisterFunc(nil, func(raw string) (Color, error) {
//		return ParseColor(raw)
//	})
package binder
