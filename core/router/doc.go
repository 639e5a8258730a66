// Package router provides the exact-path route table and the two pipeline
// stages that use it.
//
// Routes are registered with compiled binder handlers. Each handler is
// compiled once at registration; a handler that declares a parameter the
// binder cannot bind is rejected there, not at request time:
//
//	table := router.NewTable()
//
//	err := table.Map("/hello", binder.Func1(binder.Query[string]("name"),
//		func(name string) handler.Result {
//			return response.OK("Hello " + name + "!")
//		}))
//
// Lookup is exact string equality. "/hello" does not match "/hello/" or "/Hello".
// Registering the same route twice fails with ErrDuplicateRoute and leaves the
// first registration in place.
//
// # Pipeline Stages
//
// Routing stores the matched endpoint on the request context and always calls
// the next stage. Endpoints invokes it, or answers 404 with body "Not found!".
// Applications register them in that order:
//
//	b := pipeline.New()
//	b.Use(router.Routing(table))
//	b.Use(router.Endpoints())
package router
