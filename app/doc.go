// Package app wires a route table, a middleware pipeline and a server into a
// runnable application.
//
//	a, err := app.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	a.MustMap("/", binder.Func0(func() handler.Result {
//		return response.OK("Hello world!")
//	}))
//	a.MustMap("/hello", binder.Func1(binder.Query[string]("name"), func(name string) handler.Result {
//		return response.OK("Hello " + name + "!")
//	}))
//
//	a.Use(middleware.RequestID())
//	a.UseRouting()
//	a.UseEndpoints()
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := a.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Routing and endpoint execution are ordinary pipeline stages, so they must be
// added explicitly with UseRouting and UseEndpoints; middleware registered
// between them sees the resolved endpoint through handler.Context.Endpoint.
package app
