package main

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/pipeline/app"
	"github.com/dmitrymomot/pipeline/core/binder"
	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/response"
)

func registerRoutes(a *app.App, now func() time.Time) {
	a.MustMap("/", binder.Func0(func() handler.Result {
		return response.OK("Hello world!")
	}))

	a.MustMap("/bye", binder.Func0(func() handler.Result {
		return response.OK("Bye world!")
	}))

	a.MustMap("/hello", binder.Func1(binder.Query[string]("name"), func(name string) handler.Result {
		return response.OK(fmt.Sprintf("Hello %s!", name))
	}))

	a.MustMap("/age", binder.Func1(binder.Query[int]("year"), func(year int) handler.Result {
		return response.OK(fmt.Sprintf("You are %d years old!", now().Year()-year))
	}))

	a.MustMap("/about", binder.Func0(func() handler.Result {
		return response.Templ(aboutPage(a.Config().AppName, a.Routes().Routes()))
	}))
}
