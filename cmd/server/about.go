package main

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// aboutPage lists the registered routes.
func aboutPage(appName string, routes []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html><html><head><title>"+templ.EscapeString(appName)+"</title></head><body>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<h1>"+templ.EscapeString(appName)+"</h1><ul>"); err != nil {
			return err
		}
		for _, route := range routes {
			if _, err := io.WriteString(w, "<li><code>"+templ.EscapeString(route)+"</code></li>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul></body></html>")
		return err
	})
}
