// Package site serves the embedded portfolio dashboard.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded dashboard routes to mux. The dashboard is
// a single static page that consumes the /data API.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.FileServer(FS())
	mux.Handle("/", files)
}
