// Package apiconnect binds the fintrack services to Connect handlers and clients.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// PathPrefix starts the URL path of every fintrack procedure.
const PathPrefix = "/fintrack.v1."

type route struct {
	procedure string
	handler   http.Handler
}

func unary[Req, Res any](procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) route {
	return route{procedure: procedure, handler: connect.NewUnaryHandler(procedure, fn, opts...)}
}

// serve mounts routes under /<service>/.
func serve(service string, routes ...route) (string, http.Handler) {
	byPath := make(map[string]http.Handler, len(routes))
	for _, r := range routes {
		byPath[r.procedure] = r.handler
	}
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := byPath[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
