package router

import (
	"strings"
	"sync"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"
	"github.com/Ne02ptzero/pistache/internal/http/stream"
)

const NameAllow = "Allow"

type HandlerFunc func(req *message.Request) *message.Response

// Router dispatches requests on exact path and method. It implements
// stream.Handler.
type Router struct {
	mu     sync.RWMutex
	routes map[string]map[message.Method]HandlerFunc
}

func New() *Router {
	return &Router{
		routes: make(map[string]map[message.Method]HandlerFunc),
	}
}

// Handle registers fn for method on path, replacing any previous handler.
func (r *Router) Handle(method message.Method, path string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	methods, ok := r.routes[path]
	if !ok {
		methods = make(map[message.Method]HandlerFunc)
		r.routes[path] = methods
	}
	methods[method] = fn
}

func (r *Router) OnRequest(req *message.Request, peer stream.Peer) {
	_ = peer.Respond(r.serve(req))
}

func (r *Router) serve(req *message.Request) *message.Response {
	methods, ok := r.lookup(req.Path())
	if !ok {
		return message.NewResponse(message.NotFound, message.NotFound.Reason())
	}

	fn, ok := methods[req.Method]
	if !ok {
		resp := message.NewResponse(message.MethodNotAllowed, message.MethodNotAllowed.Reason())
		resp.Headers.Add(header.NewRaw(NameAllow, allowed(methods)))
		return resp
	}

	resp := fn(req)
	if resp == nil {
		return message.NewResponse(message.InternalServerError, message.InternalServerError.Reason())
	}
	return resp
}

// lookup matches path exactly, then without a trailing slash.
func (r *Router) lookup(path string) (map[message.Method]HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if methods, ok := r.routes[path]; ok {
		return methods, true
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		methods, ok := r.routes[path[:len(path)-1]]
		return methods, ok
	}
	return nil, false
}

func allowed(methods map[message.Method]HandlerFunc) string {
	var names []string
	for m := message.Options; m <= message.Connect; m++ {
		if _, ok := methods[m]; ok {
			names = append(names, m.String())
		}
	}
	return strings.Join(names, ", ")
}
