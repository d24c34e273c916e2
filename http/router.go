package http

import (
	"fmt"
	"regexp"
	"strings"
)

// allowedMethods is the Allow header value sent with 405 responses.
const allowedMethods = "GET, POST, PUT, DELETE, PATCH"

var supportedMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

var paramSegment = regexp.MustCompile(`\{[^/}]+\}`)

// Router holds the registered routes. Registration happens during
// single-threaded startup; afterwards the table is read-only and safe
// for concurrent matching.
type Router struct {
	routes []Route
	index  map[string]int
}

func NewRouter() *Router {
	return &Router{
		index: make(map[string]int),
	}
}

func (router *Router) GET(path string, name string, handle Handler) {
	router.add("GET", path, name, handle)
}

func (router *Router) POST(path string, name string, handle Handler) {
	router.add("POST", path, name, handle)
}

func (router *Router) PUT(path string, name string, handle Handler) {
	router.add("PUT", path, name, handle)
}

func (router *Router) DELETE(path string, name string, handle Handler) {
	router.add("DELETE", path, name, handle)
}

func (router *Router) PATCH(path string, name string, handle Handler) {
	router.add("PATCH", path, name, handle)
}

// Register adds a route for any supported method.
func (router *Router) Register(method string, path string, name string, handle Handler) error {
	method = strings.ToUpper(method)
	if !router.IsSupportedMethod(method) {
		return fmt.Errorf("unsupported HTTP method: %s", method)
	}
	router.add(method, path, name, handle)
	return nil
}

// add replaces in place when the exact (method, path) pair was already
// registered. Structurally different patterns that happen to match the
// same concrete paths coexist; registration order decides precedence.
func (router *Router) add(method string, path string, name string, handle Handler) {
	key := method + ":" + path
	route := Route{Method: method, Path: path, Name: name, Handle: handle}

	if pos, found := router.index[key]; found {
		router.routes[pos] = route
		return
	}

	router.index[key] = len(router.routes)
	router.routes = append(router.routes, route)
}

// Find returns the first registered route whose pattern matches the
// concrete path, or nil when none does. Each {name} segment matches
// exactly one path segment.
func (router *Router) Find(method string, path string) *Route {
	for i := range router.routes {
		route := &router.routes[i]
		if !strings.EqualFold(route.Method, method) {
			continue
		}

		pattern := paramSegment.ReplaceAllString(route.Path, "([^/]+)")
		matched, err := regexp.MatchString("^"+pattern+"$", path)
		if err == nil && matched {
			return route
		}
	}
	return nil
}

// ExtractPathParams pairs {name} positions in the pattern with the
// corresponding segments of the concrete path. Values are always
// strings; the caller guarantees the path already matched the pattern.
func (router *Router) ExtractPathParams(routePath string, actualPath string) map[string]string {
	params := make(map[string]string)

	routeParts := strings.Split(routePath, "/")
	pathParts := strings.Split(actualPath, "/")

	for i, part := range routeParts {
		if i >= len(pathParts) {
			break
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") && len(part) > 2 {
			params[part[1:len(part)-1]] = pathParts[i]
		}
	}

	return params
}

func (router *Router) IsSupportedMethod(method string) bool {
	method = strings.ToUpper(method)
	for _, m := range supportedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Routes returns a copy of the registration-ordered route table.
func (router *Router) Routes() []Route {
	routes := make([]Route, len(router.routes))
	copy(routes, router.routes)
	return routes
}
