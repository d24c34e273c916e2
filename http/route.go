package http

// Handler is application logic invoked with the parsed request. It may
// return a *Response (used as-is), a string (text/plain 200), a
// *validation.Result, an error, or any JSON-encodable value.
type Handler func(req *Request) any

// Route binds an HTTP method and a path pattern to a named handler.
// Patterns may contain {name} segments matching exactly one path
// segment. Immutable once registered.
type Route struct {
	Method string
	Path   string
	Name   string
	Handle Handler
}
