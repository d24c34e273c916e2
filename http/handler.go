package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jazzyframework/jazzy/json"
	"github.com/jazzyframework/jazzy/validation"
)

// handleConn runs the per-connection protocol state machine: read the
// request line, headers and body, resolve a route, invoke the handler,
// normalize its result to a Response and write it back. One request per
// connection; the socket is always closed at the end.
//
// Wire-level input problems are mapped to a status code right here and
// never reach handler code. Such early exits count toward the request
// total only; success and duration are recorded solely for requests
// that reach the dispatch path, and only uncaught faults and failed
// response writes hit the failure counter.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With("conn_id", uuid.NewString())

	start := time.Now()
	s.Metrics.RecordRequest(ctx)

	reader := bufio.NewReader(conn)

	// reply writes an early-exit response produced before dispatch. No
	// success or duration is recorded for these.
	reply := func(res *Response) {
		if _, err := conn.Write(res.HTTPBytes()); err != nil {
			logger.Warn("Failed to write response", "error", err)
			s.Metrics.RecordFailure(ctx)
		}
	}

	// finish writes a dispatched response and records the normal-path
	// metrics. A failed write is a failure, not a success.
	finish := func(res *Response) {
		if _, err := conn.Write(res.HTTPBytes()); err != nil {
			logger.Warn("Failed to write response", "error", err)
			s.Metrics.RecordFailure(ctx)
			return
		}
		s.Metrics.RecordSuccess(ctx)
		s.Metrics.RecordDuration(ctx, time.Since(start).Milliseconds())
	}

	// fault handles an uncaught failure: best-effort 500, no duration.
	fault := func(message string) {
		s.Metrics.RecordFailure(ctx)
		if _, err := conn.Write(ServerError(message).HTTPBytes()); err != nil {
			logger.Error("Error sending error response", "error", err)
		}
	}

	// A blank request line or EOF here is a peer disconnect, not an
	// error: no response is owed.
	line, err := reader.ReadString('\n')
	if err != nil {
		logger.Warn("Client closed connection before sending request line")
		return
	}
	line = strings.TrimSpace(line)
	if line == "" {
		logger.Debug("Empty request line received, ignoring")
		return
	}

	parts := strings.Split(line, " ")
	if len(parts) < 2 {
		logger.Warn("Malformed request line", "line", line)
		reply(BadRequest("Malformed request line"))
		return
	}
	method := parts[0]
	fullPath := parts[1]

	path := fullPath
	queryParams := map[string]string{}
	if i := strings.Index(fullPath, "?"); i != -1 {
		path = fullPath[:i]
		queryParams = parseQueryString(fullPath[i+1:])
	}

	logger.Info("Received request", "method", method, "path", path)

	if !s.Router.IsSupportedMethod(method) {
		logger.Warn("Unsupported HTTP method", "method", method)
		reply(MethodNotAllowed("Method Not Allowed").WithHeader("Allow", allowedMethods))
		return
	}

	headers := make(map[string]string)
	contentLength := 0
	for {
		headerLine, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the header block; the truncated request is
			// still processed with whatever arrived.
			break
		}
		headerLine = strings.TrimSpace(headerLine)
		if headerLine == "" {
			break
		}

		name, value, found := strings.Cut(headerLine, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		headers[name] = value

		if name == "content-length" {
			n, err := strconv.Atoi(value)
			if err != nil {
				logger.Warn("Invalid Content-Length header", "value", value)
				reply(BadRequest("Invalid Content-Length"))
				return
			}
			contentLength = n
		}
	}

	bodyMethod := method == "POST" || method == "PUT" || method == "PATCH"
	if contentLength > 0 && !bodyMethod {
		logger.Warn("Request with body on method that shouldn't have one", "method", method)
		reply(BadRequest("Body not allowed for method " + method))
		return
	}

	// Single best-effort read; a short read on a slow connection is
	// not retried.
	body := ""
	if contentLength > 0 {
		buf := make([]byte, contentLength)
		n, _ := reader.Read(buf)
		if n > 0 {
			body = string(buf[:n])
		}
	}

	route := s.Router.Find(method, path)
	if route == nil {
		logger.Warn("Route not found", "method", method, "path", path)
		reply(NotFound("Route not found: " + method + " " + path))
		return
	}
	logger.Info("Found route", "method", method, "pattern", route.Path, "handler", route.Name)

	pathParams := s.Router.ExtractPathParams(route.Path, path)
	req := NewRequest(method, path, headers, pathParams, queryParams, body)

	if bodyMethod && strings.TrimSpace(body) == "" {
		logger.Warn("Empty request body", "method", method, "path", path)
		reply(BadRequest("Request body is required for " + method + " requests"))
		return
	}

	if route.Handle == nil {
		logger.Warn("Handler not found", "handler", route.Name)
		fault("Handler not found: " + route.Name)
		return
	}

	res, ferr := dispatch(route, req)
	if ferr != nil {
		logger.Error("Exception handling request", "error", ferr)
		fault(ferr.Error())
		return
	}

	finish(res)
	logger.Debug("Response sent successfully")
}

// dispatch invokes the handler and normalizes its return value to a
// Response. Caller-input conditions are mapped to 400 right here; the
// returned error is an infrastructure fault the caller maps to 500.
func dispatch(route *Route, req *Request) (res *Response, fault error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			fault = fmt.Errorf("%v", r)
		}
	}()

	result := route.Handle(req)

	switch v := result.(type) {
	case *Response:
		return v, nil
	case string:
		return Text(v), nil
	case *validation.Result:
		if v.Failed() {
			return ValidationFailed(v), nil
		}
		return JSON(map[string]any{"message": "Validation succeeded"}), nil
	case error:
		var bad *BadInput
		if errors.As(v, &bad) {
			return BadRequest(bad.Msg), nil
		}
		return nil, v
	default:
		body, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		return JSON(body), nil
	}
}

// parseQueryString splits a raw query into a name/value map,
// URL-unescaping both sides. Pairs without '=' or with an empty name
// are skipped; undecodable values are kept raw.
func parseQueryString(query string) map[string]string {
	params := make(map[string]string)

	for _, pair := range strings.Split(query, "&") {
		i := strings.Index(pair, "=")
		if i <= 0 {
			continue
		}

		name := pair[:i]
		value := pair[i+1:]
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		params[name] = value
	}

	return params
}
