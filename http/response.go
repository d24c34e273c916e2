package http

import (
	"strconv"
	"strings"

	"github.com/jazzyframework/jazzy/json"
	"github.com/jazzyframework/jazzy/validation"
)

// Response is a mutable response builder. All setters return the same
// instance for chaining; the terminal state is serialization via
// HTTPBytes. One per handler invocation, discarded after the write.
type Response struct {
	status      int
	contentType string
	body        string
	headers     map[string]string
	headerOrder []string
}

func newResponse() *Response {
	return &Response{
		status:      StatusOK,
		contentType: "text/plain",
		headers:     make(map[string]string),
	}
}

// JSON builds an application/json response. A string body is used
// verbatim; anything else goes through the codec. An unencodable value
// degrades to a 500 carrying the codec error.
func JSON(value any) *Response {
	res := newResponse()
	res.contentType = "application/json"

	if s, ok := value.(string); ok {
		res.body = s
		return res
	}

	body, err := json.Marshal(value)
	if err != nil {
		return ServerError(err.Error())
	}
	res.body = body
	return res
}

// JSONPairs builds a JSON object response from alternating key/value
// arguments. An odd count or a non-string key is a *BadInput.
func JSONPairs(pairs ...any) (*Response, error) {
	obj, err := json.Of(pairs...)
	if err != nil {
		return nil, &BadInput{Msg: "Must provide an even number of arguments with string keys", Err: err}
	}
	return JSON(obj), nil
}

func Text(body string) *Response {
	res := newResponse()
	res.body = body
	return res
}

func HTML(body string) *Response {
	res := newResponse()
	res.contentType = "text/html"
	res.body = body
	return res
}

// Redirect builds a 302 response with a Location header.
func Redirect(url string) *Response {
	res := newResponse()
	res.status = StatusFound
	return res.WithHeader("Location", url)
}

// Success renders {"status":"success","message":...}.
func Success(message string) *Response {
	return JSON(json.New().
		Set("status", "success").
		Set("message", message))
}

func SuccessData(message string, data any) *Response {
	return JSON(json.New().
		Set("status", "success").
		Set("message", message).
		Set("data", data))
}

// Error renders {"status":"error","message":...} with status 400.
func Error(message string) *Response {
	return ErrorStatus(message, StatusBadRequest)
}

func ErrorStatus(message string, status int) *Response {
	return JSON(json.New().
		Set("status", "error").
		Set("message", message)).
		WithStatus(status)
}

func BadRequest(message string) *Response {
	return errorResponse(StatusBadRequest, "Bad Request", message)
}

func Unauthorized(message string) *Response {
	return errorResponse(StatusUnauthorized, "Unauthorized", message)
}

func Forbidden(message string) *Response {
	return errorResponse(StatusForbidden, "Forbidden", message)
}

func NotFound(message string) *Response {
	return errorResponse(StatusNotFound, "Not Found", message)
}

func MethodNotAllowed(message string) *Response {
	return errorResponse(StatusMethodNotAllowed, "Method Not Allowed", message)
}

func TooManyRequests(message string) *Response {
	return errorResponse(StatusTooManyRequests, "Too Many Requests", message)
}

func ServerError(message string) *Response {
	return errorResponse(StatusInternalServerError, "Internal Server Error", message)
}

// ValidationFailed renders a 422 carrying the first error for each
// failed field.
func ValidationFailed(result *validation.Result) *Response {
	payload := json.New().
		Set("status", StatusUnprocessableEntity).
		Set("error", "Validation Error").
		Set("message", "Validation failed").
		Set("errors", result.FirstErrors())
	return JSON(payload).WithStatus(StatusUnprocessableEntity)
}

func errorResponse(status int, kind string, message string) *Response {
	payload := json.New().
		Set("status", status).
		Set("error", kind).
		Set("message", message)
	return JSON(payload).WithStatus(status)
}

func (res *Response) WithStatus(status int) *Response {
	res.status = status
	return res
}

func (res *Response) WithContentType(contentType string) *Response {
	res.contentType = contentType
	return res
}

// WithHeader adds a custom header. Replacing keeps the original
// position in the serialized output.
func (res *Response) WithHeader(name string, value string) *Response {
	if _, found := res.headers[name]; !found {
		res.headerOrder = append(res.headerOrder, name)
	}
	res.headers[name] = value
	return res
}

func (res *Response) Status() int {
	return res.status
}

func (res *Response) ContentType() string {
	return res.contentType
}

func (res *Response) Body() string {
	return res.body
}

func (res *Response) Header(name string) string {
	return res.headers[name]
}

func (res *Response) Headers() map[string]string {
	return copyMap(res.headers)
}

// HTTPBytes serializes the response in wire order: status line,
// Content-Type, Content-Length (byte length of the body), custom
// headers, blank line, body.
func (res *Response) HTTPBytes() []byte {
	var sb strings.Builder

	sb.WriteString("HTTP/1.1 ")
	sb.WriteString(strconv.Itoa(res.status))
	sb.WriteString(" ")
	sb.WriteString(statusText(res.status))
	sb.WriteString("\r\n")

	sb.WriteString("Content-Type: ")
	sb.WriteString(res.contentType)
	sb.WriteString("\r\n")

	sb.WriteString("Content-Length: ")
	sb.WriteString(strconv.Itoa(len(res.body)))
	sb.WriteString("\r\n")

	for _, name := range res.headerOrder {
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(res.headers[name])
		sb.WriteString("\r\n")
	}

	sb.WriteString("\r\n")
	sb.WriteString(res.body)

	return []byte(sb.String())
}
