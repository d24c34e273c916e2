package http

import (
	"strconv"
	"strings"

	"github.com/jazzyframework/jazzy/json"
	"github.com/jazzyframework/jazzy/validation"
)

// Request is an immutable view over one parsed HTTP request. Header
// names are lowercased at construction so lookups are case insensitive
// against a single canonical map.
type Request struct {
	method      string
	path        string
	headers     map[string]string
	pathParams  map[string]string
	queryParams map[string]string
	body        string
}

func NewRequest(method string, path string, headers map[string]string, pathParams map[string]string, queryParams map[string]string, body string) *Request {
	req := &Request{
		method:      method,
		path:        path,
		headers:     make(map[string]string, len(headers)),
		pathParams:  make(map[string]string, len(pathParams)),
		queryParams: make(map[string]string, len(queryParams)),
		body:        body,
	}

	for name, value := range headers {
		req.headers[strings.ToLower(name)] = value
	}
	for name, value := range pathParams {
		req.pathParams[name] = value
	}
	for name, value := range queryParams {
		req.queryParams[name] = value
	}

	return req
}

func (req *Request) Method() string {
	return req.method
}

func (req *Request) Path() string {
	return req.path
}

// Header returns the value of a header, or "" when absent.
func (req *Request) Header(name string) string {
	return req.headers[strings.ToLower(name)]
}

func (req *Request) HeaderOr(name string, fallback string) string {
	if value, found := req.headers[strings.ToLower(name)]; found {
		return value
	}
	return fallback
}

func (req *Request) Headers() map[string]string {
	return copyMap(req.headers)
}

// PathParam returns a value captured from the URL by the route pattern,
// or "" when absent.
func (req *Request) PathParam(name string) string {
	return req.pathParams[name]
}

func (req *Request) PathParams() map[string]string {
	return copyMap(req.pathParams)
}

func (req *Request) Query(name string) string {
	return req.queryParams[name]
}

func (req *Request) QueryOr(name string, fallback string) string {
	if value, found := req.queryParams[name]; found {
		return value
	}
	return fallback
}

// QueryInt parses a query parameter as an int, returning the fallback
// when the parameter is absent or not a number.
func (req *Request) QueryInt(name string, fallback int) int {
	value, found := req.queryParams[name]
	if !found {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// QueryBool parses a query parameter as a bool, returning the fallback
// when the parameter is absent or not a boolean.
func (req *Request) QueryBool(name string, fallback bool) bool {
	value, found := req.queryParams[name]
	if !found {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func (req *Request) QueryParams() map[string]string {
	return copyMap(req.queryParams)
}

func (req *Request) Body() string {
	return req.body
}

// ParseJSON decodes the body as a JSON object. An empty or blank body
// yields an empty map; malformed JSON is reported as a *BadInput.
func (req *Request) ParseJSON() (map[string]any, error) {
	if strings.TrimSpace(req.body) == "" {
		return map[string]any{}, nil
	}

	data, err := json.UnmarshalMap(req.body)
	if err != nil {
		return nil, &BadInput{Msg: "Invalid JSON body: " + err.Error(), Err: err}
	}
	return data, nil
}

// Decode populates a target implementing json.Unmarshaler from the
// request body.
func (req *Request) Decode(v json.Unmarshaler) error {
	if strings.TrimSpace(req.body) == "" {
		return BadInputf("Request body is empty")
	}

	data, err := req.ParseJSON()
	if err != nil {
		return err
	}
	return v.UnmarshalJSONMap(data)
}

// Validator builds a validator over the query parameters merged with
// the JSON body fields; body fields win on key collision. The body is
// only parsed when the Content-Type indicates JSON, and parse errors
// are ignored here.
func (req *Request) Validator() *validation.Validator {
	data := make(map[string]any, len(req.queryParams))
	for name, value := range req.queryParams {
		data[name] = value
	}

	contentType := strings.ToLower(req.Header("Content-Type"))
	if strings.Contains(contentType, "application/json") && strings.TrimSpace(req.body) != "" {
		if fields, err := json.UnmarshalMap(req.body); err == nil {
			for name, value := range fields {
				data[name] = value
			}
		}
	}

	return validation.New(data)
}

// Validate replays a reusable rule set against this request's data.
func (req *Request) Validate(rules validation.RuleSet) *validation.Result {
	v := req.Validator()
	rules.Define(v)
	return v.Validate()
}

// ValidateOrFail returns a *BadInput carrying the first error per field
// when validation fails.
func (req *Request) ValidateOrFail(rules validation.RuleSet) error {
	result := req.Validate(rules)
	if result.Failed() {
		return BadInputf("Validation failed: %v", result.FirstErrors())
	}
	return nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for name, value := range m {
		out[name] = value
	}
	return out
}
