package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzyframework/jazzy/json"
	"github.com/jazzyframework/jazzy/validation"
)

func TestResponseDefaults(t *testing.T) {
	res := Text("hello")

	assert.Equal(t, StatusOK, res.Status())
	assert.Equal(t, "text/plain", res.ContentType())
	assert.Equal(t, "hello", res.Body())
}

func TestJSONWithString(t *testing.T) {
	res := JSON(`{"already":"encoded"}`)

	assert.Equal(t, "application/json", res.ContentType())
	assert.Equal(t, `{"already":"encoded"}`, res.Body())
}

func TestJSONWithValue(t *testing.T) {
	res := JSON(json.New().Set("id", 7).Set("name", "Ada"))

	assert.Equal(t, StatusOK, res.Status())
	assert.Equal(t, `{"id":7,"name":"Ada"}`, res.Body())
}

func TestJSONWithUnencodableValueDegradesTo500(t *testing.T) {
	type opaque struct{ X int }

	res := JSON(opaque{X: 1})
	assert.Equal(t, StatusInternalServerError, res.Status())
}

func TestJSONPairs(t *testing.T) {
	res, err := JSONPairs("name", "Oliver", "age", 28)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Oliver","age":28}`, res.Body())
}

func TestJSONPairsRejectsBadArguments(t *testing.T) {
	var bad *BadInput

	_, err := JSONPairs("name", "Oliver", "age")
	require.ErrorAs(t, err, &bad)
	assert.ErrorIs(t, err, json.ErrInvalidArguments)

	_, err = JSONPairs(1, "x")
	require.ErrorAs(t, err, &bad)
}

func TestHTML(t *testing.T) {
	res := HTML("<h1>hi</h1>")
	assert.Equal(t, "text/html", res.ContentType())
}

func TestRedirect(t *testing.T) {
	res := Redirect("/login")

	assert.Equal(t, StatusFound, res.Status())
	assert.Equal(t, "/login", res.Header("Location"))
}

func TestSuccessAndErrorEnvelopes(t *testing.T) {
	assert.Equal(t, `{"status":"success","message":"done"}`, Success("done").Body())

	res := SuccessData("created", map[string]any{"id": 1})
	assert.Equal(t, `{"status":"success","message":"created","data":{"id":1}}`, res.Body())

	res = Error("nope")
	assert.Equal(t, StatusBadRequest, res.Status())
	assert.Equal(t, `{"status":"error","message":"nope"}`, res.Body())

	res = ErrorStatus("gone", StatusNotFound)
	assert.Equal(t, StatusNotFound, res.Status())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		res    *Response
		status int
		kind   string
	}{
		{BadRequest("m"), StatusBadRequest, "Bad Request"},
		{Unauthorized("m"), StatusUnauthorized, "Unauthorized"},
		{Forbidden("m"), StatusForbidden, "Forbidden"},
		{NotFound("m"), StatusNotFound, "Not Found"},
		{MethodNotAllowed("m"), StatusMethodNotAllowed, "Method Not Allowed"},
		{TooManyRequests("m"), StatusTooManyRequests, "Too Many Requests"},
		{ServerError("m"), StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.res.Status())
		assert.Contains(t, tt.res.Body(), `"error":"`+tt.kind+`"`)
		assert.Contains(t, tt.res.Body(), `"message":"m"`)
	}
}

func TestValidationFailed(t *testing.T) {
	result := validation.NewResult()
	result.AddError("email", "The email field is required")
	result.AddError("email", "The email field must be a valid email address")

	res := ValidationFailed(result)

	assert.Equal(t, StatusUnprocessableEntity, res.Status())
	assert.Contains(t, res.Body(), `"status":422`)
	assert.Contains(t, res.Body(), `"error":"Validation Error"`)
	assert.Contains(t, res.Body(), `"email":"The email field is required"`)
	assert.NotContains(t, res.Body(), "valid email address", "only the first error per field is reported")
}

func TestWithHeaderKeepsPositionOnReplace(t *testing.T) {
	res := Text("x").
		WithHeader("X-First", "1").
		WithHeader("X-Second", "2").
		WithHeader("X-First", "replaced")

	wire := string(res.HTTPBytes())
	first := "X-First: replaced\r\n"
	second := "X-Second: 2\r\n"
	assert.Contains(t, wire, first)
	assert.Less(t, strings.Index(wire, first), strings.Index(wire, second))
}

func TestHTTPBytesWireFormat(t *testing.T) {
	res := Text("hello")

	want := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"hello"
	assert.Equal(t, want, string(res.HTTPBytes()))
}

func TestHTTPBytesContentLengthCountsBytes(t *testing.T) {
	res := Text("héllo")

	wire := string(res.HTTPBytes())
	assert.Contains(t, wire, "Content-Length: 6\r\n")
}

func TestUnmappedStatusReasonIsUnknown(t *testing.T) {
	res := Text("x").WithStatus(StatusUnprocessableEntity)
	assert.Contains(t, string(res.HTTPBytes()), "HTTP/1.1 422 Unknown\r\n")

	res = Text("x").WithStatus(StatusTooManyRequests)
	assert.Contains(t, string(res.HTTPBytes()), "HTTP/1.1 429 Unknown\r\n")
}
