package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzyframework/jazzy/validation"
)

func newTestRequest(method, path, body string, headers map[string]string, query map[string]string) *Request {
	return NewRequest(method, path, headers, map[string]string{}, query, body)
}

func TestHeaderLookupIsCaseInsensitive(t *testing.T) {
	req := newTestRequest("GET", "/", "", map[string]string{"Content-Type": "application/json"}, nil)

	assert.Equal(t, "application/json", req.Header("content-type"))
	assert.Equal(t, "application/json", req.Header("CONTENT-TYPE"))
	assert.Equal(t, "", req.Header("accept"))
	assert.Equal(t, "*/*", req.HeaderOr("accept", "*/*"))
}

func TestQueryAccessors(t *testing.T) {
	req := newTestRequest("GET", "/users", "", nil, map[string]string{
		"limit":  "25",
		"active": "true",
		"broken": "abc",
	})

	assert.Equal(t, "25", req.Query("limit"))
	assert.Equal(t, "", req.Query("missing"))
	assert.Equal(t, "x", req.QueryOr("missing", "x"))

	assert.Equal(t, 25, req.QueryInt("limit", 10))
	assert.Equal(t, 10, req.QueryInt("missing", 10))
	assert.Equal(t, 10, req.QueryInt("broken", 10))

	assert.True(t, req.QueryBool("active", false))
	assert.True(t, req.QueryBool("missing", true))
	assert.False(t, req.QueryBool("broken", false))
}

func TestAccessorsReturnCopies(t *testing.T) {
	req := newTestRequest("GET", "/", "", map[string]string{"x-a": "1"}, map[string]string{"q": "1"})

	req.Headers()["x-a"] = "changed"
	req.QueryParams()["q"] = "changed"

	assert.Equal(t, "1", req.Header("x-a"))
	assert.Equal(t, "1", req.Query("q"))
}

func TestParseJSON(t *testing.T) {
	req := newTestRequest("POST", "/users", `{"name":"Oliver","age":28}`, nil, nil)

	fields, err := req.ParseJSON()
	require.NoError(t, err)
	assert.Equal(t, "Oliver", fields["name"])
	assert.Equal(t, 28, fields["age"])
}

func TestParseJSONEmptyBodyYieldsEmptyMap(t *testing.T) {
	req := newTestRequest("POST", "/users", "   ", nil, nil)

	fields, err := req.ParseJSON()
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestParseJSONMalformedBodyIsBadInput(t *testing.T) {
	req := newTestRequest("POST", "/users", `{"name":`, nil, nil)

	_, err := req.ParseJSON()
	require.Error(t, err)

	var bad *BadInput
	require.ErrorAs(t, err, &bad)
	assert.Contains(t, bad.Msg, "Invalid JSON body")
}

type userPayload struct {
	Name string
	Age  int
}

func (u *userPayload) UnmarshalJSONMap(data map[string]any) error {
	if name, ok := data["name"].(string); ok {
		u.Name = name
	}
	if age, ok := data["age"].(int); ok {
		u.Age = age
	}
	return nil
}

func TestDecode(t *testing.T) {
	req := newTestRequest("POST", "/users", `{"name":"Ada","age":36}`, nil, nil)

	var payload userPayload
	require.NoError(t, req.Decode(&payload))
	assert.Equal(t, "Ada", payload.Name)
	assert.Equal(t, 36, payload.Age)

	empty := newTestRequest("POST", "/users", "", nil, nil)
	err := empty.Decode(&payload)

	var bad *BadInput
	require.ErrorAs(t, err, &bad)
}

func TestValidatorMergesQueryAndBody(t *testing.T) {
	req := newTestRequest("POST", "/users",
		`{"name":"FromBody","age":28}`,
		map[string]string{"Content-Type": "application/json"},
		map[string]string{"name": "FromQuery", "source": "qs"})

	v := req.Validator()
	data := v.Data()

	assert.Equal(t, "FromBody", data["name"], "body wins on collision")
	assert.Equal(t, 28, data["age"])
	assert.Equal(t, "qs", data["source"])
}

func TestValidatorSkipsBodyWithoutJSONContentType(t *testing.T) {
	req := newTestRequest("POST", "/users",
		`{"name":"FromBody"}`,
		map[string]string{"Content-Type": "text/plain"},
		map[string]string{"name": "FromQuery"})

	data := req.Validator().Data()
	assert.Equal(t, "FromQuery", data["name"])
}

type nameRules struct{}

func (nameRules) Define(v *validation.Validator) {
	v.Field("name").Required().MinLength(3)
}

func TestValidate(t *testing.T) {
	req := newTestRequest("POST", "/users", `{"name":"Jo"}`,
		map[string]string{"Content-Type": "application/json"}, nil)

	result := req.Validate(nameRules{})
	require.True(t, result.Failed())
	assert.True(t, result.HasError("name"))

	ok := newTestRequest("POST", "/users", `{"name":"Oliver"}`,
		map[string]string{"Content-Type": "application/json"}, nil)
	assert.True(t, ok.Validate(nameRules{}).IsValid())
}

func TestValidateOrFail(t *testing.T) {
	req := newTestRequest("POST", "/users", `{}`,
		map[string]string{"Content-Type": "application/json"}, nil)

	err := req.ValidateOrFail(nameRules{})
	require.Error(t, err)

	var bad *BadInput
	require.ErrorAs(t, err, &bad)
	assert.Contains(t, bad.Msg, "Validation failed")

	ok := newTestRequest("POST", "/users", `{"name":"Oliver"}`,
		map[string]string{"Content-Type": "application/json"}, nil)
	assert.NoError(t, ok.ValidateOrFail(nameRules{}))
}
