package json

import "errors"

var ErrInvalidArguments = errors.New("json: must provide an even number of arguments with string keys")

// Mapper is implemented by values that expose an explicit, ordered
// key/value view of themselves. The encoder never walks struct fields;
// a custom type must implement Mapper to be encodable.
type Mapper interface {
	JSONObject() *Object
}

// Unmarshaler is implemented by targets that populate themselves from a
// decoded JSON object.
type Unmarshaler interface {
	UnmarshalJSONMap(data map[string]any) error
}

// Object is an insertion-ordered JSON object builder.
type Object struct {
	keys   []string
	values map[string]any
}

func New() *Object {
	return &Object{
		values: make(map[string]any),
	}
}

// Of builds an Object from alternating key/value arguments.
func Of(pairs ...any) (*Object, error) {
	if len(pairs)%2 != 0 {
		return nil, ErrInvalidArguments
	}

	obj := New()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, ErrInvalidArguments
		}
		obj.Set(key, pairs[i+1])
	}

	return obj, nil
}

func Array(values ...any) []any {
	arr := make([]any, 0, len(values))
	return append(arr, values...)
}

// Set adds or replaces a key. Replacing keeps the original position.
func (obj *Object) Set(key string, value any) *Object {
	if _, found := obj.values[key]; !found {
		obj.keys = append(obj.keys, key)
	}
	obj.values[key] = value
	return obj
}

func (obj *Object) Get(key string) (any, bool) {
	value, found := obj.values[key]
	return value, found
}

func (obj *Object) Len() int {
	return len(obj.keys)
}

func (obj *Object) Keys() []string {
	keys := make([]string, len(obj.keys))
	copy(keys, obj.keys)
	return keys
}

// Map returns the underlying values without ordering.
func (obj *Object) Map() map[string]any {
	m := make(map[string]any, len(obj.values))
	for key, value := range obj.values {
		m[key] = value
	}
	return m
}
