package json

import (
	"fmt"
	"sort"
	"strconv"
)

// Marshal renders a value as JSON text. Supported values are nil, bools,
// integers, floats, strings, []any, []string, map[string]any,
// map[string]string, *Object and any Mapper. Everything else is an
// encode error.
func Marshal(value any) (string, error) {
	buf, err := appendValue(make([]byte, 0, 64), value)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func appendValue(buf []byte, value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return append(buf, "null"...), nil
	case bool:
		if v {
			return append(buf, "true"...), nil
		}
		return append(buf, "false"...), nil
	case string:
		return appendString(buf, v), nil
	case int:
		return strconv.AppendInt(buf, int64(v), 10), nil
	case int8:
		return strconv.AppendInt(buf, int64(v), 10), nil
	case int16:
		return strconv.AppendInt(buf, int64(v), 10), nil
	case int32:
		return strconv.AppendInt(buf, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(buf, v, 10), nil
	case uint:
		return strconv.AppendUint(buf, uint64(v), 10), nil
	case uint8:
		return strconv.AppendUint(buf, uint64(v), 10), nil
	case uint16:
		return strconv.AppendUint(buf, uint64(v), 10), nil
	case uint32:
		return strconv.AppendUint(buf, uint64(v), 10), nil
	case uint64:
		return strconv.AppendUint(buf, v, 10), nil
	case float32:
		return strconv.AppendFloat(buf, float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.AppendFloat(buf, v, 'g', -1, 64), nil
	case *Object:
		return appendObject(buf, v)
	case Mapper:
		return appendObject(buf, v.JSONObject())
	case map[string]any:
		return appendMap(buf, v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for key, item := range v {
			m[key] = item
		}
		return appendMap(buf, m)
	case []any:
		return appendArray(buf, v)
	case []string:
		arr := make([]any, len(v))
		for i, item := range v {
			arr[i] = item
		}
		return appendArray(buf, arr)
	default:
		return nil, fmt.Errorf("json: cannot encode value of type %T", value)
	}
}

func appendObject(buf []byte, obj *Object) ([]byte, error) {
	var err error

	buf = append(buf, '{')
	for i, key := range obj.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendString(buf, key)
		buf = append(buf, ':')
		buf, err = appendValue(buf, obj.values[key])
		if err != nil {
			return nil, err
		}
	}

	return append(buf, '}'), nil
}

// appendMap writes plain maps with sorted keys so output is deterministic.
func appendMap(buf []byte, m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var err error

	buf = append(buf, '{')
	for i, key := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendString(buf, key)
		buf = append(buf, ':')
		buf, err = appendValue(buf, m[key])
		if err != nil {
			return nil, err
		}
	}

	return append(buf, '}'), nil
}

func appendArray(buf []byte, arr []any) ([]byte, error) {
	var err error

	buf = append(buf, '[')
	for i, item := range arr {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf, err = appendValue(buf, item)
		if err != nil {
			return nil, err
		}
	}

	return append(buf, ']'), nil
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			buf = append(buf, '\\', '"')
		case c == '\\':
			buf = append(buf, '\\', '\\')
		case c == '\n':
			buf = append(buf, '\\', 'n')
		case c == '\r':
			buf = append(buf, '\\', 'r')
		case c == '\t':
			buf = append(buf, '\\', 't')
		case c < 0x20:
			const hex = "0123456789abcdef"
			buf = append(buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xF])
		default:
			buf = append(buf, c)
		}
	}
	return append(buf, '"')
}
