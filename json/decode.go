package json

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports malformed JSON input. Decoding never returns
// partial results alongside one.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json: %s at offset %d", e.Msg, e.Offset)
}

// UnmarshalMap decodes a JSON object into a map. Integral numbers decode
// as int, decimals as float64.
func UnmarshalMap(data string) (map[string]any, error) {
	s := scanner{data: data}
	s.skipSpace()

	if s.pos >= len(s.data) || s.data[s.pos] != '{' {
		return nil, &SyntaxError{Offset: s.pos, Msg: "expected object"}
	}

	result, err := s.scanObject()
	if err != nil {
		return nil, err
	}

	s.skipSpace()
	if s.pos != len(s.data) {
		return nil, &SyntaxError{Offset: s.pos, Msg: "unexpected trailing data"}
	}

	return result, nil
}

// Unmarshal decodes any single JSON value.
func Unmarshal(data string) (any, error) {
	s := scanner{data: data}

	value, err := s.scanValue()
	if err != nil {
		return nil, err
	}

	s.skipSpace()
	if s.pos != len(s.data) {
		return nil, &SyntaxError{Offset: s.pos, Msg: "unexpected trailing data"}
	}

	return value, nil
}

type scanner struct {
	data string
	pos  int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) scanValue() (any, error) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return nil, &SyntaxError{Offset: s.pos, Msg: "unexpected end of input"}
	}

	switch c := s.data[s.pos]; {
	case c == '{':
		return s.scanObject()
	case c == '[':
		return s.scanArray()
	case c == '"':
		return s.scanString()
	case c == 't':
		return s.scanLiteral("true", true)
	case c == 'f':
		return s.scanLiteral("false", false)
	case c == 'n':
		return s.scanLiteral("null", nil)
	case c == '-' || (c >= '0' && c <= '9'):
		return s.scanNumber()
	default:
		return nil, &SyntaxError{Offset: s.pos, Msg: fmt.Sprintf("unexpected character %q", c)}
	}
}

func (s *scanner) scanObject() (map[string]any, error) {
	s.pos++ // consume '{'
	result := make(map[string]any)

	s.skipSpace()
	if s.pos < len(s.data) && s.data[s.pos] == '}' {
		s.pos++
		return result, nil
	}

	for {
		s.skipSpace()
		if s.pos >= len(s.data) || s.data[s.pos] != '"' {
			return nil, &SyntaxError{Offset: s.pos, Msg: "expected object key"}
		}

		key, err := s.scanString()
		if err != nil {
			return nil, err
		}

		s.skipSpace()
		if s.pos >= len(s.data) || s.data[s.pos] != ':' {
			return nil, &SyntaxError{Offset: s.pos, Msg: "expected ':' after object key"}
		}
		s.pos++

		value, err := s.scanValue()
		if err != nil {
			return nil, err
		}
		result[key] = value

		s.skipSpace()
		if s.pos >= len(s.data) {
			return nil, &SyntaxError{Offset: s.pos, Msg: "unterminated object"}
		}

		switch s.data[s.pos] {
		case ',':
			s.pos++
		case '}':
			s.pos++
			return result, nil
		default:
			return nil, &SyntaxError{Offset: s.pos, Msg: "expected ',' or '}' in object"}
		}
	}
}

func (s *scanner) scanArray() ([]any, error) {
	s.pos++ // consume '['
	result := make([]any, 0)

	s.skipSpace()
	if s.pos < len(s.data) && s.data[s.pos] == ']' {
		s.pos++
		return result, nil
	}

	for {
		value, err := s.scanValue()
		if err != nil {
			return nil, err
		}
		result = append(result, value)

		s.skipSpace()
		if s.pos >= len(s.data) {
			return nil, &SyntaxError{Offset: s.pos, Msg: "unterminated array"}
		}

		switch s.data[s.pos] {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return result, nil
		default:
			return nil, &SyntaxError{Offset: s.pos, Msg: "expected ',' or ']' in array"}
		}
	}
}

func (s *scanner) scanString() (string, error) {
	s.pos++ // consume opening quote
	start := s.pos

	var sb strings.Builder
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch c {
		case '"':
			if sb.Len() == 0 {
				str := s.data[start:s.pos]
				s.pos++
				return str, nil
			}
			s.pos++
			return sb.String(), nil
		case '\\':
			if sb.Len() == 0 {
				sb.WriteString(s.data[start:s.pos])
			}
			s.pos++
			if s.pos >= len(s.data) {
				return "", &SyntaxError{Offset: s.pos, Msg: "unterminated escape sequence"}
			}
			switch e := s.data[s.pos]; e {
			case '"', '\\', '/':
				sb.WriteByte(e)
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'u':
				if s.pos+4 >= len(s.data) {
					return "", &SyntaxError{Offset: s.pos, Msg: "unterminated unicode escape"}
				}
				code, err := strconv.ParseUint(s.data[s.pos+1:s.pos+5], 16, 32)
				if err != nil {
					return "", &SyntaxError{Offset: s.pos, Msg: "invalid unicode escape"}
				}
				sb.WriteRune(rune(code))
				s.pos += 4
			default:
				return "", &SyntaxError{Offset: s.pos, Msg: fmt.Sprintf("invalid escape character %q", e)}
			}
			s.pos++
		default:
			if sb.Len() > 0 {
				sb.WriteByte(c)
			}
			s.pos++
		}
	}

	return "", &SyntaxError{Offset: s.pos, Msg: "unterminated string"}
}

func (s *scanner) scanLiteral(literal string, value any) (any, error) {
	if !strings.HasPrefix(s.data[s.pos:], literal) {
		return nil, &SyntaxError{Offset: s.pos, Msg: "invalid literal"}
	}
	s.pos += len(literal)
	return value, nil
}

func (s *scanner) scanNumber() (any, error) {
	start := s.pos
	isFloat := false

	if s.data[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c >= '0' && c <= '9' {
			s.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			isFloat = true
			s.pos++
			continue
		}
		break
	}

	token := s.data[start:s.pos]
	if isFloat {
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", token)}
		}
		return f, nil
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		// Integral but out of int range.
		f, ferr := strconv.ParseFloat(token, 64)
		if ferr != nil {
			return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", token)}
		}
		return f, nil
	}
	return n, nil
}
