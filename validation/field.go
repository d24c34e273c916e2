package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"
)

var (
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(\.[a-zA-Z0-9_+&*-]+)*@([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)
	urlPattern          = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
)

// Field builds the rule chain for one field. Every rule except Required
// passes on a nil/absent value, so optional fields skip all checks.
type Field struct {
	validator *Validator
	name      string
}

func (f *Field) Required() *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		if value == nil {
			return false
		}
		if s, ok := value.(string); ok {
			return s != ""
		}
		return true
	}, fmt.Sprintf("The %s field is required", f.name)))
	return f
}

func (f *Field) MinLength(min int) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		s, ok := stringValue(value)
		if !ok {
			return true
		}
		return utf8.RuneCountInString(s) >= min
	}, fmt.Sprintf("The %s field must be at least %d characters", f.name, min)))
	return f
}

func (f *Field) MaxLength(max int) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		s, ok := stringValue(value)
		if !ok {
			return true
		}
		return utf8.RuneCountInString(s) <= max
	}, fmt.Sprintf("The %s field must not exceed %d characters", f.name, max)))
	return f
}

func (f *Field) Email() *Field {
	return f.matchPattern(emailPattern, fmt.Sprintf("The %s field must be a valid email address", f.name))
}

func (f *Field) URL() *Field {
	return f.matchPattern(urlPattern, fmt.Sprintf("The %s field must be a valid URL", f.name))
}

func (f *Field) Alphanumeric() *Field {
	return f.matchPattern(alphanumericPattern, fmt.Sprintf("The %s field must only contain letters and numbers", f.name))
}

func (f *Field) Numeric() *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		if value == nil {
			return true
		}
		_, ok := numericValue(value)
		return ok
	}, fmt.Sprintf("The %s field must be numeric", f.name)))
	return f
}

func (f *Field) Min(min float64) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		n, ok := numericValue(value)
		if !ok {
			return true
		}
		return n >= min
	}, fmt.Sprintf("The %s field must be at least %s", f.name, formatNumber(min))))
	return f
}

func (f *Field) Max(max float64) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		n, ok := numericValue(value)
		if !ok {
			return true
		}
		return n <= max
	}, fmt.Sprintf("The %s field must not exceed %s", f.name, formatNumber(max))))
	return f
}

// Pattern adds a custom regex rule with its own message.
func (f *Field) Pattern(pattern string, message string) *Field {
	return f.matchPattern(regexp.MustCompile(pattern), message)
}

// Date requires the value to parse with the given time layout,
// e.g. "2006-01-02".
func (f *Field) Date(layout string) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		s, ok := stringValue(value)
		if !ok {
			return true
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}, fmt.Sprintf("The %s field must be a valid date in format %s", f.name, layout)))
	return f
}

func (f *Field) In(allowed ...any) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		if value == nil {
			return true
		}
		return containsValue(allowed, value)
	}, fmt.Sprintf("The %s field must be one of: %v", f.name, allowed)))
	return f
}

func (f *Field) NotIn(disallowed ...any) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		if value == nil {
			return true
		}
		return !containsValue(disallowed, value)
	}, fmt.Sprintf("The %s field must not be one of: %v", f.name, disallowed)))
	return f
}

// Matches requires the value to equal another field's value. Passes when
// either side is absent.
func (f *Field) Matches(otherName string) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		if value == nil {
			return true
		}
		other := f.validator.Value(otherName)
		if other == nil {
			return true
		}
		return reflect.DeepEqual(value, other)
	}, fmt.Sprintf("The %s field must match the %s field", f.name, otherName)))
	return f
}

// Custom adds a caller-supplied rule.
func (f *Field) Custom(r Rule) *Field {
	f.validator.addRule(f.name, r)
	return f
}

// Field moves the chain on to another field.
func (f *Field) Field(name string) *Field {
	return f.validator.Field(name)
}

// Validate evaluates all rules registered on the parent validator.
func (f *Field) Validate() *Result {
	return f.validator.Validate()
}

func (f *Field) matchPattern(pattern *regexp.Regexp, message string) *Field {
	f.validator.addRule(f.name, RuleFunc(func(value any) bool {
		s, ok := stringValue(value)
		if !ok {
			return true
		}
		return pattern.MatchString(s)
	}, message))
	return f
}

// stringValue reports the value as a string; non-strings (including nil)
// are not subject to string rules.
func stringValue(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// numericValue coerces numbers and numeric-looking strings to float64.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func containsValue(values []any, value any) bool {
	for _, v := range values {
		if reflect.DeepEqual(v, value) {
			return true
		}
	}
	return false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
