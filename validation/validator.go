package validation

// Rule is a single predicate over one field's value plus the failure
// message reported when it does not hold.
type Rule interface {
	Valid(value any) bool
	Message() string
}

// RuleFunc builds a Rule from a predicate and a fixed message.
func RuleFunc(valid func(value any) bool, message string) Rule {
	return &rule{valid: valid, message: message}
}

type rule struct {
	valid   func(value any) bool
	message string
}

func (r *rule) Valid(value any) bool {
	return r.valid(value)
}

func (r *rule) Message() string {
	return r.message
}

// Validator evaluates rule chains against a flat field/value map.
type Validator struct {
	data  map[string]any
	order []string
	rules map[string][]Rule
}

func New(data map[string]any) *Validator {
	v := &Validator{
		data:  make(map[string]any, len(data)),
		rules: make(map[string][]Rule),
	}
	for name, value := range data {
		v.data[name] = value
	}
	return v
}

// Field begins a rule chain for the named field.
func (v *Validator) Field(name string) *Field {
	return &Field{validator: v, name: name}
}

func (v *Validator) addRule(name string, r Rule) {
	if _, found := v.rules[name]; !found {
		v.order = append(v.order, name)
	}
	v.rules[name] = append(v.rules[name], r)
}

// Value returns the raw value of a field, or nil when absent.
func (v *Validator) Value(name string) any {
	return v.data[name]
}

func (v *Validator) Data() map[string]any {
	data := make(map[string]any, len(v.data))
	for name, value := range v.data {
		data[name] = value
	}
	return data
}

// Validate evaluates every field's rules in registration order.
// Evaluation of a field stops at its first failing rule.
func (v *Validator) Validate() *Result {
	result := NewResult()

	for _, name := range v.order {
		value := v.data[name]
		for _, r := range v.rules[name] {
			if !r.Valid(value) {
				result.AddError(name, r.Message())
				break
			}
		}
	}

	return result
}

// When registers the given rules only if the condition holds for the
// data under validation.
func (v *Validator) When(condition func(data map[string]any) bool, rules func()) {
	if condition(v.Data()) {
		rules()
	}
}

// WhenPresent registers the given rules only if the field has a value.
func (v *Validator) WhenPresent(name string, rules func()) {
	v.When(func(data map[string]any) bool {
		return data[name] != nil
	}, rules)
}

func (v *Validator) WhenAllPresent(names []string, rules func()) {
	v.When(func(data map[string]any) bool {
		for _, name := range names {
			if data[name] == nil {
				return false
			}
		}
		return true
	}, rules)
}

func (v *Validator) WhenAnyPresent(names []string, rules func()) {
	v.When(func(data map[string]any) bool {
		for _, name := range names {
			if data[name] != nil {
				return true
			}
		}
		return false
	}, rules)
}
