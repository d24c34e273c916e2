package validation

// RuleSet is a reusable, named bundle of rules that can be replayed
// against any data set.
type RuleSet interface {
	Define(v *Validator)
}

// Apply runs a rule set against the given data.
func Apply(rs RuleSet, data map[string]any) *Result {
	v := New(data)
	rs.Define(v)
	return v.Validate()
}
