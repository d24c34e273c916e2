package validation

// Result accumulates validation failures per field, in the order fields
// were evaluated.
type Result struct {
	order  []string
	errors map[string][]string
}

func NewResult() *Result {
	return &Result{
		errors: make(map[string][]string),
	}
}

func (r *Result) AddError(field string, message string) {
	if _, found := r.errors[field]; !found {
		r.order = append(r.order, field)
	}
	r.errors[field] = append(r.errors[field], message)
}

func (r *Result) IsValid() bool {
	return len(r.errors) == 0
}

func (r *Result) Failed() bool {
	return !r.IsValid()
}

// Errors returns all messages recorded for a field, empty when none.
func (r *Result) Errors(field string) []string {
	return r.errors[field]
}

// FirstError returns the first message for a field, or "" when none.
func (r *Result) FirstError(field string) string {
	messages := r.errors[field]
	if len(messages) == 0 {
		return ""
	}
	return messages[0]
}

func (r *Result) AllErrors() map[string][]string {
	all := make(map[string][]string, len(r.errors))
	for field, messages := range r.errors {
		all[field] = append([]string(nil), messages...)
	}
	return all
}

// FirstErrors maps each failed field to its first message.
func (r *Result) FirstErrors() map[string]string {
	first := make(map[string]string, len(r.errors))
	for field, messages := range r.errors {
		if len(messages) > 0 {
			first[field] = messages[0]
		}
	}
	return first
}

func (r *Result) HasError(field string) bool {
	return len(r.errors[field]) > 0
}

func (r *Result) ErrorCount() int {
	count := 0
	for _, messages := range r.errors {
		count += len(messages)
	}
	return count
}

// OnSuccess runs the callback when validation passed.
func (r *Result) OnSuccess(callback func()) *Result {
	if r.IsValid() {
		callback()
	}
	return r
}

// OnFailure runs the callback with all errors when validation failed.
func (r *Result) OnFailure(callback func(errors map[string][]string)) *Result {
	if r.Failed() {
		callback(r.AllErrors())
	}
	return r
}

// Fold projects the result into a single value.
func (r *Result) Fold(onSuccess func() any, onFailure func(errors map[string][]string) any) any {
	if r.IsValid() {
		return onSuccess()
	}
	return onFailure(r.AllErrors())
}

// Merge folds another result's errors into this one.
func (r *Result) Merge(other *Result) *Result {
	for _, field := range other.order {
		for _, message := range other.errors[field] {
			r.AddError(field, message)
		}
	}
	return r
}
