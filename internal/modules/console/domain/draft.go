package domain

import "adminConsole/internal/shared/validation"

// CheckDraft runs the struct constraints of form and then the domain rules in order. The
// first failure is returned as a ValidationError so the offending field can be highlighted.
func CheckDraft(form any, rules ...func() error) error {
	failures, err := validation.Struct(form)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		first := failures[0]
		return ValidationError{Field: first.Field, Msg: first.Message()}
	}
	for _, rule := range rules {
		if err := rule(); err != nil {
			return err
		}
	}
	return nil
}
