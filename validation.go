package identity

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Violation messages surfaced to clients.
const (
	MsgEmailRequired      = "Email is required"
	MsgInvalidEmailFormat = "Invalid email format"

	MsgNameRequired  = "Name is required"
	MsgNameMinLength = "Name must be at least 2 characters"

	MsgUsernameRequired  = "Username is required"
	MsgUsernameMinLength = "Username must be at least 2 characters"

	MsgPasswordRequired    = "Password is required"
	MsgPasswordMinLength   = "Password must be at least 10 characters"
	MsgPasswordUppercase   = "Must contain at least one uppercase letter"
	MsgPasswordLowercase   = "Must contain at least one lowercase letter"
	MsgPasswordDigit       = "Must contain at least one digit"
	MsgPasswordNonAlphanum = "Must contain at least one non-alphanumeric character"
)

var (
	reUppercase   = regexp.MustCompile(`[A-Z]`)
	reLowercase   = regexp.MustCompile(`[a-z]`)
	reDigit       = regexp.MustCompile(`[0-9]`)
	reNonAlphanum = regexp.MustCompile(`[^0-9a-zA-Z]`)
)

// Validate runs the registration rule set eagerly and returns one message
// per failed rule, in declaration order. Rules are evaluated one at a time
// because ozzo stops a rule chain at its first failure and a password can
// violate several rules at once.
func (r RegisterInput) Validate() []string {
	var violations []string

	check := func(value string, msg string, rule validation.Rule) {
		if err := validation.Validate(value, rule); err != nil {
			violations = append(violations, msg)
		}
	}

	check(r.Email, MsgEmailRequired, validation.Required)
	check(r.Email, MsgInvalidEmailFormat, is.Email)

	check(r.Name, MsgNameRequired, validation.Required)
	check(r.Name, MsgNameMinLength, validation.Length(2, 0))

	check(r.Username, MsgUsernameRequired, validation.Required)
	check(r.Username, MsgUsernameMinLength, validation.Length(2, 0))

	check(r.Password, MsgPasswordRequired, validation.Required)
	check(r.Password, MsgPasswordMinLength, validation.Length(10, 0))
	check(r.Password, MsgPasswordUppercase, validation.Match(reUppercase))
	check(r.Password, MsgPasswordLowercase, validation.Match(reLowercase))
	check(r.Password, MsgPasswordDigit, validation.Match(reDigit))
	check(r.Password, MsgPasswordNonAlphanum, validation.Match(reNonAlphanum))

	return violations
}

// Validate runs the login rule set. Password complexity is enforced only at
// creation time; login just requires a non-empty password.
func (r LoginInput) Validate() []string {
	var violations []string

	check := func(value string, msg string, rule validation.Rule) {
		if err := validation.Validate(value, rule); err != nil {
			violations = append(violations, msg)
		}
	}

	check(r.Email, MsgEmailRequired, validation.Required)
	check(r.Email, MsgInvalidEmailFormat, is.Email)
	check(r.Password, MsgPasswordRequired, validation.Required)

	return violations
}
