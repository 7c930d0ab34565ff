package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Registration field names, in reporting order.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldName     = "name"
)

const (
	msgMissingField   = "Missing field"
	msgNotString      = "Incorrect field type: expected string"
	msgSurroundingWS  = "Cannot start or end with whitespace"
	msgTooShortFormat = "Must be at least %d characters long"
	msgTooLongFormat  = "Must be at most %d characters long"
	msgUsernameTaken  = "Username already taken"
)

// Sizes are counted in characters (runes). Passwords over 72 characters are refused;
// the hasher still truncates multibyte input to bcrypt's 72-byte limit.
const (
	minUsernameLen = 1
	maxUsernameLen = 17
	minPasswordLen = 5
	maxPasswordLen = 72
	maxNameLen     = 17
)

var (
	requiredFields = []string{FieldUsername, FieldPassword, FieldName}
	trimmedFields  = []string{FieldUsername, FieldPassword}
)

type sizeRule struct {
	field string
	min   int // 0 means unbounded
	max   int
}

func (r sizeRule) minTag() string { return fmt.Sprintf("min=%d", r.min) }
func (r sizeRule) maxTag() string { return fmt.Sprintf("max=%d", r.max) }

var sizeRules = []sizeRule{
	{field: FieldUsername, min: minUsernameLen, max: maxUsernameLen},
	{field: FieldPassword, min: minPasswordLen, max: maxPasswordLen},
	{field: FieldName, max: maxNameLen},
}

// SignupInput is a registration payload that passed validation.
type SignupInput struct {
	Username string
	Password string
	Name     string // trimmed
}

// Validator runs the registration checks in a fixed order and stops at the
// first violation, so the same payload always reports the same field.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks presence, type, surrounding whitespace and size, in that order.
// Every too-short violation is reported before any too-long one.
func (v *Validator) Validate(payload map[string]any) (SignupInput, error) {
	for _, f := range requiredFields {
		if _, ok := payload[f]; !ok {
			return SignupInput{}, NewValidationError(f, msgMissingField)
		}
	}

	values := make(map[string]string, len(requiredFields))
	for _, f := range requiredFields {
		s, ok := payload[f].(string)
		if !ok {
			return SignupInput{}, NewValidationError(f, msgNotString)
		}
		values[f] = s
	}

	for _, f := range trimmedFields {
		if strings.TrimSpace(values[f]) != values[f] {
			return SignupInput{}, NewValidationError(f, msgSurroundingWS)
		}
	}

	for _, r := range sizeRules {
		if r.min > 0 && v.validate.Var(strings.TrimSpace(values[r.field]), r.minTag()) != nil {
			return SignupInput{}, NewValidationError(r.field, fmt.Sprintf(msgTooShortFormat, r.min))
		}
	}
	for _, r := range sizeRules {
		if r.max > 0 && v.validate.Var(strings.TrimSpace(values[r.field]), r.maxTag()) != nil {
			return SignupInput{}, NewValidationError(r.field, fmt.Sprintf(msgTooLongFormat, r.max))
		}
	}

	return SignupInput{
		Username: values[FieldUsername],
		Password: values[FieldPassword],
		Name:     strings.TrimSpace(values[FieldName]),
	}, nil
}
