package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/solivera/gatekeeper/internal/platform/httpx"
)

// SignupInput carries the raw signup request fields.
type SignupInput struct {
	FullName string `json:"fullName" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// LoginInput carries the raw login request fields.
type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// passwordSpecials is the fixed special-character set a password may (and
// must, at least once) draw from.
const passwordSpecials = "@$!%*?&"

// Validator performs syntactic checks on signup and login input. It does no
// I/O, and all field failures for one request are collected and returned
// together rather than short-circuiting on the first.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs a Validator with the password rule registered.
func NewValidator() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("password", validPassword); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// ValidateSignup checks signup input and returns it normalized: full name
// trimmed, email canonical.
func (v *Validator) ValidateSignup(in SignupInput) (SignupInput, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = CanonicalEmail(in.Email)
	if err := v.validate.Struct(in); err != nil {
		return SignupInput{}, fieldErrors(err)
	}
	return in, nil
}

// ValidateLogin checks login input. The password is only checked for
// presence; whether it matches is the service's business.
func (v *Validator) ValidateLogin(in LoginInput) (LoginInput, error) {
	in.Email = CanonicalEmail(in.Email)
	if err := v.validate.Struct(in); err != nil {
		return LoginInput{}, fieldErrors(err)
	}
	return in, nil
}

// CanonicalEmail normalizes an email address into its store-key form:
// trimmed, NFKC-normalized, lowercased. The mapping is idempotent.
func CanonicalEmail(raw string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(raw)))
}

// validPassword enforces the password grammar: at least 8 characters with one
// lowercase letter, one uppercase letter, one digit and one special
// character, and nothing outside those classes.
func validPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func fieldErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &httpx.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, httpx.FieldError{
			Field:   fieldName(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "FullName":
		return "fullName"
	case "Email":
		return "email"
	case "Password":
		return "password"
	default:
		return strings.ToLower(structField)
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "FullName":
		return "full name must be between 3 and 100 characters"
	case "Email":
		return "invalid email address"
	case "Password":
		if fe.Tag() == "required" {
			return "password is required"
		}
		return "password must be at least 8 characters with one lowercase letter, one uppercase letter, one digit and one special character"
	default:
		return "invalid value"
	}
}
