// Package forms validates user input before it reaches the network. A
// validation never fails; it returns the field errors it found.
package forms

import (
	"net/mail"
	"sort"
	"strings"
)

// Field names shared by the validators and the pages that render them.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldCurrentPassword      = "current_password"
	FieldNewPassword          = "new_password"
)

const MinPasswordLength = 6

// Errors maps a field name to the first problem found with it.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the offending field names in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		e.add(field, msg)
		return false
	}
	return true
}

func (e Errors) email(field, value string) {
	if !e.required(field, value, "E-mail is required") {
		return
	}
	if !validEmail(value) {
		e.add(field, "Enter a valid e-mail")
	}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// ParseAddress accepts "Name <a@b>"; only a bare address is an e-mail here
	return addr.Address == strings.TrimSpace(s) && strings.Contains(addr.Address, "@")
}

type SignIn struct {
	Email    string
	Password string
}

func ValidateSignIn(in SignIn) Errors {
	errs := Errors{}
	errs.email(FieldEmail, in.Email)
	errs.required(FieldPassword, in.Password, "Password is required")
	return errs
}

type SignUp struct {
	Name     string
	Email    string
	Password string
}

func ValidateSignUp(in SignUp) Errors {
	errs := Errors{}
	errs.required(FieldName, in.Name, "Name is required")
	errs.email(FieldEmail, in.Email)
	if len([]rune(in.Password)) < MinPasswordLength {
		errs.add(FieldPassword, "At least 6 characters")
	}
	return errs
}

type ForgotPassword struct {
	Email string
}

func ValidateForgotPassword(in ForgotPassword) Errors {
	errs := Errors{}
	errs.email(FieldEmail, in.Email)
	return errs
}

type ResetPassword struct {
	Password             string
	PasswordConfirmation string
}

func ValidateResetPassword(in ResetPassword) Errors {
	errs := Errors{}
	errs.required(FieldPassword, in.Password, "Password is required")
	if in.PasswordConfirmation != in.Password {
		errs.add(FieldPasswordConfirmation, "Confirmation does not match")
	}
	return errs
}

type Profile struct {
	Name                 string
	Email                string
	CurrentPassword      string
	NewPassword          string
	PasswordConfirmation string
}

// ChangesPassword reports whether the password triple should be sent.
func (p Profile) ChangesPassword() bool {
	return p.CurrentPassword != ""
}

func ValidateProfile(in Profile) Errors {
	errs := Errors{}
	errs.required(FieldName, in.Name, "Name is required")
	errs.email(FieldEmail, in.Email)

	if !in.ChangesPassword() {
		return errs
	}
	errs.required(FieldNewPassword, in.NewPassword, "New password is required")
	if errs.required(FieldPasswordConfirmation, in.PasswordConfirmation, "Confirmation is required") &&
		in.PasswordConfirmation != in.NewPassword {
		errs.add(FieldPasswordConfirmation, "Confirmation does not match")
	}
	return errs
}
