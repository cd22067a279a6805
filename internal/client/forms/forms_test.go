package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignIn(t *testing.T) {
	tests := []struct {
		name   string
		in     SignIn
		fields []string
	}{
		{name: "valid", in: SignIn{Email: "john@example.com", Password: "secret"}},
		{name: "both empty", in: SignIn{}, fields: []string{"email", "password"}},
		{name: "bad email", in: SignIn{Email: "not-an-email", Password: "x"}, fields: []string{"email"}},
		{name: "display name is not an email", in: SignIn{Email: "John <john@example.com>", Password: "x"}, fields: []string{"email"}},
		{name: "blank password", in: SignIn{Email: "john@example.com", Password: "   "}, fields: []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSignIn(tt.in)
			if tt.fields == nil {
				assert.True(t, errs.Valid(), errs)
				return
			}
			assert.Equal(t, tt.fields, errs.Fields())
		})
	}
}

func TestValidateSignIn_Messages(t *testing.T) {
	errs := ValidateSignIn(SignIn{})
	assert.Equal(t, "E-mail is required", errs[FieldEmail])
	assert.Equal(t, "Password is required", errs[FieldPassword])

	errs = ValidateSignIn(SignIn{Email: "nope", Password: "x"})
	assert.Equal(t, "Enter a valid e-mail", errs[FieldEmail])
}

func TestValidateSignUp(t *testing.T) {
	assert.True(t, ValidateSignUp(SignUp{Name: "John", Email: "john@example.com", Password: "123456"}).Valid())

	errs := ValidateSignUp(SignUp{Email: "john@example.com", Password: "12345"})
	assert.Equal(t, []string{"name", "password"}, errs.Fields())
	assert.Equal(t, "At least 6 characters", errs[FieldPassword])

	// length is counted in characters, not bytes
	assert.Equal(t, []string{"password"}, ValidateSignUp(SignUp{Name: "Ana", Email: "ana@example.com", Password: "ééééé"}).Fields())
}

func TestValidateForgotPassword(t *testing.T) {
	assert.True(t, ValidateForgotPassword(ForgotPassword{Email: "john@example.com"}).Valid())
	assert.Equal(t, []string{"email"}, ValidateForgotPassword(ForgotPassword{}).Fields())
}

func TestValidateResetPassword(t *testing.T) {
	assert.True(t, ValidateResetPassword(ResetPassword{Password: "abc", PasswordConfirmation: "abc"}).Valid())

	errs := ValidateResetPassword(ResetPassword{Password: "abc", PasswordConfirmation: "abd"})
	assert.Equal(t, []string{"password_confirmation"}, errs.Fields())

	errs = ValidateResetPassword(ResetPassword{})
	assert.Equal(t, []string{"password"}, errs.Fields())
}

func TestValidateProfile(t *testing.T) {
	base := Profile{Name: "John", Email: "john@example.com"}

	assert.True(t, ValidateProfile(base).Valid())
	assert.False(t, base.ChangesPassword())

	// password fields are ignored without the current password
	withoutCurrent := base
	withoutCurrent.NewPassword = "x"
	assert.True(t, ValidateProfile(withoutCurrent).Valid())

	missing := base
	missing.CurrentPassword = "old"
	assert.Equal(t, []string{"new_password", "password_confirmation"}, ValidateProfile(missing).Fields())

	mismatch := missing
	mismatch.NewPassword = "new-one"
	mismatch.PasswordConfirmation = "new-two"
	errs := ValidateProfile(mismatch)
	assert.Equal(t, []string{"password_confirmation"}, errs.Fields())
	assert.Equal(t, "Confirmation does not match", errs[FieldPasswordConfirmation])

	ok := mismatch
	ok.PasswordConfirmation = "new-one"
	assert.True(t, ValidateProfile(ok).Valid())

	assert.Equal(t, []string{"email", "name"}, ValidateProfile(Profile{}).Fields())
}
