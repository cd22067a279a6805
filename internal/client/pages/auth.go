package pages

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gobarber/internal/client/forms"
	"github.com/dmitrijs2005/gobarber/internal/client/router"
	"github.com/dmitrijs2005/gobarber/internal/client/toast"
)

var errMissingToken = errors.New("missing reset token")

func (p *Pages) SignIn(ctx context.Context, in forms.SignIn) Outcome {
	if errs := forms.ValidateSignIn(in); !errs.Valid() {
		return invalid(errs)
	}

	if err := p.session.SignIn(ctx, in.Email, in.Password); err != nil {
		p.toasts.Add(toast.KindError, "Authentication failed", "Could not sign in, check your credentials.")
		return stay
	}
	return navigate(router.PathDashboard)
}

func (p *Pages) SignUp(ctx context.Context, in forms.SignUp) Outcome {
	if errs := forms.ValidateSignUp(in); !errs.Valid() {
		return invalid(errs)
	}

	if _, err := p.api.CreateUser(ctx, in.Name, in.Email, in.Password); err != nil {
		p.toasts.Add(toast.KindError, "Sign-up failed", "Could not create the account, please try again.")
		return stay
	}
	p.toasts.Add(toast.KindSuccess, "Account created", "You can now sign in.")
	return navigate(router.PathSignIn)
}

func (p *Pages) ForgotPassword(ctx context.Context, in forms.ForgotPassword) Outcome {
	if errs := forms.ValidateForgotPassword(in); !errs.Valid() {
		return invalid(errs)
	}

	if err := p.api.RecoverPassword(ctx, in.Email); err != nil {
		p.toasts.Add(toast.KindError, "Password recovery failed", "Could not request a password recovery, please try again.")
		return stay
	}
	p.toasts.Add(toast.KindSuccess, "Recovery e-mail sent", "Check your inbox for the password reset link.")
	return stay
}

// ResetPassword sets a new password with the token taken from the reset
// link. A missing token fails like any other remote error.
func (p *Pages) ResetPassword(ctx context.Context, token string, in forms.ResetPassword) Outcome {
	if errs := forms.ValidateResetPassword(in); !errs.Valid() {
		return invalid(errs)
	}

	err := errMissingToken
	if token != "" {
		err = p.api.ResetPassword(ctx, in.Password, in.PasswordConfirmation, token)
	}
	if err != nil {
		p.toasts.Add(toast.KindError, "Password reset failed", "Could not reset your password, please try again.")
		return stay
	}
	return navigate(router.PathSignIn)
}
