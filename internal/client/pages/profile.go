package pages

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/gobarber/internal/client/api"
	"github.com/dmitrijs2005/gobarber/internal/client/forms"
	"github.com/dmitrijs2005/gobarber/internal/client/router"
	"github.com/dmitrijs2005/gobarber/internal/client/toast"
)

func (p *Pages) UpdateProfile(ctx context.Context, in forms.Profile) Outcome {
	if errs := forms.ValidateProfile(in); !errs.Valid() {
		return invalid(errs)
	}

	req := api.ProfileUpdate{Name: in.Name, Email: in.Email}
	if in.ChangesPassword() {
		req.CurrentPassword = in.CurrentPassword
		req.NewPassword = in.NewPassword
		req.PasswordConfirmation = in.PasswordConfirmation
	}

	user, err := p.api.UpdateProfile(ctx, req)
	if err != nil {
		p.toasts.Add(toast.KindError, "Profile update failed", "Could not update your profile, please try again.")
		return stay
	}

	p.session.UpdateUser(ctx, user)
	p.toasts.Add(toast.KindSuccess, "Profile updated", "Your profile was updated.")
	return navigate(router.PathDashboard)
}

// UpdateAvatar uploads the image at path as the user's avatar. Files that
// are not images are rejected before anything is sent.
func (p *Pages) UpdateAvatar(ctx context.Context, path string) Outcome {
	if err := p.uploadAvatar(ctx, path); err != nil {
		p.toasts.Add(toast.KindError, "Avatar update failed", err.Error())
		return stay
	}
	p.toasts.Add(toast.KindSuccess, "Avatar updated", "")
	return stay
}

func (p *Pages) uploadAvatar(ctx context.Context, path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s", path)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return fmt.Errorf("%s is not an image (%s)", path, mt.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not read %s", path)
	}
	defer f.Close()

	user, err := p.api.UpdateAvatar(ctx, path, mt.String(), f)
	if err != nil {
		return errors.New("the upload was rejected, please try again")
	}

	p.session.UpdateUser(ctx, user)
	return nil
}
