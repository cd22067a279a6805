package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
)

type (
	credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	sessionResponse struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}

	newUser struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	recovery struct {
		Email string `json:"email"`
	}

	reset struct {
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
		Token                string `json:"token"`
	}

	monthQuery struct {
		Year  int `schema:"year"`
		Month int `schema:"month"`
	}

	dayQuery struct {
		Year  int `schema:"year"`
		Month int `schema:"month"`
		Day   int `schema:"day"`
	}
)

// ProfileUpdate is the body of PUT /profile. The password fields are sent only
// when CurrentPassword is set.
type ProfileUpdate struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	CurrentPassword      string `json:"current_password,omitempty"`
	NewPassword          string `json:"new_password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// CreateSession exchanges email and password for the user record and a
// bearer token. It does not attach the token; see SetToken.
func (c *Client) CreateSession(ctx context.Context, email, password string) (models.User, string, error) {
	req, err := c.newRequest(http.MethodPost, "sessions", nil, &credentials{Email: email, Password: password})
	if err != nil {
		return models.User{}, "", err
	}
	var resp sessionResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return models.User{}, "", err
	}
	if resp.Token == "" {
		return models.User{}, "", fmt.Errorf("decoding response: empty token")
	}
	return resp.User, resp.Token, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	req, err := c.newRequest(http.MethodPost, "users", nil, &newUser{Name: name, Email: email, Password: password})
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	if err := c.do(ctx, req, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// RecoverPassword asks the API to email a password reset link.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	req, err := c.newRequest(http.MethodPost, "password/recovery", nil, &recovery{Email: email})
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// ResetPassword sets a new password using the token from the reset link.
func (c *Client) ResetPassword(ctx context.Context, password, confirmation, token string) error {
	req, err := c.newRequest(http.MethodPatch, "password/reset", nil, &reset{
		Password:             password,
		PasswordConfirmation: confirmation,
		Token:                token,
	})
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// UpdateProfile changes the signed-in user's profile and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, p ProfileUpdate) (models.User, error) {
	if p.CurrentPassword == "" {
		p.NewPassword, p.PasswordConfirmation = "", ""
	}
	req, err := c.newRequest(http.MethodPut, "profile", nil, &p)
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	if err := c.do(ctx, req, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateAvatar uploads an image as the multipart field "avatar" and returns
// the updated user.
func (c *Client) UpdateAvatar(ctx context.Context, filename string, contentType string, r io.Reader) (models.User, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreatePart(avatarHeader(filepath.Base(filename), contentType))
	if err != nil {
		return models.User{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.User{}, fmt.Errorf("reading avatar: %w", err)
	}
	if err := mw.Close(); err != nil {
		return models.User{}, err
	}

	req, err := c.newUploadRequest(http.MethodPatch, "users/avatar", mw.FormDataContentType(), &body)
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	if err := c.do(ctx, req, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// MonthAvailability lists, per day of month, whether the provider has free slots.
func (c *Client) MonthAvailability(ctx context.Context, providerID string, year int, month time.Month) ([]models.DayAvailability, error) {
	path := "providers/" + url.PathEscape(providerID) + "/month-availability"
	req, err := c.newRequest(http.MethodGet, path, &monthQuery{Year: year, Month: int(month)}, nil)
	if err != nil {
		return nil, err
	}
	var days []models.DayAvailability
	if err := c.do(ctx, req, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// DaySchedule lists the signed-in provider's appointments of a day.
func (c *Client) DaySchedule(ctx context.Context, year int, month time.Month, day int) ([]models.Appointment, error) {
	req, err := c.newRequest(http.MethodGet, "appointments/schedule", &dayQuery{Year: year, Month: int(month), Day: day}, nil)
	if err != nil {
		return nil, err
	}
	var appointments []models.Appointment
	if err := c.do(ctx, req, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
