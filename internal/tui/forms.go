package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/session"
)

// Credentials is the result of the login form.
type Credentials struct {
	Email    string
	Password string
}

// LoginForm asks for email and password. Fields already set in c are
// used as defaults.
func LoginForm(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(validEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(required("password")),
		).Title("Log in to Unbound"),
	)
}

// Registration is the result of the register form.
type Registration struct {
	Request      gateway.RegisterRequest
	Confirmation string
	CollegeID    string
}

// RegisterForm asks for the account fields, then the fields for the chosen
// role. Student and college groups are hidden for other roles.
func RegisterForm(r *Registration) *huh.Form {
	if r.Request.Role == "" {
		r.Request.Role = string(session.RoleStudent)
	}
	isRole := func(role session.Role) func() bool {
		return func() bool { return r.Request.Role != string(role) }
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("I am registering as").
				Options(roleOptions()...).
				Value(&r.Request.Role),
			huh.NewInput().
				Title("Email").
				Value(&r.Request.Email).
				Validate(validEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&r.Request.Password).
				Validate(required("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&r.Confirmation).
				Validate(func(s string) error {
					return session.ConfirmPassword(r.Request.Password, s)
				}),
		).Title("Create an account"),

		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Value(&r.Request.SName).
				Validate(required("name")),
		).WithHideFunc(isRole(session.RoleStudent)),

		huh.NewGroup(
			huh.NewInput().
				Title("College name").
				Value(&r.Request.CName).
				Validate(required("college name")),
			huh.NewInput().
				Title("College ID").
				Description("Optional numeric identifier").
				Value(&r.CollegeID).
				Validate(optionalID),
			huh.NewText().
				Title("Description").
				Value(&r.Request.CDescription),
			huh.NewInput().
				Title("Address").
				Value(&r.Request.Address),
			huh.NewInput().
				Title("Contact email").
				Value(&r.Request.ContactEmail).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return validEmail(s)
				}),
		).WithHideFunc(isRole(session.RoleCollege)),
	)
}

// Finish copies derived fields into the request after the form completes.
func (r *Registration) Finish() error {
	id, err := parseOptionalID(r.CollegeID)
	if err != nil {
		return err
	}
	r.Request.CollegeID = id
	return nil
}

// PasswordReset is the result of the reset form.
type PasswordReset struct {
	Token        string
	Password     string
	Confirmation string
}

// ResetPasswordForm asks for the reset token (when not already known) and
// the new password twice.
func ResetPasswordForm(p *PasswordReset) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reset token").
				Description("From the link in the reset email").
				Value(&p.Token).
				Validate(required("reset token")),
		).WithHideFunc(func() bool { return p.Token != "" }),
		huh.NewGroup(
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&p.Password).
				Validate(required("password")),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&p.Confirmation).
				Validate(func(s string) error {
					return session.ConfirmPassword(p.Password, s)
				}),
		).Title("Choose a new password"),
	)
}

// Run runs form until it completes or ctx is cancelled.
func Run(ctx context.Context, form *huh.Form) error {
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func roleOptions() []huh.Option[string] {
	roles := session.Roles()
	opts := make([]huh.Option[string], len(roles))
	for i, r := range roles {
		opts[i] = huh.NewOption(string(r), string(r))
	}
	return opts
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validEmail(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("email is required")
	}
	return session.ValidateEmail(s)
}

func optionalID(s string) error {
	_, err := parseOptionalID(s)
	return err
}

func parseOptionalID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("college ID must be a positive number")
	}
	return id, nil
}
