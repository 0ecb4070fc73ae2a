package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
	"github.com/ShubhamSPawade/unbound/internal/session"
	"github.com/ShubhamSPawade/unbound/internal/tui"
	"github.com/ShubhamSPawade/unbound/internal/ux"
)

// prompting reports whether missing input may be asked for interactively.
var prompting = tui.ShouldPrompt

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, register and manage your session",
		Long: `Manage your Unbound session.

The session token and user record are kept in the configured storage
(~/.unbound/storage.json by default) so later commands stay signed in.

Examples:
  unbound auth login --email student@demo.com
  unbound auth register --role College --email fest@college.edu
  unbound auth status
  unbound auth logout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newAuthLoginCmd(app),
		newAuthRegisterCmd(app),
		newAuthLogoutCmd(app),
		newAuthStatusCmd(app),
		newAuthForgotPasswordCmd(app),
		newAuthResetPasswordCmd(app),
		newAuthRedirectCmd(app),
	)
	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var creds tui.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in with email and password. Missing values are prompted for
when running in a terminal.

Examples:
  unbound auth login
  unbound auth login --email student@demo.com --password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (creds.Email == "" || creds.Password == "") && prompting() {
				if err := tui.Run(cmd.Context(), tui.LoginForm(&creds)); err != nil {
					return err
				}
			}

			s, err := app.Session.Login(cmd.Context(), creds.Email, creds.Password)
			if err != nil {
				return err
			}
			return app.printSession("Signed in", s)
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

type registerFlags struct {
	reg       tui.Registration
	collegeID int64
}

func newAuthRegisterCmd(app *App) *cobra.Command {
	var f registerFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student, college or admin account",
		Long: `Create an account and sign in with it.

Students give their name and optionally their college ID. Colleges give the
college name and may add a description, address and contact email.

Examples:
  unbound auth register
  unbound auth register --role Student --email ada@demo.com --name "Ada" \
    --password secret --confirm-password secret
  unbound auth register --role College --email fest@college.edu \
    --college-name "Demo College" --password secret --confirm-password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &f.reg.Request
			if cmd.Flags().Changed("role") {
				role, ok := session.ParseRole(req.Role)
				if !ok {
					return errors.NewValidationError(fmt.Sprintf("unknown role %q (want Student, College or Admin)", req.Role))
				}
				req.Role = string(role)
			}
			req.CollegeID = f.collegeID

			if (req.Email == "" || req.Password == "") && prompting() {
				if f.collegeID > 0 {
					f.reg.CollegeID = strconv.FormatInt(f.collegeID, 10)
				}
				if err := tui.Run(cmd.Context(), tui.RegisterForm(&f.reg)); err != nil {
					return err
				}
				if err := f.reg.Finish(); err != nil {
					return errors.NewValidationError(err.Error())
				}
			} else if cmd.Flags().Changed("confirm-password") {
				if err := session.ConfirmPassword(req.Password, f.reg.Confirmation); err != nil {
					return err
				}
			}

			s, err := app.Session.Register(cmd.Context(), *req)
			if err != nil {
				return err
			}
			return app.printSession("Account created", s)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.reg.Request.Role, "role", string(session.RoleStudent), "account role: Student, College or Admin")
	flags.StringVar(&f.reg.Request.Email, "email", "", "account email")
	flags.StringVar(&f.reg.Request.Password, "password", "", "account password")
	flags.StringVar(&f.reg.Confirmation, "confirm-password", "", "repeat the password")
	flags.StringVar(&f.reg.Request.SName, "name", "", "student name")
	flags.Int64Var(&f.collegeID, "college-id", 0, "student's college ID")
	flags.StringVar(&f.reg.Request.CName, "college-name", "", "college name")
	flags.StringVar(&f.reg.Request.CDescription, "description", "", "college description")
	flags.StringVar(&f.reg.Request.Address, "address", "", "college address")
	flags.StringVar(&f.reg.Request.ContactEmail, "contact-email", "", "college contact email")
	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Long: `End the session and remove the stored token and user record.
No backend call is made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prev := app.Session.CurrentUser()
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			if prev == nil {
				app.notice("Not signed in.")
				return nil
			}
			app.notice("Signed out %s.", prev.Email)
			return nil
		},
	}
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Session.State()
			return app.print(ux.WithText(state, func(w io.Writer, s ux.Styles) error {
				if !state.IsAuthenticated {
					fmt.Fprintln(w, s.Warning.Render("Not signed in"))
					fmt.Fprintln(w, s.Muted.Render(ux.SuggestNextSteps(false, "")))
					return nil
				}
				return renderSession(w, s, state.User, state.TokenFP)
			}))
		},
	}
}

func newAuthForgotPasswordCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Email a password reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" && prompting() {
				if err := tui.Run(cmd.Context(), tui.ForgotPasswordForm(&email)); err != nil {
					return err
				}
			}
			if err := app.Session.ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}
			res := messageResult{Success: true, Message: "Reset link sent to " + email}
			return app.print(ux.WithText(res, func(w io.Writer, s ux.Styles) error {
				_, err := fmt.Fprintln(w, s.Success.Render("✓")+" "+res.Message)
				return err
			}))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newAuthResetPasswordCmd(app *App) *cobra.Command {
	var reset tui.PasswordReset

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with the token from a reset link",
		Long: `Set a new password with the token from a reset link.

Examples:
  unbound auth reset-password --token abc123
  unbound auth reset-password --token abc123 --password new --confirm-password new`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (reset.Token == "" || reset.Password == "") && prompting() {
				if err := tui.Run(cmd.Context(), tui.ResetPasswordForm(&reset)); err != nil {
					return err
				}
			} else if cmd.Flags().Changed("confirm-password") {
				if err := session.ConfirmPassword(reset.Password, reset.Confirmation); err != nil {
					return err
				}
			}
			if err := app.Session.ResetPassword(cmd.Context(), reset.Token, reset.Password); err != nil {
				return err
			}
			app.notice("Password updated. Sign in with 'unbound auth login'.")
			return nil
		},
	}

	cmd.Flags().StringVar(&reset.Token, "token", "", "token from the reset link")
	cmd.Flags().StringVar(&reset.Password, "password", "", "new password")
	cmd.Flags().StringVar(&reset.Confirmation, "confirm-password", "", "repeat the new password")
	return cmd
}

type redirectResult struct {
	Role string `json:"role" yaml:"role"`
	Path string `json:"path" yaml:"path"`
}

func newAuthRedirectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redirect [role]",
		Short: "Print the landing path for a role",
		Long: `Print the landing path for a role, or for the signed-in role when none
is given. Unknown roles land on "/".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := ""
			if len(args) == 1 {
				role = args[0]
			} else if u := app.Session.CurrentUser(); u != nil {
				role = string(u.Role)
			}
			res := redirectResult{Role: role, Path: app.Session.RedirectPath(role)}
			return app.print(ux.WithText(res, func(w io.Writer, _ ux.Styles) error {
				_, err := fmt.Fprintln(w, res.Path)
				return err
			}))
		},
	}
}

// sessionView is what login and register print.
type sessionView struct {
	User     *session.Session `json:"user" yaml:"user"`
	Redirect string           `json:"redirect" yaml:"redirect"`
}

func (a *App) printSession(headline string, s *session.Session) error {
	view := sessionView{User: s, Redirect: session.RedirectPath(string(s.Role))}
	fp := gateway.Fingerprint(a.Client.Token())
	return a.print(ux.WithText(view, func(w io.Writer, st ux.Styles) error {
		fmt.Fprintf(w, "%s %s as %s\n", st.Success.Render("✓"), headline, s.DisplayName())
		if err := renderSession(w, st, s, fp); err != nil {
			return err
		}
		fmt.Fprintln(w, st.Muted.Render(ux.SuggestNextSteps(true, string(s.Role))))
		return nil
	}))
}

func renderSession(w io.Writer, s ux.Styles, u *session.Session, tokenFP string) error {
	approved := ""
	if u.IsApproved != nil {
		approved = strconv.FormatBool(*u.IsApproved)
	}
	collegeID := ""
	if u.CollegeID > 0 {
		collegeID = strconv.FormatInt(u.CollegeID, 10)
	}
	return ux.RenderFields(w, s,
		ux.Field{Label: "Email", Value: u.Email},
		ux.Field{Label: "Role", Value: string(u.Role)},
		ux.Field{Label: "Name", Value: u.SName},
		ux.Field{Label: "College", Value: u.CName},
		ux.Field{Label: "College ID", Value: collegeID},
		ux.Field{Label: "Approved", Value: approved},
		ux.Field{Label: "Dashboard", Value: session.RedirectPath(string(u.Role))},
		ux.Field{Label: "Token", Value: tokenFP},
	)
}
