// Package tui holds the interactive terminal pieces: huh forms for the
// credential workflows and a bubbletea table browser.
package tui

import (
	"os"

	"github.com/charmbracelet/huh"
)

// automationEnv names variables set by CI runners. Forms never open when
// one of them is present, so a missing flag fails fast instead of hanging.
var automationEnv = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
}

// stdinIsTerminal reports whether stdin is a character device.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// ShouldPrompt reports whether missing credentials may be asked for.
func ShouldPrompt() bool {
	for _, name := range automationEnv {
		if os.Getenv(name) != "" {
			return false
		}
	}
	return stdinIsTerminal()
}

// ForgotPasswordForm asks for the account email a reset link goes to.
func ForgotPasswordForm(email *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("A reset link is sent if the account exists.").
				Value(email).
				Validate(validEmail),
		).Title("Reset your password"),
	)
}
