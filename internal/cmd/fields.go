package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/session"
)

// require fails unless the session has one of roles.
func (a *App) require(roles ...session.Role) error {
	_, err := a.Session.RequireRole(roles...)
	return err
}

// requireRole is a PreRunE-style guard shared by a command group.
func requireRole(app *App, roles ...session.Role) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		return app.require(roles...)
	}
}

// guard attaches a role check to every leaf command under cmd. Group
// commands only print help and stay unguarded.
func guard(cmd *cobra.Command, check func(*cobra.Command, []string) error) *cobra.Command {
	for _, c := range cmd.Commands() {
		guard(c, check)
	}
	if !cmd.HasSubCommands() && cmd.RunE != nil && cmd.PreRunE == nil {
		cmd.PreRunE = check
	}
	return cmd
}

// parseID parses a positional numeric ID.
func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must be a positive number, got %q", name, s))
	}
	return id, nil
}

// changedFields collects the flags the user set, keyed by the backend field
// name in names. Values keep the flag's type.
func changedFields(cmd *cobra.Command, names map[string]string) (map[string]any, error) {
	fields := map[string]any{}
	var firstErr error

	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := names[f.Name]
		if !ok || firstErr != nil {
			return
		}
		v, err := flagValue(f)
		if err != nil {
			firstErr = err
			return
		}
		fields[key] = v
	})
	if firstErr != nil {
		return nil, firstErr
	}
	if len(fields) == 0 {
		return nil, errors.NewValidationError("nothing to update; set at least one field flag")
	}
	return fields, nil
}

func flagValue(f *pflag.Flag) (any, error) {
	s := f.Value.String()
	switch f.Value.Type() {
	case "bool":
		return strconv.ParseBool(s)
	case "int", "int64":
		return strconv.ParseInt(s, 10, 64)
	case "float64":
		return strconv.ParseFloat(s, 64)
	default:
		return s, nil
	}
}

// openUpload opens a file for a multipart upload.
func openUpload(path string) (*os.File, string, error) {
	if path == "" {
		return nil, "", errors.NewValidationError("--file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeValidation, "cannot open upload", err)
	}
	return f, filepath.Base(path), nil
}
