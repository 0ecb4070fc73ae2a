// Package exitcode maps errors to process exit codes.
package exitcode

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid usage or input (bad flags, failed validation, bad config)
	UsageError = 2

	// BackendError indicates the backend answered with a failure
	BackendError = 3

	// StorageError indicates local session storage could not be used
	StorageError = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates the backend could not be reached
	NetworkError = 6

	// TimeoutError indicates the backend did not answer in time
	TimeoutError = 7

	// Interrupted indicates the user cancelled (SIGINT)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode returns the exit code for err. Coded errors map by
// family; anything else falls back to matching the message.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}
	if stderrors.Is(err, context.Canceled) {
		return Interrupted
	}

	if ue, ok := errors.As(err); ok {
		return fromCode(ue)
	}
	return fromMessage(err.Error())
}

func fromCode(ue *errors.UnboundError) int {
	code := string(ue.Code)
	switch {
	case ue.Code == errors.ErrCodeRequestTimeout:
		return TimeoutError
	case strings.HasPrefix(code, "NET-"):
		return NetworkError
	case strings.HasPrefix(code, "HTTP-"):
		if ue.StatusCode == 401 || ue.StatusCode == 403 {
			return AuthError
		}
		return BackendError
	case strings.HasPrefix(code, "AUTH-"):
		return AuthError
	case strings.HasPrefix(code, "INPUT-"), strings.HasPrefix(code, "CONFIG-"):
		return UsageError
	case strings.HasPrefix(code, "STORE-"):
		return StorageError
	default:
		return GeneralError
	}
}

func fromMessage(msg string) int {
	msg = strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "unknown command"),
		strings.Contains(msg, "unknown flag"),
		strings.Contains(msg, "unknown shorthand flag"),
		strings.Contains(msg, "invalid argument"),
		strings.Contains(msg, "required flag"),
		strings.Contains(msg, "accepts "),
		strings.Contains(msg, "unknown format"),
		strings.Contains(msg, "--query"):
		return UsageError
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "not logged in"):
		return AuthError
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return TimeoutError
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return NetworkError
	default:
		return GeneralError
	}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or configuration)"
	case BackendError:
		return "Backend error"
	case StorageError:
		return "Session storage error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case TimeoutError:
		return "Request timeout"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
