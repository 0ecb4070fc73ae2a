package session

import (
	"fmt"
	"net/mail"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/gateway"
)

// ConfirmPassword fails with INPUT-002 when the two entries differ. Callers
// run it before any backend call.
func ConfirmPassword(password, confirmation string) error {
	if password != confirmation {
		return errors.NewPasswordMismatchError()
	}
	return nil
}

// ValidateEmail checks that s parses as a bare address.
func ValidateEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errors.NewValidationError(fmt.Sprintf("%q is not a valid email address", s))
	}
	return nil
}

// ValidateRegistration checks the fields the backend requires per role.
func ValidateRegistration(req gateway.RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return errors.NewValidationError("email and password are required")
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}

	switch Role(req.Role) {
	case RoleStudent:
		if req.SName == "" {
			return errors.NewValidationError("student name is required")
		}
	case RoleCollege:
		if req.CName == "" {
			return errors.NewValidationError("college name is required")
		}
		if req.ContactEmail != "" {
			if err := ValidateEmail(req.ContactEmail); err != nil {
				return err
			}
		}
	case RoleAdmin:
	default:
		return errors.NewValidationError(fmt.Sprintf("unknown role %q (want Student, College or Admin)", req.Role))
	}
	return nil
}
