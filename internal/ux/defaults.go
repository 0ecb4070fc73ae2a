package ux

// SuggestNextSteps names the command most likely useful next, given the
// session state.
func SuggestNextSteps(authenticated bool, role string) string {
	if !authenticated {
		return "Run 'unbound auth login' to sign in, or 'unbound explore fests' to browse without an account"
	}

	switch role {
	case "Student":
		return "Run 'unbound student dashboard' or 'unbound explore events'"
	case "College":
		return "Run 'unbound college dashboard' or 'unbound fests create'"
	case "Admin":
		return "Run 'unbound admin dashboard' to review pending approvals"
	default:
		return "Run 'unbound auth status' to inspect your session"
	}
}
