package session

// Session is the authenticated principal. It is persisted as JSON under the
// "user" storage key. The token is not part of it; it lives in the gateway.
type Session struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Email        string `json:"email" yaml:"email"`
	Role         Role   `json:"role" yaml:"role"`
	SName        string `json:"sname,omitempty" yaml:"sname,omitempty"`
	CName        string `json:"cname,omitempty" yaml:"cname,omitempty"`
	CollegeID    int64  `json:"collegeId,omitempty" yaml:"collegeId,omitempty"`
	CDescription string `json:"cdescription,omitempty" yaml:"cdescription,omitempty"`
	Address      string `json:"address,omitempty" yaml:"address,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty"`
	IsApproved   *bool  `json:"isApproved,omitempty" yaml:"isApproved,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// DisplayName returns the student or college name, whichever applies.
func (s *Session) DisplayName() string {
	switch {
	case s.Role == RoleCollege && s.CName != "":
		return s.CName
	case s.SName != "":
		return s.SName
	case s.CName != "":
		return s.CName
	default:
		return s.Email
	}
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.IsApproved != nil {
		v := *s.IsApproved
		c.IsApproved = &v
	}
	return &c
}

func (s *Session) valid() bool {
	return s != nil && s.Email != "" && s.Role != ""
}

// State is a snapshot of the authentication state.
type State struct {
	User            *Session `json:"user" yaml:"user"`
	Token           string   `json:"-" yaml:"-"`
	TokenFP         string   `json:"token_fp,omitempty" yaml:"token_fp,omitempty"`
	IsAuthenticated bool     `json:"isAuthenticated" yaml:"isAuthenticated"`
}
