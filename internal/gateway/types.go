package gateway

// AuthPayload is what the auth endpoints return, wrapped or not.
type AuthPayload struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
	SName string `json:"sname,omitempty"`
	CName string `json:"cname,omitempty"`
}

// AuthResult is the reconciled result of Login and Register.
type AuthResult struct {
	Success bool
	Payload AuthPayload
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	SName        string `json:"sname,omitempty"`
	CollegeID    int64  `json:"collegeId,omitempty"`
	CName        string `json:"cname,omitempty"`
	CDescription string `json:"cdescription,omitempty"`
	Address      string `json:"address,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// Event is a single competition or activity.
type Event struct {
	ID                   int64   `json:"id,omitempty" yaml:"id,omitempty"`
	EName                string  `json:"ename" yaml:"ename"`
	EDescription         string  `json:"edescription" yaml:"edescription"`
	EventDate            string  `json:"eventDate" yaml:"eventDate"`
	Fees                 float64 `json:"fees" yaml:"fees"`
	Location             string  `json:"location" yaml:"location"`
	Capacity             int     `json:"capacity" yaml:"capacity"`
	TeamIsAllowed        bool    `json:"teamIsAllowed" yaml:"teamIsAllowed"`
	Category             string  `json:"category" yaml:"category"`
	Mode                 string  `json:"mode" yaml:"mode"`
	Status               string  `json:"status,omitempty" yaml:"status,omitempty"`
	FID                  int64   `json:"fid,omitempty" yaml:"fid,omitempty"`
	CashPrize            string  `json:"cashPrize,omitempty" yaml:"cashPrize,omitempty"`
	FirstPrize           string  `json:"firstPrize,omitempty" yaml:"firstPrize,omitempty"`
	SecondPrize          string  `json:"secondPrize,omitempty" yaml:"secondPrize,omitempty"`
	ThirdPrize           string  `json:"thirdPrize,omitempty" yaml:"thirdPrize,omitempty"`
	City                 string  `json:"city" yaml:"city"`
	State                string  `json:"state" yaml:"state"`
	Country              string  `json:"country" yaml:"country"`
	EventWebsite         string  `json:"eventWebsite,omitempty" yaml:"eventWebsite,omitempty"`
	ContactPhone         string  `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`
	OrganizerName        string  `json:"organizerName,omitempty" yaml:"organizerName,omitempty"`
	OrganizerEmail       string  `json:"organizerEmail,omitempty" yaml:"organizerEmail,omitempty"`
	OrganizerPhone       string  `json:"organizerPhone,omitempty" yaml:"organizerPhone,omitempty"`
	Rules                string  `json:"rules,omitempty" yaml:"rules,omitempty"`
	Requirements         string  `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	RegistrationDeadline string  `json:"registrationDeadline" yaml:"registrationDeadline"`
}

// Fest groups events under one festival.
type Fest struct {
	ID           int64  `json:"id,omitempty" yaml:"id,omitempty"`
	FName        string `json:"fname" yaml:"fname"`
	FDescription string `json:"fdescription" yaml:"fdescription"`
	StartDate    string `json:"startDate" yaml:"startDate"`
	EndDate      string `json:"endDate" yaml:"endDate"`
	City         string `json:"city" yaml:"city"`
	State        string `json:"state" yaml:"state"`
	Country      string `json:"country" yaml:"country"`
	Mode         string `json:"mode" yaml:"mode"`
	Website      string `json:"website,omitempty" yaml:"website,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`
	Status       string `json:"status,omitempty" yaml:"status,omitempty"`
}

// DashboardStats are the counters shown on college and admin dashboards.
// Absent counters stay nil.
type DashboardStats struct {
	TotalEvents        *int     `json:"totalEvents,omitempty" yaml:"totalEvents,omitempty"`
	TotalFests         *int     `json:"totalFests,omitempty" yaml:"totalFests,omitempty"`
	TotalRegistrations *int     `json:"totalRegistrations,omitempty" yaml:"totalRegistrations,omitempty"`
	TotalRevenue       *float64 `json:"totalRevenue,omitempty" yaml:"totalRevenue,omitempty"`
	TotalEarnings      *float64 `json:"totalEarnings,omitempty" yaml:"totalEarnings,omitempty"`
	PendingEvents      *int     `json:"pendingEvents,omitempty" yaml:"pendingEvents,omitempty"`
	ApprovedEvents     *int     `json:"approvedEvents,omitempty" yaml:"approvedEvents,omitempty"`
	PendingFests       *int     `json:"pendingFests,omitempty" yaml:"pendingFests,omitempty"`
	ApprovedFests      *int     `json:"approvedFests,omitempty" yaml:"approvedFests,omitempty"`
	PendingApprovals   *int     `json:"pendingApprovals,omitempty" yaml:"pendingApprovals,omitempty"`
}

// StudentStats are the student dashboard counters.
type StudentStats struct {
	TotalRegistrations    int `json:"totalRegistrations" yaml:"totalRegistrations"`
	ApprovedRegistrations int `json:"approvedRegistrations" yaml:"approvedRegistrations"`
	PendingRegistrations  int `json:"pendingRegistrations" yaml:"pendingRegistrations"`
	TotalCertificates     int `json:"totalCertificates" yaml:"totalCertificates"`
}

// StudentDashboard merges the student stats with their registrations.
type StudentDashboard struct {
	Stats               StudentStats `json:"stats" yaml:"stats"`
	RecentRegistrations []any        `json:"recentRegistrations" yaml:"recentRegistrations"`
}

// EventRegistration is the body of POST /student/events/register.
type EventRegistration struct {
	EventID          int64  `json:"eventId"`
	RegistrationType string `json:"registrationType"`
	TeamName         string `json:"teamName,omitempty"`
	TeamID           int64  `json:"teamId,omitempty"`
}

// Registration types.
const (
	RegistrationSolo = "solo"
	RegistrationTeam = "team"
)

// Review is the body of POST /events/{id}/review.
type Review struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}

// PaymentConfig is a college's payout configuration.
type PaymentConfig struct {
	RazorpayAccountID     string `json:"razorpayAccountId" yaml:"razorpayAccountId"`
	BankAccountNumber     string `json:"bankAccountNumber" yaml:"bankAccountNumber"`
	BankIFSCCode          string `json:"bankIfscCode" yaml:"bankIfscCode"`
	BankAccountHolderName string `json:"bankAccountHolderName" yaml:"bankAccountHolderName"`
	ContactEmail          string `json:"contactEmail" yaml:"contactEmail"`
}

// PaymentOrder is the body of POST /payments/create-order.
type PaymentOrder struct {
	RegistrationID int64   `json:"registrationId"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	ReceiptEmail   string  `json:"receiptEmail"`
}

// PaymentVerification is the body of POST /payments/verify.
type PaymentVerification struct {
	RazorpayOrderID string `json:"razorpayOrderId"`
	Status          string `json:"status"`
	PaymentID       string `json:"paymentId"`
}
