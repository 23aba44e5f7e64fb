package model

// RejectReason enumerates expected registration failures.
type RejectReason string

const (
	// RejectInvalidInvite means the invite code does not exist.
	RejectInvalidInvite RejectReason = "invalid_invite"
	// RejectInviteUsed means the invite code was already consumed.
	RejectInviteUsed RejectReason = "invite_used"
	// RejectDuplicateEmail means a user with the email already exists.
	RejectDuplicateEmail RejectReason = "duplicate_email"
	// RejectWeakPassword means the password failed the policy.
	RejectWeakPassword RejectReason = "weak_password"
)

const (
	MsgInvalidInvite  = "Invalid invite code"
	MsgInviteUsed     = "Invite code already used"
	MsgDuplicateEmail = "Email already in use"
)

// RegistrationResult is either Registered or Rejected.
// Use a type switch to tell them apart.
type RegistrationResult interface {
	isRegistrationResult()
}

// Registered is returned when a user was created and the invite consumed.
type Registered struct {
	User User
}

// Rejected is returned when registration failed validation.
type Rejected struct {
	Reason  RejectReason
	Message string
}

func (Registered) isRegistrationResult() {}
func (Rejected) isRegistrationResult()   {}

// Error lets a rejection be reported through error-based layers.
func (r Rejected) Error() string {
	return r.Message
}
