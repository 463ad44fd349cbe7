package models

// UserRole identifies a participant in the approval chain. There is no real
// identity model; the role is asserted by the client per request.
type UserRole string

const (
	RoleCoordinator UserRole = "COORDINATOR"
	RoleHOD         UserRole = "HOD"
	RolePrincipal   UserRole = "PRINCIPAL"
	RoleAdmin       UserRole = "ADMIN"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCoordinator, RoleHOD, RolePrincipal, RoleAdmin:
		return true
	}
	return false
}

// PendingStatusFor returns the approval stage the role acts on, or "" for
// roles outside the chain.
func (r UserRole) PendingStatusFor() ApprovalStatus {
	switch r {
	case RoleHOD:
		return StatusPendingHOD
	case RolePrincipal:
		return StatusPendingPrincipal
	case RoleAdmin:
		return StatusPendingAdmin
	}
	return ""
}

// ApprovalAction is an approver's decision on a pending event.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "APPROVE"
	ActionReject  ApprovalAction = "REJECT"
)

// Valid reports whether the action belongs to the closed enumeration.
func (a ApprovalAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// Identity is the asserted per-request caller identity.
type Identity struct {
	UserID string
	Role   UserRole
}
