package enums

import "fmt"

// AuthorizationStatus maps to the authorization_status enum in Postgres.
type AuthorizationStatus string

const (
	AuthorizationStatusRequested AuthorizationStatus = "requested"
	AuthorizationStatusApproved  AuthorizationStatus = "approved"
	AuthorizationStatusRejected  AuthorizationStatus = "rejected"
	AuthorizationStatusRevoked   AuthorizationStatus = "revoked"
	AuthorizationStatusCancelled AuthorizationStatus = "cancelled"
)

var validAuthorizationStatuses = []AuthorizationStatus{
	AuthorizationStatusRequested,
	AuthorizationStatusApproved,
	AuthorizationStatusRejected,
	AuthorizationStatusRevoked,
	AuthorizationStatusCancelled,
}

// String implements fmt.Stringer.
func (s AuthorizationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical authorization_status enum.
func (s AuthorizationStatus) IsValid() bool {
	for _, candidate := range validAuthorizationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the status still occupies the (seller, product) pair.
func (s AuthorizationStatus) IsActive() bool {
	return s == AuthorizationStatusRequested || s == AuthorizationStatusApproved
}

// IsTerminal reports whether no further transition out of the status is permitted.
func (s AuthorizationStatus) IsTerminal() bool {
	switch s {
	case AuthorizationStatusRejected, AuthorizationStatusRevoked, AuthorizationStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseAuthorizationStatus converts raw input into AuthorizationStatus.
func ParseAuthorizationStatus(value string) (AuthorizationStatus, error) {
	for _, candidate := range validAuthorizationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid authorization status %q", value)
}

// AuthorizationAction names the transitions the workflow engine accepts.
type AuthorizationAction string

const (
	AuthorizationActionRequest AuthorizationAction = "request"
	AuthorizationActionApprove AuthorizationAction = "approve"
	AuthorizationActionReject  AuthorizationAction = "reject"
	AuthorizationActionCancel  AuthorizationAction = "cancel"
	AuthorizationActionRevoke  AuthorizationAction = "revoke"
)

// String implements fmt.Stringer.
func (a AuthorizationAction) String() string {
	return string(a)
}
