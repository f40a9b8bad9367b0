package authz

import (
	"fmt"

	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
)

// DenialReason discriminates why a workflow operation was refused.
type DenialReason string

const (
	DenialDuplicateActive   DenialReason = "duplicate_active"
	DenialCooldownActive    DenialReason = "cooldown_active"
	DenialSlotsExhausted    DenialReason = "slots_exhausted"
	DenialInvalidTransition DenialReason = "invalid_transition"
	DenialReasonTooShort    DenialReason = "reason_too_short"
)

// DenialDetails is attached to the coded error so the API layer can render
// the exact user-facing message (days remaining, counts, current state).
type DenialDetails struct {
	Reason        DenialReason              `json:"reason"`
	DaysRemaining int                       `json:"days_remaining,omitempty"`
	CurrentCount  int                       `json:"current_count,omitempty"`
	MaxLimit      int                       `json:"max_limit,omitempty"`
	CurrentStatus enums.AuthorizationStatus `json:"current_status,omitempty"`
	Action        enums.AuthorizationAction `json:"action,omitempty"`
	MinLength     int                       `json:"min_length,omitempty"`
}

func errDuplicateActive() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "an active authorization already exists for this product").
		WithDetails(DenialDetails{Reason: DenialDuplicateActive})
}

func errCooldownActive(daysRemaining int) error {
	return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product is in cooldown for %d more day(s)", daysRemaining)).
		WithDetails(DenialDetails{Reason: DenialCooldownActive, DaysRemaining: daysRemaining})
}

func errSlotsExhausted(current, max int) error {
	return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("approved slot limit reached (%d of %d)", current, max)).
		WithDetails(DenialDetails{Reason: DenialSlotsExhausted, CurrentCount: current, MaxLimit: max})
}

func errInvalidTransition(current enums.AuthorizationStatus, action enums.AuthorizationAction) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot %s an authorization in status %s", action, current)).
		WithDetails(DenialDetails{Reason: DenialInvalidTransition, CurrentStatus: current, Action: action})
}

func errReasonTooShort(minLength int) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("reason must be at least %d characters", minLength)).
		WithDetails(DenialDetails{Reason: DenialReasonTooShort, MinLength: minLength})
}
