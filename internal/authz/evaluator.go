package authz

import (
	"time"

	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
)

// Denial is the evaluator's verdict when an operation must be refused.
// A nil Denial means allowed. The evaluator is pure: it reads the rows it
// is handed and never touches the store itself.
type Denial struct {
	Reason        DenialReason
	DaysRemaining int
	CurrentCount  int
	MaxLimit      int
}

// CanRequest decides whether a new request for a (seller, product) pair may
// be created. active is the pair's live row if one exists; lastTerminal is
// the pair's most recent rejected/revoked/cancelled row if any.
//
// Slot exhaustion is deliberately not checked here: sellers may queue
// requests past their limit, and the limit is enforced when a supplier
// approves.
func CanRequest(active, lastTerminal *models.AuthorizationRequest, now time.Time) *Denial {
	if active != nil {
		return &Denial{Reason: DenialDuplicateActive}
	}
	if lastTerminal != nil && lastTerminal.CooldownUntil != nil && lastTerminal.CooldownUntil.After(now) {
		return &Denial{
			Reason:        DenialCooldownActive,
			DaysRemaining: CooldownDaysRemaining(*lastTerminal.CooldownUntil, now),
		}
	}
	return nil
}

// CanApprove re-checks the seller's approved-slot budget at approval time.
// Other approvals may have landed between request and approval, so the
// caller must pass a count read under the same transaction that will
// write the approval.
func CanApprove(approvedCount, maxLimit int) *Denial {
	if approvedCount >= maxLimit {
		return &Denial{
			Reason:       DenialSlotsExhausted,
			CurrentCount: approvedCount,
			MaxLimit:     maxLimit,
		}
	}
	return nil
}

// CooldownDaysRemaining reports the user-facing "N days remaining" value:
// a calendar-day ceiling, never below 1 while the window is open.
func CooldownDaysRemaining(until, now time.Time) int {
	remaining := until.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// SellerLimitFor resolves the effective approved-slot cap for a seller,
// preferring the per-seller override when present.
func SellerLimitFor(seller *models.Seller, platformDefault int) int {
	if seller != nil && seller.MaxApprovedOverride != nil && *seller.MaxApprovedOverride >= 1 {
		return *seller.MaxApprovedOverride
	}
	return platformDefault
}
