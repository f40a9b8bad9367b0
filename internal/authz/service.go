package authz

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellerbridge/sellerbridge-backend/pkg/config"
	dbpkg "github.com/sellerbridge/sellerbridge-backend/pkg/db"
	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
	"github.com/sellerbridge/sellerbridge-backend/pkg/outbox"
	"github.com/sellerbridge/sellerbridge-backend/pkg/outbox/payloads"
	"github.com/sellerbridge/sellerbridge-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type workflowRecorder interface {
	IncTransition(action, outcome string)
	IncDenial(reason string)
	SetSlotsRemaining(sellerID string, remaining int)
}

// Service defines the authorization lifecycle operations and projections.
type Service interface {
	Request(ctx context.Context, input RequestInput) (*AuthorizationView, error)
	Approve(ctx context.Context, input ApproveInput) (*AuthorizationView, error)
	Reject(ctx context.Context, input RejectInput) (*AuthorizationView, error)
	Cancel(ctx context.Context, input CancelInput) (*AuthorizationView, error)
	Revoke(ctx context.Context, input RevokeInput) (*AuthorizationView, error)
	Get(ctx context.Context, id uuid.UUID) (*AuthorizationView, error)
	SellerView(ctx context.Context, sellerID uuid.UUID, params pagination.Params, filters SellerViewFilters) (*SellerView, error)
	SellerLimits(ctx context.Context, sellerID uuid.UUID) (*SellerLimit, error)
	SupplierInbox(ctx context.Context, supplierID uuid.UUID, params pagination.Params, filters SupplierInboxFilters) (*SupplierInbox, error)
}

type service struct {
	repo     Repository
	sellers  SellerDirectory
	products ProductCatalog
	tx       txRunner
	outbox   outboxPublisher
	metrics  workflowRecorder
	cfg      config.AuthorizationConfig
	now      func() time.Time
}

// NewService builds the authorization workflow service. The metrics recorder
// is optional; everything else is required.
func NewService(
	repo Repository,
	sellers SellerDirectory,
	products ProductCatalog,
	tx txRunner,
	outboxSvc outboxPublisher,
	metrics workflowRecorder,
	cfg config.AuthorizationConfig,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("authorization repository required")
	}
	if sellers == nil {
		return nil, fmt.Errorf("seller directory required")
	}
	if products == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:     repo,
		sellers:  sellers,
		products: products,
		tx:       tx,
		outbox:   outboxSvc,
		metrics:  metrics,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

func (s *service) Request(ctx context.Context, input RequestInput) (*AuthorizationView, error) {
	if input.SellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var row *models.AuthorizationRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := s.products.WithTx(tx).FindByID(ctx, input.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if product.Status != enums.ProductStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "product is not open for authorization requests")
		}

		active, err := repo.FindActiveByPair(ctx, input.SellerID, input.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active authorization")
		}
		lastTerminal, err := repo.FindLatestTerminalByPair(ctx, input.SellerID, input.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load terminal authorization")
		}

		now := s.now().UTC()
		if d := CanRequest(active, lastTerminal, now); d != nil {
			return s.deny(enums.AuthorizationActionRequest, d)
		}

		created, err := repo.Create(ctx, &models.AuthorizationRequest{
			SellerID:    input.SellerID,
			ProductID:   input.ProductID,
			SupplierID:  product.SupplierID,
			Status:      enums.AuthorizationStatusRequested,
			Message:     input.Message,
			Metadata:    input.Metadata,
			RequestedAt: now,
		})
		if err != nil {
			// A racing request can slip past the pair read; the partial
			// unique index turns it into the same denial.
			if dbpkg.IsUniqueViolation(err, "ux_authorization_requests_active_pair") {
				return s.deny(enums.AuthorizationActionRequest, &Denial{Reason: DenialDuplicateActive})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create authorization request")
		}
		row = created

		message := ""
		if input.Message != nil {
			message = *input.Message
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventAuthorizationRequested,
			AggregateType: enums.AggregateAuthorization,
			AggregateID:   created.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole, &input.SellerID, nil),
			Data: payloads.AuthorizationRequestedEvent{
				AuthorizationID: created.ID,
				SellerID:        created.SellerID,
				SupplierID:      created.SupplierID,
				ProductID:       created.ProductID,
				Message:         message,
				RequestedAt:     created.RequestedAt,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(enums.AuthorizationActionRequest, enums.AuthorizationStatusRequested)
	return toView(row), nil
}

func (s *service) Approve(ctx context.Context, input ApproveInput) (*AuthorizationView, error) {
	if input.AuthorizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var row *models.AuthorizationRequest
	var slotsRemaining int
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		found, err := repo.FindByIDForUpdate(ctx, input.AuthorizationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "authorization not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load authorization")
		}
		if err := requireSupplierActor(found, input.ActorRole, input.ActorSupplierID); err != nil {
			return err
		}
		if found.Status != enums.AuthorizationStatusRequested {
			return s.deny(enums.AuthorizationActionApprove, &Denial{Reason: DenialInvalidTransition},
				withCurrentStatus(found.Status, enums.AuthorizationActionApprove))
		}

		// Lock the seller row so concurrent approvals for the same seller
		// serialize before the slot count is read.
		seller, err := s.sellers.WithTx(tx).FindByIDForUpdate(ctx, found.SellerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
		}
		count, err := repo.CountApproved(ctx, found.SellerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count approved authorizations")
		}
		limit := SellerLimitFor(seller, s.cfg.MaxApprovedPerSeller)
		if d := CanApprove(count, limit); d != nil {
			return s.deny(enums.AuthorizationActionApprove, d)
		}

		now := s.now().UTC()
		updates := map[string]any{
			"status":     enums.AuthorizationStatusApproved,
			"decided_at": now,
			"decided_by": input.ActorUserID,
		}
		if err := repo.Update(ctx, found.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve authorization")
		}

		found.Status = enums.AuthorizationStatusApproved
		found.DecidedAt = &now
		found.DecidedBy = &input.ActorUserID
		row = found
		slotsRemaining = limit - count - 1

		event := outbox.DomainEvent{
			EventType:     enums.EventAuthorizationApproved,
			AggregateType: enums.AggregateAuthorization,
			AggregateID:   found.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole, nil, input.ActorSupplierID),
			Data: payloads.AuthorizationApprovedEvent{
				AuthorizationID: found.ID,
				SellerID:        found.SellerID,
				SupplierID:      found.SupplierID,
				ProductID:       found.ProductID,
				DecidedBy:       input.ActorUserID,
				DecidedAt:       now,
				SlotsRemaining:  slotsRemaining,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(enums.AuthorizationActionApprove, enums.AuthorizationStatusApproved)
	if s.metrics != nil {
		s.metrics.SetSlotsRemaining(row.SellerID.String(), slotsRemaining)
	}
	return toView(row), nil
}

func (s *service) Reject(ctx context.Context, input RejectInput) (*AuthorizationView, error) {
	if input.AuthorizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := s.validateReason(input.Reason); err != nil {
		return nil, err
	}
	days, err := resolveCooldownDays(input.CooldownDays, s.cfg.DefaultCooldownDays)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(input.Reason)
	var row *models.AuthorizationRequest
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		found, err := repo.FindByIDForUpdate(ctx, input.AuthorizationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "authorization not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load authorization")
		}
		if err := requireSupplierActor(found, input.ActorRole, input.ActorSupplierID); err != nil {
			return err
		}
		if found.Status != enums.AuthorizationStatusRequested {
			return s.deny(enums.AuthorizationActionReject, &Denial{Reason: DenialInvalidTransition},
				withCurrentStatus(found.Status, enums.AuthorizationActionReject))
		}

		now := s.now().UTC()
		cooldownUntil := now.Add(time.Duration(days) * 24 * time.Hour)
		updates := map[string]any{
			"status":          enums.AuthorizationStatusRejected,
			"decided_at":      now,
			"decided_by":      input.ActorUserID,
			"decision_reason": reason,
			"cooldown_until":  cooldownUntil,
		}
		if err := repo.Update(ctx, found.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject authorization")
		}

		found.Status = enums.AuthorizationStatusRejected
		found.DecidedAt = &now
		found.DecidedBy = &input.ActorUserID
		found.DecisionReason = &reason
		found.CooldownUntil = &cooldownUntil
		row = found

		event := outbox.DomainEvent{
			EventType:     enums.EventAuthorizationRejected,
			AggregateType: enums.AggregateAuthorization,
			AggregateID:   found.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole, nil, input.ActorSupplierID),
			Data: payloads.AuthorizationRejectedEvent{
				AuthorizationID: found.ID,
				SellerID:        found.SellerID,
				SupplierID:      found.SupplierID,
				ProductID:       found.ProductID,
				DecidedBy:       input.ActorUserID,
				DecidedAt:       now,
				Reason:          reason,
				CooldownUntil:   cooldownUntil,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(enums.AuthorizationActionReject, enums.AuthorizationStatusRejected)
	return toView(row), nil
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*AuthorizationView, error) {
	if input.AuthorizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var row *models.AuthorizationRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		found, err := repo.FindByIDForUpdate(ctx, input.AuthorizationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "authorization not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load authorization")
		}
		if input.ActorRole != enums.UserRoleAdmin {
			if input.ActorSellerID == nil || *input.ActorSellerID != found.SellerID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "authorization does not belong to seller")
			}
		}
		if found.Status != enums.AuthorizationStatusRequested {
			return s.deny(enums.AuthorizationActionCancel, &Denial{Reason: DenialInvalidTransition},
				withCurrentStatus(found.Status, enums.AuthorizationActionCancel))
		}

		// Cancellation is penalty free: no cooldown is recorded, the seller
		// may re-request immediately.
		now := s.now().UTC()
		updates := map[string]any{
			"status":       enums.AuthorizationStatusCancelled,
			"cancelled_at": now,
		}
		if err := repo.Update(ctx, found.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel authorization")
		}

		found.Status = enums.AuthorizationStatusCancelled
		found.CancelledAt = &now
		row = found

		event := outbox.DomainEvent{
			EventType:     enums.EventAuthorizationCancelled,
			AggregateType: enums.AggregateAuthorization,
			AggregateID:   found.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole, input.ActorSellerID, nil),
			Data: payloads.AuthorizationCancelledEvent{
				AuthorizationID: found.ID,
				SellerID:        found.SellerID,
				SupplierID:      found.SupplierID,
				ProductID:       found.ProductID,
				CancelledAt:     now,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(enums.AuthorizationActionCancel, enums.AuthorizationStatusCancelled)
	return toView(row), nil
}

func (s *service) Revoke(ctx context.Context, input RevokeInput) (*AuthorizationView, error) {
	if input.AuthorizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := s.validateReason(input.Reason); err != nil {
		return nil, err
	}
	days, err := resolveCooldownDays(input.CooldownDays, s.cfg.RevokeCooldownDays)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(input.Reason)
	var row *models.AuthorizationRequest
	var slotsRemaining int
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		found, err := repo.FindByIDForUpdate(ctx, input.AuthorizationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "authorization not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load authorization")
		}
		if err := requireSupplierActor(found, input.ActorRole, input.ActorSupplierID); err != nil {
			return err
		}
		if found.Status != enums.AuthorizationStatusApproved {
			return s.deny(enums.AuthorizationActionRevoke, &Denial{Reason: DenialInvalidTransition},
				withCurrentStatus(found.Status, enums.AuthorizationActionRevoke))
		}

		now := s.now().UTC()
		cooldownUntil := now.Add(time.Duration(days) * 24 * time.Hour)
		// Approval audit fields (decided_at/decided_by/decision_reason) stay
		// untouched; revocation records its own actor and reason.
		updates := map[string]any{
			"status":            enums.AuthorizationStatusRevoked,
			"revoked_at":        now,
			"revoked_by":        input.ActorUserID,
			"revocation_reason": reason,
			"cooldown_until":    cooldownUntil,
		}
		if err := repo.Update(ctx, found.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke authorization")
		}

		found.Status = enums.AuthorizationStatusRevoked
		found.RevokedAt = &now
		found.RevokedBy = &input.ActorUserID
		found.RevocationReason = &reason
		found.CooldownUntil = &cooldownUntil
		row = found

		// The revoked row no longer occupies a slot; refresh the gauge from
		// the post-update count.
		count, err := repo.CountApproved(ctx, found.SellerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count approved authorizations")
		}
		seller, err := s.sellers.WithTx(tx).FindByID(ctx, found.SellerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
		}
		slotsRemaining = SellerLimitFor(seller, s.cfg.MaxApprovedPerSeller) - count

		event := outbox.DomainEvent{
			EventType:     enums.EventAuthorizationRevoked,
			AggregateType: enums.AggregateAuthorization,
			AggregateID:   found.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole, nil, input.ActorSupplierID),
			Data: payloads.AuthorizationRevokedEvent{
				AuthorizationID: found.ID,
				SellerID:        found.SellerID,
				SupplierID:      found.SupplierID,
				ProductID:       found.ProductID,
				RevokedBy:       input.ActorUserID,
				RevokedAt:       now,
				Reason:          reason,
				CooldownUntil:   cooldownUntil,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(enums.AuthorizationActionRevoke, enums.AuthorizationStatusRevoked)
	if s.metrics != nil {
		s.metrics.SetSlotsRemaining(row.SellerID.String(), slotsRemaining)
	}
	return toView(row), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AuthorizationView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization id required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "authorization not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load authorization")
	}
	return toView(row), nil
}

func (s *service) SellerView(ctx context.Context, sellerID uuid.UUID, params pagination.Params, filters SellerViewFilters) (*SellerView, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	rows, nextCursor, err := s.repo.ListBySeller(ctx, sellerID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller authorizations")
	}
	limit, err := s.SellerLimits(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	views := make([]AuthorizationView, 0, len(rows))
	for i := range rows {
		views = append(views, *toView(&rows[i]))
	}
	return &SellerView{
		Authorizations: views,
		Limit:          *limit,
		NextCursor:     nextCursor,
	}, nil
}

func (s *service) SellerLimits(ctx context.Context, sellerID uuid.UUID) (*SellerLimit, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	count, err := s.repo.CountApproved(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count approved authorizations")
	}
	return buildSellerLimit(seller, count, s.cfg.MaxApprovedPerSeller), nil
}

func (s *service) SupplierInbox(ctx context.Context, supplierID uuid.UUID, params pagination.Params, filters SupplierInboxFilters) (*SupplierInbox, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	rows, nextCursor, err := s.repo.ListBySupplier(ctx, supplierID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier authorizations")
	}

	// The same seller often appears several times in one page; resolve each
	// limit summary once.
	limitsBySeller := make(map[uuid.UUID]*SellerLimit)
	entries := make([]SupplierInboxEntry, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		limit, ok := limitsBySeller[row.SellerID]
		if !ok {
			limit, err = s.SellerLimits(ctx, row.SellerID)
			if err != nil {
				return nil, err
			}
			limitsBySeller[row.SellerID] = limit
		}
		entries = append(entries, SupplierInboxEntry{
			Authorization: *toView(row),
			SellerLimit:   *limit,
		})
	}
	return &SupplierInbox{
		Entries:    entries,
		NextCursor: nextCursor,
	}, nil
}

type denyOption func(*DenialDetails)

func withCurrentStatus(status enums.AuthorizationStatus, action enums.AuthorizationAction) denyOption {
	return func(d *DenialDetails) {
		d.CurrentStatus = status
		d.Action = action
	}
}

// deny records the denial metric and maps the evaluator verdict onto the
// coded error the API layer renders.
func (s *service) deny(action enums.AuthorizationAction, d *Denial, opts ...denyOption) error {
	if s.metrics != nil {
		s.metrics.IncDenial(string(d.Reason))
		s.metrics.IncTransition(action.String(), "denied")
	}
	switch d.Reason {
	case DenialDuplicateActive:
		return errDuplicateActive()
	case DenialCooldownActive:
		return errCooldownActive(d.DaysRemaining)
	case DenialSlotsExhausted:
		return errSlotsExhausted(d.CurrentCount, d.MaxLimit)
	case DenialInvalidTransition:
		details := DenialDetails{Reason: DenialInvalidTransition}
		for _, opt := range opts {
			opt(&details)
		}
		return errInvalidTransition(details.CurrentStatus, details.Action)
	default:
		return pkgerrors.New(pkgerrors.CodeConflict, "authorization operation denied")
	}
}

func (s *service) recordTransition(action enums.AuthorizationAction, outcome enums.AuthorizationStatus) {
	if s.metrics != nil {
		s.metrics.IncTransition(action.String(), outcome.String())
	}
}

func (s *service) validateReason(reason string) error {
	if utf8.RuneCountInString(strings.TrimSpace(reason)) < s.cfg.MinReasonLength {
		if s.metrics != nil {
			s.metrics.IncDenial(string(DenialReasonTooShort))
		}
		return errReasonTooShort(s.cfg.MinReasonLength)
	}
	return nil
}

func resolveCooldownDays(requested *int, fallback int) (int, error) {
	days := fallback
	if requested != nil {
		days = *requested
	}
	if days < config.CooldownDaysMin || days > config.CooldownDaysMax {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cooldown days must be within [%d, %d]", config.CooldownDaysMin, config.CooldownDaysMax))
	}
	return days, nil
}

func requireSupplierActor(row *models.AuthorizationRequest, role enums.UserRole, supplierID *uuid.UUID) error {
	if role == enums.UserRoleAdmin {
		return nil
	}
	if supplierID == nil || *supplierID != row.SupplierID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "authorization does not belong to supplier")
	}
	return nil
}

func buildActor(userID uuid.UUID, role enums.UserRole, sellerID, supplierID *uuid.UUID) *outbox.ActorRef {
	return &outbox.ActorRef{
		UserID:     userID,
		SellerID:   sellerID,
		SupplierID: supplierID,
		Role:       role.String(),
	}
}

func buildSellerLimit(seller *models.Seller, approvedCount, platformDefault int) *SellerLimit {
	max := SellerLimitFor(seller, platformDefault)
	remaining := max - approvedCount
	if remaining < 0 {
		remaining = 0
	}
	return &SellerLimit{
		CurrentCount:   approvedCount,
		MaxLimit:       max,
		RemainingSlots: remaining,
	}
}

func toView(row *models.AuthorizationRequest) *AuthorizationView {
	return &AuthorizationView{
		ID:               row.ID,
		SellerID:         row.SellerID,
		ProductID:        row.ProductID,
		SupplierID:       row.SupplierID,
		Status:           row.Status,
		Message:          row.Message,
		Metadata:         row.Metadata,
		RequestedAt:      row.RequestedAt,
		DecidedAt:        row.DecidedAt,
		DecidedBy:        row.DecidedBy,
		DecisionReason:   row.DecisionReason,
		CancelledAt:      row.CancelledAt,
		RevokedAt:        row.RevokedAt,
		RevokedBy:        row.RevokedBy,
		RevocationReason: row.RevocationReason,
		CooldownUntil:    row.CooldownUntil,
		CreatedAt:        row.CreatedAt,
	}
}
