package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sellerbridge/sellerbridge-backend/internal/users"
	"github.com/sellerbridge/sellerbridge-backend/pkg/config"
	"github.com/sellerbridge/sellerbridge-backend/pkg/db"
	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
	"github.com/sellerbridge/sellerbridge-backend/pkg/security"
)

// RegisterRequest contains the payload required for onboarding a new
// seller or supplier account.
type RegisterRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName string  `json:"company_name" validate:"required"`
	DBAName     *string `json:"dba_name,omitempty"`
	AccountType string  `json:"account_type" validate:"required,oneof=seller supplier"`
	AcceptTOS   bool    `json:"accept_tos"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	role, err := enums.ParseUserRole(req.AccountType)
	if err != nil || role == enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeValidation, "account type must be seller or supplier")
	}
	if !req.AcceptTOS {
		return pkgerrors.New(pkgerrors.CodeValidation, "accept_tos must be true")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Phone:        req.Phone,
			Role:         role,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		switch role {
		case enums.UserRoleSeller:
			seller := &models.Seller{
				CompanyName: strings.TrimSpace(req.CompanyName),
				DBAName:     req.DBAName,
				Email:       &email,
				Phone:       req.Phone,
				OwnerID:     user.ID,
			}
			if err := tx.WithContext(ctx).Create(seller).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create seller")
			}
			if err := tx.WithContext(ctx).Model(&models.User{}).
				Where("id = ?", user.ID).
				UpdateColumn("seller_id", seller.ID).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bind seller to user")
			}
		case enums.UserRoleSupplier:
			supplier := &models.Supplier{
				CompanyName: strings.TrimSpace(req.CompanyName),
				DBAName:     req.DBAName,
				Email:       &email,
				Phone:       req.Phone,
				OwnerID:     user.ID,
			}
			if err := tx.WithContext(ctx).Create(supplier).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create supplier")
			}
			if err := tx.WithContext(ctx).Model(&models.User{}).
				Where("id = ?", user.ID).
				UpdateColumn("supplier_id", supplier.ID).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bind supplier to user")
			}
		}

		return nil
	})
}
