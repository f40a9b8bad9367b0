package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sellerbridge/sellerbridge-backend/api/responses"
	"github.com/sellerbridge/sellerbridge-backend/api/validators"
	product "github.com/sellerbridge/sellerbridge-backend/internal/products"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
	"github.com/sellerbridge/sellerbridge-backend/pkg/logger"
)

type productCreateBody struct {
	SKU            string   `json:"sku" validate:"required,min=1,max=64"`
	Title          string   `json:"title" validate:"required,min=1,max=255"`
	Subtitle       *string  `json:"subtitle,omitempty" validate:"omitempty,max=255"`
	Description    *string  `json:"description,omitempty"`
	Categories     []string `json:"categories,omitempty" validate:"omitempty,dive,min=1,max=64"`
	WholesalePrice string   `json:"wholesale_price" validate:"required"`
	RetailPrice    *string  `json:"retail_price,omitempty"`
	MOQ            int      `json:"moq" validate:"omitempty,min=1"`
}

type productUpdateBody struct {
	SKU            *string   `json:"sku,omitempty" validate:"omitempty,min=1,max=64"`
	Title          *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Subtitle       *string   `json:"subtitle,omitempty" validate:"omitempty,max=255"`
	Description    *string   `json:"description,omitempty"`
	Categories     *[]string `json:"categories,omitempty"`
	WholesalePrice *string   `json:"wholesale_price,omitempty"`
	RetailPrice    *string   `json:"retail_price,omitempty"`
	MOQ            *int      `json:"moq,omitempty" validate:"omitempty,min=1"`
}

type productStatusBody struct {
	Status string `json:"status" validate:"required"`
}

func parsePrice(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, field+" must be a decimal amount")
	}
	if value.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, field+" must not be negative")
	}
	return value, nil
}

// SupplierProductCreate adds a product to the supplier's catalog.
func SupplierProductCreate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.SupplierID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		var body productCreateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wholesale, err := parsePrice(body.WholesalePrice, "wholesale_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.CreateProductInput{
			SKU:            strings.TrimSpace(body.SKU),
			Title:          strings.TrimSpace(body.Title),
			Subtitle:       body.Subtitle,
			Description:    body.Description,
			Categories:     body.Categories,
			WholesalePrice: wholesale,
			MOQ:            body.MOQ,
		}
		if body.RetailPrice != nil {
			retail, err := parsePrice(*body.RetailPrice, "retail_price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.RetailPrice = &retail
		}

		created, err := svc.CreateProduct(r.Context(), *act.SupplierID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// SupplierProductUpdate patches mutable product fields.
func SupplierProductUpdate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.SupplierID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productUpdateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.UpdateProductInput{
			SKU:         body.SKU,
			Title:       body.Title,
			Subtitle:    body.Subtitle,
			Description: body.Description,
			Categories:  body.Categories,
			MOQ:         body.MOQ,
		}
		if body.WholesalePrice != nil {
			wholesale, err := parsePrice(*body.WholesalePrice, "wholesale_price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.WholesalePrice = &wholesale
		}
		if body.RetailPrice != nil {
			retail, err := parsePrice(*body.RetailPrice, "retail_price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.RetailPrice = &retail
		}

		updated, err := svc.UpdateProduct(r.Context(), *act.SupplierID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// SupplierProductSetStatus moves a product between draft, active and archived.
func SupplierProductSetStatus(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.SupplierID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productStatusBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseProductStatus(strings.TrimSpace(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status"))
			return
		}

		updated, err := svc.SetStatus(r.Context(), act.UserID, *act.SupplierID, productID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// SupplierProductList pages through the supplier's own catalog.
func SupplierProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.SupplierID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.ListProductsInput{
			SupplierID: *act.SupplierID,
			Limit:      limit,
			Cursor:     strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseProductStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			input.Status = &status
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductDetail exposes a single product to any authenticated actor so
// sellers can inspect a product before requesting authorization.
func ProductDetail(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
