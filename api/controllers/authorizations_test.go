package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sellerbridge/sellerbridge-backend/api/middleware"
	"github.com/sellerbridge/sellerbridge-backend/internal/authz"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
	"github.com/sellerbridge/sellerbridge-backend/pkg/logger"
	"github.com/sellerbridge/sellerbridge-backend/pkg/pagination"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func sellerContext(sellerID, userID uuid.UUID) context.Context {
	ctx := middleware.WithUserID(context.Background(), userID.String())
	ctx = context.WithValue(ctx, chi.RouteCtxKey, chi.NewRouteContext())
	ctx = middleware.WithSellerID(ctx, sellerID.String())
	return withRole(ctx, enums.UserRoleSeller)
}

func supplierContext(supplierID, userID uuid.UUID) context.Context {
	ctx := middleware.WithUserID(context.Background(), userID.String())
	ctx = middleware.WithSupplierID(ctx, supplierID.String())
	return withRole(ctx, enums.UserRoleSupplier)
}

func withRole(ctx context.Context, role enums.UserRole) context.Context {
	return middleware.WithRole(ctx, string(role))
}

func withRouteParam(ctx context.Context, key, value string) context.Context {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
}

func TestSellerAuthorizationCreate(t *testing.T) {
	logg := testLogger()
	sellerID := uuid.New()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("missing seller context", func(t *testing.T) {
		ctx := withRole(middleware.WithUserID(context.Background(), userID.String()), enums.UserRoleSeller)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/authorizations", strings.NewReader(`{"product_id":"`+productID.String()+`"}`))
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		SellerAuthorizationCreate(&stubAuthzService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 got %d", rec.Code)
		}
	})

	t.Run("invalid product id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/authorizations", strings.NewReader(`{"product_id":"nope"}`))
		req = req.WithContext(sellerContext(sellerID, userID))
		rec := httptest.NewRecorder()
		SellerAuthorizationCreate(&stubAuthzService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubAuthzService{
			requestResult: &authz.AuthorizationView{ID: uuid.New(), SellerID: sellerID, ProductID: productID, Status: enums.AuthorizationStatusRequested},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/authorizations", strings.NewReader(`{"product_id":"`+productID.String()+`","message":"please"}`))
		req = req.WithContext(sellerContext(sellerID, userID))
		rec := httptest.NewRecorder()
		SellerAuthorizationCreate(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.requestInput == nil {
			t.Fatal("expected service invocation")
		}
		if stub.requestInput.SellerID != sellerID || stub.requestInput.ProductID != productID {
			t.Fatalf("unexpected input %+v", stub.requestInput)
		}
		if stub.requestInput.Message == nil || *stub.requestInput.Message != "please" {
			t.Fatalf("expected message to pass through")
		}
	})

	t.Run("metadata passes through untouched", func(t *testing.T) {
		stub := &stubAuthzService{
			requestResult: &authz.AuthorizationView{ID: uuid.New(), SellerID: sellerID, ProductID: productID, Status: enums.AuthorizationStatusRequested},
		}
		metadata := `{"campaign":"spring-launch","refs":[1,2,3]}`
		body := `{"product_id":"` + productID.String() + `","metadata":` + metadata + `}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/authorizations", strings.NewReader(body))
		req = req.WithContext(sellerContext(sellerID, userID))
		rec := httptest.NewRecorder()
		SellerAuthorizationCreate(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.requestInput == nil || string(stub.requestInput.Metadata) != metadata {
			t.Fatalf("expected metadata to pass through as given, got %s", stub.requestInput.Metadata)
		}
	})

	t.Run("denial surfaces as conflict", func(t *testing.T) {
		stub := &stubAuthzService{
			requestErr: pkgerrors.New(pkgerrors.CodeConflict, "an active request or approval already exists for this product"),
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/authorizations", strings.NewReader(`{"product_id":"`+productID.String()+`"}`))
		req = req.WithContext(sellerContext(sellerID, userID))
		rec := httptest.NewRecorder()
		SellerAuthorizationCreate(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 got %d", rec.Code)
		}
	})
}

func TestSupplierAuthorizationReject(t *testing.T) {
	logg := testLogger()
	supplierID := uuid.New()
	userID := uuid.New()
	authorizationID := uuid.New()

	t.Run("invalid authorization id", func(t *testing.T) {
		ctx := withRouteParam(supplierContext(supplierID, userID), "authorizationId", "nope")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/supplier/authorizations/nope/reject", strings.NewReader(`{"reason":"not a fit for our catalog"}`))
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		SupplierAuthorizationReject(&stubAuthzService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})

	t.Run("missing reason", func(t *testing.T) {
		ctx := withRouteParam(supplierContext(supplierID, userID), "authorizationId", authorizationID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/supplier/authorizations/"+authorizationID.String()+"/reject", strings.NewReader(`{}`))
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		SupplierAuthorizationReject(&stubAuthzService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})

	t.Run("success passes cooldown through", func(t *testing.T) {
		stub := &stubAuthzService{
			rejectResult: &authz.AuthorizationView{ID: authorizationID, Status: enums.AuthorizationStatusRejected},
		}
		ctx := withRouteParam(supplierContext(supplierID, userID), "authorizationId", authorizationID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/supplier/authorizations/"+authorizationID.String()+"/reject", strings.NewReader(`{"reason":"not a fit for our catalog","cooldown_days":45}`))
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		SupplierAuthorizationReject(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.rejectInput == nil {
			t.Fatal("expected service invocation")
		}
		if stub.rejectInput.CooldownDays == nil || *stub.rejectInput.CooldownDays != 45 {
			t.Fatalf("expected cooldown 45, got %+v", stub.rejectInput.CooldownDays)
		}
		if stub.rejectInput.ActorSupplierID == nil || *stub.rejectInput.ActorSupplierID != supplierID {
			t.Fatalf("expected supplier actor binding")
		}
	})
}

func TestAuthorizationDetailVisibility(t *testing.T) {
	logg := testLogger()
	sellerID := uuid.New()
	supplierID := uuid.New()
	authorizationID := uuid.New()

	view := &authz.AuthorizationView{
		ID:         authorizationID,
		SellerID:   sellerID,
		SupplierID: supplierID,
		ProductID:  uuid.New(),
		Status:     enums.AuthorizationStatusRequested,
	}

	run := func(ctx context.Context) *httptest.ResponseRecorder {
		ctx = withRouteParam(ctx, "authorizationId", authorizationID.String())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/authorizations/"+authorizationID.String(), nil)
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		AuthorizationDetail(&stubAuthzService{getResult: view}, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("owning seller sees it", func(t *testing.T) {
		rec := run(sellerContext(sellerID, uuid.New()))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
	})

	t.Run("owning supplier sees it", func(t *testing.T) {
		rec := run(supplierContext(supplierID, uuid.New()))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
	})

	t.Run("foreign seller gets not found", func(t *testing.T) {
		rec := run(sellerContext(uuid.New(), uuid.New()))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", rec.Code)
		}
		var payload struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("parse response: %v", err)
		}
		if payload.Error.Code != string(pkgerrors.CodeNotFound) {
			t.Fatalf("expected not_found code got %s", payload.Error.Code)
		}
	})
}

func TestSellerAuthorizationListFilters(t *testing.T) {
	logg := testLogger()
	sellerID := uuid.New()

	stub := &stubAuthzService{
		sellerViewResult: &authz.SellerView{Limit: authz.SellerLimit{CurrentCount: 2, MaxLimit: 10, RemainingSlots: 8}},
	}
	ctx := sellerContext(sellerID, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/authorizations?status=approved&limit=5", nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	SellerAuthorizationList(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.sellerViewFilters.Status == nil || *stub.sellerViewFilters.Status != enums.AuthorizationStatusApproved {
		t.Fatalf("expected approved status filter")
	}
	if stub.sellerViewParams.Limit != 5 {
		t.Fatalf("expected limit 5 got %d", stub.sellerViewParams.Limit)
	}
}

type stubAuthzService struct {
	requestInput  *authz.RequestInput
	requestResult *authz.AuthorizationView
	requestErr    error

	rejectInput  *authz.RejectInput
	rejectResult *authz.AuthorizationView

	getResult *authz.AuthorizationView

	sellerViewParams  pagination.Params
	sellerViewFilters authz.SellerViewFilters
	sellerViewResult  *authz.SellerView
}

func (s *stubAuthzService) Request(_ context.Context, input authz.RequestInput) (*authz.AuthorizationView, error) {
	s.requestInput = &input
	if s.requestErr != nil {
		return nil, s.requestErr
	}
	return s.requestResult, nil
}

func (s *stubAuthzService) Approve(_ context.Context, input authz.ApproveInput) (*authz.AuthorizationView, error) {
	return &authz.AuthorizationView{ID: input.AuthorizationID, Status: enums.AuthorizationStatusApproved}, nil
}

func (s *stubAuthzService) Reject(_ context.Context, input authz.RejectInput) (*authz.AuthorizationView, error) {
	s.rejectInput = &input
	return s.rejectResult, nil
}

func (s *stubAuthzService) Cancel(_ context.Context, input authz.CancelInput) (*authz.AuthorizationView, error) {
	return &authz.AuthorizationView{ID: input.AuthorizationID, Status: enums.AuthorizationStatusCancelled}, nil
}

func (s *stubAuthzService) Revoke(_ context.Context, input authz.RevokeInput) (*authz.AuthorizationView, error) {
	return &authz.AuthorizationView{ID: input.AuthorizationID, Status: enums.AuthorizationStatusRevoked}, nil
}

func (s *stubAuthzService) Get(_ context.Context, id uuid.UUID) (*authz.AuthorizationView, error) {
	if s.getResult == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "authorization not found")
	}
	return s.getResult, nil
}

func (s *stubAuthzService) SellerView(_ context.Context, sellerID uuid.UUID, params pagination.Params, filters authz.SellerViewFilters) (*authz.SellerView, error) {
	s.sellerViewParams = params
	s.sellerViewFilters = filters
	return s.sellerViewResult, nil
}

func (s *stubAuthzService) SellerLimits(_ context.Context, sellerID uuid.UUID) (*authz.SellerLimit, error) {
	return &authz.SellerLimit{CurrentCount: 0, MaxLimit: 10, RemainingSlots: 10}, nil
}

func (s *stubAuthzService) SupplierInbox(_ context.Context, supplierID uuid.UUID, params pagination.Params, filters authz.SupplierInboxFilters) (*authz.SupplierInbox, error) {
	return &authz.SupplierInbox{}, nil
}
