package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/dto"
	"github.com/GlebRadaev/orderdesk/internal/service/orderservice"
	"github.com/GlebRadaev/orderdesk/internal/service/promoservice"
	"github.com/GlebRadaev/orderdesk/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AdminHandler, *MockOrderService, *MockPromoService) {
	ctrl := gomock.NewController(t)
	orders := NewMockOrderService(ctrl)
	promos := NewMockPromoService(ctrl)
	handler := New(orders, promos)
	defer ctrl.Finish()
	return handler, orders, promos
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.Response
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp.Message
}

func TestChangeStatus(t *testing.T) {
	handler, orders, _ := NewMock(t)

	tests := []struct {
		name          string
		orderID       string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:    "Status changed",
			orderID: "2404815702",
			body:    `{"status":"pending","note":"paid"}`,
			prepareMock: func() {
				orders.EXPECT().
					ChangeStatus(gomock.Any(), "2404815702", domain.StatusPending, "paid").
					Return(&domain.Order{ID: "2404815702", Status: domain.StatusPending}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid order id",
			orderID:       "123",
			body:          `{"status":"pending"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid order id",
		},
		{
			name:          "Invalid body",
			orderID:       "2404815702",
			body:          `{`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:    "Unknown status",
			orderID: "2404815702",
			body:    `{"status":"paid"}`,
			prepareMock: func() {
				orders.EXPECT().
					ChangeStatus(gomock.Any(), "2404815702", domain.Status("paid"), "").
					Return(nil, orderservice.ErrInvalidStatus)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: orderservice.ErrInvalidStatus.Error(),
		},
		{
			name:    "Order not found",
			orderID: "2404815702",
			body:    `{"status":"pending"}`,
			prepareMock: func() {
				orders.EXPECT().
					ChangeStatus(gomock.Any(), "2404815702", domain.StatusPending, "").
					Return(nil, orderservice.ErrOrderNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Order not found",
		},
		{
			name:    "Transition not allowed",
			orderID: "2404815702",
			body:    `{"status":"completed"}`,
			prepareMock: func() {
				orders.EXPECT().
					ChangeStatus(gomock.Any(), "2404815702", domain.StatusCompleted, "").
					Return(nil, fmt.Errorf("%w: draft -> completed", orderservice.ErrInvalidTransition))
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "status transition not allowed: draft -> completed",
		},
		{
			name:    "Concurrent change",
			orderID: "2404815702",
			body:    `{"status":"pending"}`,
			prepareMock: func() {
				orders.EXPECT().
					ChangeStatus(gomock.Any(), "2404815702", domain.StatusPending, "").
					Return(nil, orderservice.ErrStatusConflict)
			},
			expectedCode:  http.StatusConflict,
			expectedError: orderservice.ErrStatusConflict.Error(),
		},
		{
			name:    "Internal server error",
			orderID: "2404815702",
			body:    `{"status":"pending"}`,
			prepareMock: func() {
				orders.EXPECT().
					ChangeStatus(gomock.Any(), "2404815702", domain.StatusPending, "").
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+tt.orderID+"/status", bytes.NewBufferString(tt.body))
			r = withParam(r, "orderID", tt.orderID)
			w := httptest.NewRecorder()

			handler.ChangeStatus(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeMessage(t, w))
				return
			}
			var body dto.OrderResponseDTO
			_ = json.NewDecoder(w.Body).Decode(&body)
			assert.Equal(t, "pending", body.Status)
		})
	}
}

func TestListOrders(t *testing.T) {
	handler, orders, _ := NewMock(t)

	tests := []struct {
		name          string
		query         string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedLen   int
	}{
		{
			name:  "Default limit",
			query: "status=draft",
			prepareMock: func() {
				orders.EXPECT().
					ListByStatus(gomock.Any(), domain.StatusDraft, 0).
					Return([]domain.Order{{ID: "2404815702"}, {ID: "1234567897"}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:  "Explicit limit",
			query: "status=review&limit=10",
			prepareMock: func() {
				orders.EXPECT().
					ListByStatus(gomock.Any(), domain.StatusReview, 10).
					Return([]domain.Order{{ID: "2404815702"}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:          "Invalid limit",
			query:         "status=draft&limit=many",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid limit",
		},
		{
			name:  "Unknown status",
			query: "status=lost",
			prepareMock: func() {
				orders.EXPECT().
					ListByStatus(gomock.Any(), domain.Status("lost"), 0).
					Return(nil, orderservice.ErrInvalidStatus)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: orderservice.ErrInvalidStatus.Error(),
		},
		{
			name:  "Nothing found",
			query: "status=completed",
			prepareMock: func() {
				orders.EXPECT().
					ListByStatus(gomock.Any(), domain.StatusCompleted, 0).
					Return(nil, nil)
			},
			expectedCode:  http.StatusNoContent,
			expectedError: "No data available",
		},
		{
			name:  "Internal server error",
			query: "status=draft",
			prepareMock: func() {
				orders.EXPECT().
					ListByStatus(gomock.Any(), domain.StatusDraft, 0).
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/admin/orders?"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ListOrders(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeMessage(t, w))
				return
			}
			var body []dto.OrderResponseDTO
			_ = json.NewDecoder(w.Body).Decode(&body)
			assert.Len(t, body, tt.expectedLen)
		})
	}
}

func TestCreatePromo(t *testing.T) {
	handler, _, promos := NewMock(t)
	expires := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.PromoResponseDTO
	}{
		{
			name: "Personal promo created",
			body: `{"code":"vip7","discount_type":"fixed","discount_value":300,"usage_limit":1,"expires_at":"2030-06-01T00:00:00Z","personal_user_id":7}`,
			prepareMock: func() {
				promos.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, promo *domain.PromoRecord) error {
						assert.True(t, promo.IsPersonal)
						assert.Equal(t, expires, promo.ExpiresAt.UTC())
						promo.Code = "VIP7"
						return nil
					})
			},
			expectedCode: http.StatusCreated,
			expectedBody: dto.PromoResponseDTO{
				Code:           "VIP7",
				DiscountType:   "fixed",
				DiscountValue:  300,
				UsageLimit:     1,
				ExpiresAt:      "2030-06-01T00:00:00Z",
				PersonalUserID: 7,
			},
		},
		{
			name:          "Invalid body",
			body:          `[]`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Rejected promo",
			body: `{"code":"BAD","discount_type":"percent","discount_value":150}`,
			prepareMock: func() {
				promos.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("%w: percent must be in [1, 100]", promoservice.ErrInvalidPromo))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid promo: percent must be in [1, 100]",
		},
		{
			name: "Duplicate code",
			body: `{"code":"SPRING10","discount_type":"percent","discount_value":10}`,
			prepareMock: func() {
				promos.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrPromoExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "Promo already exists",
		},
		{
			name: "Internal server error",
			body: `{"code":"SPRING10","discount_type":"percent","discount_value":10}`,
			prepareMock: func() {
				promos.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/admin/promos", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.CreatePromo(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeMessage(t, w))
				return
			}
			var body dto.PromoResponseDTO
			_ = json.NewDecoder(w.Body).Decode(&body)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestListPromoUsages(t *testing.T) {
	handler, _, promos := NewMock(t)
	usedAt := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  []dto.PromoUsageDTO
	}{
		{
			name: "Usages found",
			prepareMock: func() {
				promos.EXPECT().ListUsages(gomock.Any(), "SPRING10").Return([]domain.PromoUsage{
					{Code: "SPRING10", UserID: 7, OrderID: "2404815702", Discount: 250, UsedAt: usedAt},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: []dto.PromoUsageDTO{
				{UserID: 7, OrderID: "2404815702", Discount: 250, UsedAt: "2030-01-01T10:00:00Z"},
			},
		},
		{
			name: "No usages",
			prepareMock: func() {
				promos.EXPECT().ListUsages(gomock.Any(), "SPRING10").Return(nil, nil)
			},
			expectedCode:  http.StatusNoContent,
			expectedError: "No data available",
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				promos.EXPECT().ListUsages(gomock.Any(), "SPRING10").Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := withParam(httptest.NewRequest(http.MethodGet, "/api/admin/promos/SPRING10/usages", nil), "code", "SPRING10")
			w := httptest.NewRecorder()

			handler.ListPromoUsages(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeMessage(t, w))
				return
			}
			var body []dto.PromoUsageDTO
			_ = json.NewDecoder(w.Body).Decode(&body)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
