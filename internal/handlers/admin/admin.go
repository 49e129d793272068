package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/dto"
	"github.com/GlebRadaev/orderdesk/internal/service/orderservice"
	"github.com/GlebRadaev/orderdesk/internal/service/promoservice"
	"github.com/GlebRadaev/orderdesk/pkg/utils"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin

type OrderService interface {
	ChangeStatus(ctx context.Context, id string, to domain.Status, note string) (*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Order, error)
}

type PromoService interface {
	Create(ctx context.Context, promo *domain.PromoRecord) error
	ListUsages(ctx context.Context, code string) ([]domain.PromoUsage, error)
}

type AdminHandler struct {
	orderService OrderService
	promoService PromoService
}

func New(orderService OrderService, promoService PromoService) *AdminHandler {
	return &AdminHandler{
		orderService: orderService,
		promoService: promoService,
	}
}

// ChangeStatus godoc
//
//	@Summary		Change order status
//	@Description	Move the order to the next status and notify subscribers.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			orderID	path	string						true	"Order id"
//	@Param			request	body	dto.ChangeStatusRequestDTO	true	"New status"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body or status"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order changed concurrently"
//	@Failure		422	{object}	utils.Response	"Transition not allowed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders/{orderID}/status [patch]
func (h *AdminHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if !validate.IsLuna(orderID) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid order id")
		return
	}

	var req dto.ChangeStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.ChangeStatus(r.Context(), orderID, domain.Status(req.Status), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrInvalidStatus):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, orderservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, orderservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, orderservice.ErrStatusConflict):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// ListOrders godoc
//
//	@Summary		List orders by status
//	@Description	Return up to limit orders in the given status, oldest first.
//	@Tags			Admin
//	@Produce		json
//	@Param			status	query	string	true	"Order status"
//	@Param			limit	query	int		false	"Page size"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		400	{object}	utils.Response	"Invalid status or limit"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders [get]
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	orders, err := h.orderService.ListByStatus(r.Context(), domain.Status(query.Get("status")), limit)
	if err != nil {
		if errors.Is(err, orderservice.ErrInvalidStatus) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(orders) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.OrderResponseDTO, 0, len(orders))
	for _, order := range orders {
		response = append(response, dto.NewOrderResponse(order))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CreatePromo godoc
//
//	@Summary		Create a promo code
//	@Description	Create a percent or fixed promo code, optionally bound to one user.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreatePromoRequestDTO	true	"Promo code"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.PromoResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid promo"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		409	{object}	utils.Response	"Promo already exists"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/promos [post]
func (h *AdminHandler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePromoRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	promo := &domain.PromoRecord{
		Code:           req.Code,
		DiscountType:   domain.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		UsageLimit:     req.UsageLimit,
		IsPersonal:     req.PersonalUserID != 0,
		PersonalUserID: req.PersonalUserID,
		MinOrderAmount: req.MinOrderAmount,
	}
	if req.ExpiresAt != nil {
		promo.ExpiresAt = *req.ExpiresAt
	}

	if err := h.promoService.Create(r.Context(), promo); err != nil {
		switch {
		case errors.Is(err, promoservice.ErrInvalidPromo):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrPromoExists):
			utils.RespondWithError(w, http.StatusConflict, "Promo already exists")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	resp := dto.PromoResponseDTO{
		Code:           promo.Code,
		DiscountType:   string(promo.DiscountType),
		DiscountValue:  promo.DiscountValue,
		UsageLimit:     promo.UsageLimit,
		UsedCount:      promo.UsedCount,
		PersonalUserID: promo.PersonalUserID,
		MinOrderAmount: promo.MinOrderAmount,
	}
	if !promo.ExpiresAt.IsZero() {
		resp.ExpiresAt = promo.ExpiresAt.Format(time.RFC3339)
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ListPromoUsages godoc
//
//	@Summary		List promo code usages
//	@Description	Return every order the promo code was applied to.
//	@Tags			Admin
//	@Produce		json
//	@Param			code	path	string	true	"Promo code"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PromoUsageDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/promos/{code}/usages [get]
func (h *AdminHandler) ListPromoUsages(w http.ResponseWriter, r *http.Request) {
	usages, err := h.promoService.ListUsages(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(usages) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.PromoUsageDTO, 0, len(usages))
	for _, u := range usages {
		response = append(response, dto.PromoUsageDTO{
			UserID:   u.UserID,
			OrderID:  u.OrderID,
			Discount: u.Discount,
			UsedAt:   u.UsedAt.Format(time.RFC3339),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
