package orders

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/dto"
	"github.com/go-chi/chi/v5"

	orderservice "github.com/GlebRadaev/orderdesk/internal/service/orderservice"
	"github.com/GlebRadaev/orderdesk/pkg/utils"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
)

//go:generate mockgen -source=orders.go -destination=mock_orders.go -package=orders

type Service interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GetOrder godoc
//
//	@Summary		Get an order
//	@Description	Return the order with its status history.
//	@Tags			Orders
//	@Produce		json
//	@Param			orderID	path	string	true	"Order id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		422	{object}	utils.Response	"Invalid order id"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{orderID} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if !validate.IsLuna(orderID) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid order id")
		return
	}

	order, err := h.orderService.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

// GetUserOrders godoc
//
//	@Summary		Get orders of a user
//	@Description	Retrieve the orders placed by the user, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			userID	path	int	true	"User id"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		400	{object}	utils.Response	"Invalid user id"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{userID}/orders [get]
func (h *OrderHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	orders, err := h.orderService.ListByUser(r.Context(), userID)
	if err != nil {
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
