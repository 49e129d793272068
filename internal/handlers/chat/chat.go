package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/dto"
	"github.com/GlebRadaev/orderdesk/internal/service/intake"
	"github.com/GlebRadaev/orderdesk/pkg/utils"
)

//go:generate mockgen -source=chat.go -destination=mock_chat.go -package=chat

const maxEventBytes = 64 << 10

type Service interface {
	Handle(ctx context.Context, in intake.Input) (*intake.Reply, error)
}

type ChatHandler struct {
	chatService Service
}

func New(chatService Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// HandleEvent godoc
//
//	@Summary		Process a chat message
//	@Description	Feed one user message or attachment into the order form and return the bot reply.
//	@Tags			Chat
//	@Accept			json
//	@Produce		json
//	@Param			event	body	dto.ChatEventRequestDTO	true	"User message"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ChatReplyDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/chat/events [post]
func (h *ChatHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatEventRequestDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.Text == "" && req.Attachment == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Either text or attachment is required")
		return
	}

	in := intake.Input{UserID: req.UserID, Text: req.Text}
	if a := req.Attachment; a != nil {
		in.Attachment = &domain.Attachment{
			FileID:      a.FileID,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Size:        a.Size,
		}
	}

	reply, err := h.chatService.Handle(r.Context(), in)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ChatReplyDTO{
		Messages:  reply.Messages,
		Choices:   reply.Choices,
		Step:      string(reply.Step),
		Price:     reply.Price,
		Discount:  reply.Discount,
		OrderID:   reply.OrderID,
		ErrorCode: intake.ErrorCode(reply.Err),
	})
}
