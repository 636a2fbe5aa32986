package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

func (s *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.GetUint64("user_id")
	username := c.GetString("username")

	var sendDTO dto.SendMessageDTO
	if err := c.ShouldBindJSON(&sendDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.chatSvc.SendMessage(c.Request.Context(), userID, username, sendDTO.Message); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ChatHandler) GetHistory(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}

	messages, err := s.chatSvc.GetHistory(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}
