package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followSvc service.FollowService
}

func NewUserFollowHandler(followSvc service.FollowService) *UserFollowHandler {
	return &UserFollowHandler{followSvc: followSvc}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	username := c.Param("username")

	if err := s.followSvc.Follow(c.Request.Context(), userID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	username := c.Param("username")

	if err := s.followSvc.Unfollow(c.Request.Context(), userID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) IsFollowing(c *gin.Context) {
	userID := c.GetUint64("user_id")
	username := c.Param("username")

	following, err := s.followSvc.IsFollowing(c.Request.Context(), userID, username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"following": following})
}

func (s *UserFollowHandler) ListFollowers(c *gin.Context) {
	username := c.Param("username")

	var listDTO dto.ListPostDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}

	users, err := s.followSvc.ListFollowers(c.Request.Context(), username, listDTO.Limit, listDTO.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserFollowHandler) ListFollowing(c *gin.Context) {
	username := c.Param("username")

	var listDTO dto.ListPostDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}

	users, err := s.followSvc.ListFollowing(c.Request.Context(), username, listDTO.Limit, listDTO.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}
