package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var createDTO dto.CreatePostDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	slug := c.Param("slug")

	var updateDTO dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), userID, slug, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	slug := c.Param("slug")

	nav, err := s.postSvc.GetPost(c.Request.Context(), viewerID, slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nav)
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	viewerID := c.GetUint64("user_id")

	var listDTO dto.ListPostDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), viewerID, listDTO.Limit, listDTO.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) ListUserPosts(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	username := c.Param("username")

	var listDTO dto.ListPostDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.ListUserPosts(c.Request.Context(), viewerID, username, listDTO.Limit, listDTO.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	slug := c.Param("slug")

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, slug); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) SearchPosts(c *gin.Context) {
	var searchDTO dto.SearchPostDTO
	if err := c.ShouldBindQuery(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.SearchPosts(c.Request.Context(), &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
