package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID uint64, slug string, createDTO *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, userID, commentID uint64, updateDTO *dto.UpdateCommentDTO) error
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	ListComments(ctx context.Context, viewerID uint64, slug string, limit, offset int) ([]*dto.CommentDTO, error)
}

type CommentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
}

func NewCommentService(commentRepo repository.CommentRepo, postRepo repository.PostRepo) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment 只有已发布的帖子可以评论
func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID uint64, slug string, createDTO *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.Published {
		return nil, ErrPostNotPublished
	}

	comment := &model.Comment{
		PostID: post.ID,
		UserID: userID,
		Body:   createDTO.Body,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	commentDTO := s.toCommentDTO(comment)
	s.broadcastComment(ctx, post.ID, commentDTO)
	return commentDTO, nil
}

// broadcastComment 把新评论实时推给订阅该帖子的在线连接，失败只记日志
func (s *CommentServiceImpl) broadcastComment(ctx context.Context, postID uint64, commentDTO *dto.CommentDTO) {
	payload, err := json.Marshal(map[string]any{
		"type":    "comment",
		"post_id": postID,
		"comment": commentDTO,
	})
	if err != nil {
		return
	}
	channel := consts.CommentChannelKey + strconv.FormatUint(postID, 10)
	if err := redis.Publish(ctx, channel, string(payload)); err != nil {
		log.WarnContext(ctx, "failed to broadcast comment", "post_id", postID, "err", err)
	}
}

func (s *CommentServiceImpl) UpdateComment(ctx context.Context, userID, commentID uint64, updateDTO *dto.UpdateCommentDTO) error {
	comment, err := s.commentRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}
	comment.Body = updateDTO.Body
	return s.commentRepo.UpdateComment(ctx, comment)
}

func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}
	return s.commentRepo.DeleteComment(ctx, comment)
}

func (s *CommentServiceImpl) ListComments(ctx context.Context, viewerID uint64, slug string, limit, offset int) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.ViewableBy(viewerID) {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		result = append(result, s.toCommentDTO(comment))
	}
	return result, nil
}

func (s *CommentServiceImpl) toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	commentDTO := &dto.CommentDTO{}
	_ = copier.Copy(commentDTO, comment)
	if comment.User != nil {
		commentDTO.Username = comment.User.Username
	}
	return commentDTO
}
