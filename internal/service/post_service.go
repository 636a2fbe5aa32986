package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/taskqueue"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, createDTO *dto.CreatePostDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID uint64, slug string, updateDTO *dto.UpdatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, viewerID uint64, slug string) (*dto.PostNavigationDTO, error)
	ListPosts(ctx context.Context, viewerID uint64, limit, offset int) ([]*dto.PostDTO, error)
	ListUserPosts(ctx context.Context, viewerID uint64, username string, limit, offset int) ([]*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, slug string) error
	SearchPosts(ctx context.Context, searchDTO *dto.SearchPostDTO) ([]*dto.PostDTO, error)
}

type PostServiceImpl struct {
	postRepo repository.PostRepo
	userRepo repository.UserRepo
	esRepo   es.PostRepo
	queue    taskqueue.Queue
	now      func() time.Time
}

func NewPostService(
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	esRepo es.PostRepo,
	queue taskqueue.Queue,
) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
		userRepo: userRepo,
		esRepo:   esRepo,
		queue:    queue,
		now:      time.Now,
	}
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, createDTO *dto.CreatePostDTO) (*dto.PostDTO, error) {
	slug, err := s.resolveSlug(ctx, createDTO.Title)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:      userID,
		Title:       createDTO.Title,
		Body:        createDTO.Body,
		Slug:        slug,
		PublishedAt: createDTO.PublishedAt,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if err := s.dispatchPublication(ctx, post); err != nil {
		return nil, err
	}
	return s.toPostDTO(post), nil
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, userID uint64, slug string, updateDTO *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, UnauthorizedError
	}
	// 发布时间在帖子发布后锁定，清空或改动都会破坏已发布态的自洽
	if post.Published && !samePublishTime(post.PublishedAt, updateDTO.PublishedAt) {
		return nil, ErrPublishTimeLocked
	}

	post.Title = updateDTO.Title
	post.Body = updateDTO.Body
	post.PublishedAt = updateDTO.PublishedAt
	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	// 已发布的帖子 ShouldSchedule 恒为假，编辑不会再次触发投递
	if err := s.dispatchPublication(ctx, post); err != nil {
		return nil, err
	}
	return s.toPostDTO(post), nil
}

func samePublishTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (s *PostServiceImpl) GetPost(ctx context.Context, viewerID uint64, slug string) (*dto.PostNavigationDTO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// 不可见与不存在对外同义
	if post == nil || !post.ViewableBy(viewerID) {
		return nil, ErrPostNotFound
	}

	ownerScoped := viewerID != 0 && viewerID == post.UserID
	prev, err := s.postRepo.PreviousPost(ctx, post, ownerScoped)
	if err != nil {
		return nil, err
	}
	next, err := s.postRepo.NextPost(ctx, post, ownerScoped)
	if err != nil {
		return nil, err
	}

	nav := &dto.PostNavigationDTO{Post: s.toPostDTO(post)}
	if prev != nil {
		nav.Previous = s.toPostDTO(prev)
	}
	if next != nil {
		nav.Next = s.toPostDTO(next)
	}
	return nav, nil
}

func (s *PostServiceImpl) ListPosts(ctx context.Context, viewerID uint64, limit, offset int) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.ListVisible(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, s.toPostDTO(post))
	}
	return result, nil
}

func (s *PostServiceImpl) ListUserPosts(ctx context.Context, viewerID uint64, username string, limit, offset int) ([]*dto.PostDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	posts, err := s.postRepo.ListByUser(ctx, user.ID, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO := s.toPostDTO(post)
		postDTO.Username = user.Username
		result = append(result, postDTO)
	}
	return result, nil
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, userID uint64, slug string) error {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}

	if err := s.postRepo.DeletePost(ctx, post.ID); err != nil {
		return err
	}
	if err := s.esRepo.DeletePost(ctx, post.ID); err != nil {
		log.WarnContext(ctx, "failed to remove post from search index", "post_id", post.ID, "err", err)
	}
	return nil
}

func (s *PostServiceImpl) SearchPosts(ctx context.Context, searchDTO *dto.SearchPostDTO) ([]*dto.PostDTO, error) {
	docs, err := s.esRepo.SearchPosts(ctx, searchDTO.Keyword, searchDTO.From, searchDTO.Size)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.PostDTO, 0, len(docs))
	for _, doc := range docs {
		publishedAt := doc.PublishedAt
		result = append(result, &dto.PostDTO{
			ID:          doc.ID,
			UserID:      doc.UserID,
			Title:       doc.Title,
			Body:        doc.Body,
			Slug:        doc.Slug,
			State:       model.StatePublished.String(),
			Published:   true,
			PublishedAt: &publishedAt,
		})
	}
	return result, nil
}

// dispatchPublication 落库后的发布决策：需要排期则投递一个携带
// 当时计划时间的任务，计划时间在未来则延迟到点执行，否则立即执行
func (s *PostServiceImpl) dispatchPublication(ctx context.Context, post *model.Post) error {
	if !post.ShouldSchedule() {
		return nil
	}

	task := taskqueue.Task{
		Kind:        consts.TaskKindPublishPost,
		PostID:      post.ID,
		ScheduledAt: post.ScheduleEpoch(),
	}
	if post.PublishedAt.After(s.now()) {
		return s.queue.EnqueueAt(ctx, task, *post.PublishedAt)
	}
	return s.queue.Enqueue(ctx, task)
}

func (s *PostServiceImpl) resolveSlug(ctx context.Context, title string) (string, error) {
	slug := util.Slugify(title)
	existing, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if existing != nil {
		slug = util.UniqueSlug(slug)
	}
	return slug, nil
}

func (s *PostServiceImpl) toPostDTO(post *model.Post) *dto.PostDTO {
	postDTO := &dto.PostDTO{}
	if err := copier.Copy(postDTO, post); err != nil {
		log.Warn("failed to copy post fields", "post_id", post.ID, "err", err)
	}
	postDTO.State = post.State(s.now()).String()
	if post.User.ID != 0 {
		postDTO.Username = post.User.Username
	}
	return postDTO
}
