package es

import (
	"context"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const MaxSearchDepth = 400

type PostRepo interface {
	IndexPost(ctx context.Context, post *PostES) error
	DeletePost(ctx context.Context, id uint64) error
	SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error)
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// IndexPost 写入或覆盖搜索文档
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES) error {
	_, err := s.client.Index(PostIndex).
		Id(strconv.FormatUint(post.ID, 10)).
		Request(post).
		Do(ctx)
	if err != nil {
		return errors.Wrap(err, "index post")
	}
	return nil
}

// DeletePost 移除搜索文档，文档不存在不算错误
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	_, err := s.client.Delete(PostIndex, strconv.FormatUint(id, 10)).Do(ctx)
	if err != nil {
		return errors.Wrap(err, "delete post doc")
	}
	return nil
}

// SearchPosts 标题加权的全文检索，索引内只有已发布帖子
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	res, err := s.client.Search().
		Index(PostIndex).
		From(from).
		Size(size).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: []string{"title^2", "body"},
			},
		}).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "search posts")
	}

	posts := make([]*PostES, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var post PostES
		if err := json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		posts = append(posts, &post)
	}
	return posts, nil
}
