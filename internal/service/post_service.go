package service

import (
	"context"
	"fmt"
	"strconv"

	"linkrank/internal/model"
	"linkrank/internal/repository"
	"linkrank/internal/store"
	"linkrank/pkg/markdown"
	"linkrank/pkg/metrics"
)

// PostService 提交流程与各排行视图的读取
type PostService interface {
	// Submit 创建帖子并代作者投出首张赞成票。帖子已落库而自动投票失败时，
	// 返回已创建的帖子和该错误（不回滚）。
	Submit(ctx context.Context, title, url, text string, authorID uint64) (*model.Post, error)
	Get(ctx context.Context, id uint64) (*model.Post, error)
	Top(ctx context.Context, page, pageSize int) ([]*model.Post, error)
	Newest(ctx context.Context, page, pageSize int) ([]*model.Post, error)
	Saved(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, error)
	Posted(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, error)
}

type postService struct {
	st    store.Store
	posts repository.PostRepository
	users repository.UserRepository
	votes VoteService
}

func NewPostService(st store.Store, posts repository.PostRepository, users repository.UserRepository, votes VoteService) PostService {
	return &postService{st: st, posts: posts, users: users, votes: votes}
}

func (s *postService) Submit(ctx context.Context, title, url, text string, authorID uint64) (*model.Post, error) {
	if url == "" && text != "" {
		url = model.TextURLScheme + text
	}
	post, err := s.posts.Create(ctx, title, url, authorID)
	if err != nil {
		return nil, err
	}
	metrics.SubmissionsTotal.Inc()

	// 提交自带一张作者的赞成票；排行索引也在这一步写入
	score, err := s.votes.CastVote(ctx, post.ID, authorID, model.DirectionUp)
	if err != nil {
		return post, fmt.Errorf("record submission vote: %w", err)
	}
	post.Upvotes = 1
	post.Score = score
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil || post == nil {
		return nil, err
	}
	s.decorate(ctx, []*model.Post{post})
	if post.IsText() {
		post.TextHTML = markdown.Render(post.Text())
	}
	return post, nil
}

func (s *postService) Top(ctx context.Context, page, pageSize int) ([]*model.Post, error) {
	return s.list(ctx, repository.KeyTop, page, pageSize)
}

func (s *postService) Newest(ctx context.Context, page, pageSize int) ([]*model.Post, error) {
	return s.list(ctx, repository.KeyChronological, page, pageSize)
}

func (s *postService) Saved(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, error) {
	return s.list(ctx, repository.UserSavedKey(userID), page, pageSize)
}

func (s *postService) Posted(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, error) {
	return s.list(ctx, repository.UserPostedKey(userID), page, pageSize)
}

// list 按排名倒序读一页 id，再保序解析成完整帖子
func (s *postService) list(ctx context.Context, indexKey string, page, pageSize int) ([]*model.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 30
	}
	start := int64((page - 1) * pageSize)
	stop := start + int64(pageSize) - 1
	members, err := s.st.ZRange(ctx, indexKey, start, stop, true)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			// 索引里的脏成员跳过，不让整页失败
			continue
		}
		ids = append(ids, id)
	}
	posts, err := s.posts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, posts)
	return posts, nil
}

// decorate 批量补全作者用户名，同一作者只查一次
func (s *postService) decorate(ctx context.Context, posts []*model.Post) {
	names := make(map[uint64]string)
	for _, p := range posts {
		name, ok := names[p.AuthorID]
		if !ok {
			name, _ = s.users.Username(ctx, p.AuthorID)
			names[p.AuthorID] = name
		}
		p.Author = name
	}
}
