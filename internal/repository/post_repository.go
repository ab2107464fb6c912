package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"linkrank/internal/model"
	"linkrank/internal/store"
)

// ErrTitleRequired 提交校验失败：标题为空
var ErrTitleRequired = errors.New("title is required")

type PostRepository interface {
	// Create 分配 id、落哈希，并写入时序索引与作者的已发布索引
	Create(ctx context.Context, title, url string, authorID uint64) (*model.Post, error)
	// GetByID 不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint64) (*model.Post, error)
	// GetByIDs 保序批量取回，缺失的 id 跳过
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	UpdateScore(ctx context.Context, id uint64, score float64) error
}

type postRepository struct {
	st store.Store
}

func NewPostRepository(st store.Store) PostRepository { return &postRepository{st: st} }

func (r *postRepository) Create(ctx context.Context, title, url string, authorID uint64) (*model.Post, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	id, err := r.st.IncrScalar(ctx, KeyPostsCount)
	if err != nil {
		return nil, err
	}
	p := &model.Post{
		ID:        uint64(id),
		Title:     title,
		URL:       url,
		AuthorID:  authorID,
		CreatedAt: time.Now().Unix(),
	}
	if err := r.st.SetHashFields(ctx, PostKey(p.ID), postToHash(p)); err != nil {
		return nil, err
	}
	member := strconv.FormatUint(p.ID, 10)
	ctime := float64(p.CreatedAt)
	if _, err := r.st.ZUpsert(ctx, KeyChronological, member, ctime); err != nil {
		return nil, err
	}
	if _, err := r.st.ZUpsert(ctx, UserPostedKey(authorID), member, ctime); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	h, err := r.st.GetHash(ctx, PostKey(id))
	if err != nil {
		return nil, err
	}
	return postFromHash(h)
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	res := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			// 索引里有但记录已缺失：降级为短列表而不是整体失败
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func (r *postRepository) UpdateScore(ctx context.Context, id uint64, score float64) error {
	return r.st.SetHashFields(ctx, PostKey(id), map[string]string{"score": formatScore(score)})
}
