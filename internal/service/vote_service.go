package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"linkrank/internal/model"
	"linkrank/internal/repository"
	"linkrank/internal/store"
	"linkrank/pkg/logger"
	"linkrank/pkg/metrics"
)

var (
	// ErrDuplicateVote 同一用户对同一帖子只能投一次，换方向也不行
	ErrDuplicateVote = errors.New("duplicated vote")
	ErrPostNotFound  = errors.New("post not found")
	ErrBadDirection  = errors.New("invalid vote direction")
	// ErrNotEnoughKarma 仅在配置了投票门槛时出现
	ErrNotEnoughKarma = errors.New("not enough karma to vote")
)

// VoteService 投票引擎
type VoteService interface {
	// CastVote 记录一票并返回帖子的新分值
	CastVote(ctx context.Context, postID, voterID uint64, dir model.Direction) (float64, error)
}

type voteService struct {
	st       store.Store
	posts    repository.PostRepository
	users    repository.UserRepository
	gravity  float64
	minKarma int64
}

// NewVoteService 构造投票引擎。minKarma 为投票门槛，0 表示不启用（线上默认）。
func NewVoteService(st store.Store, posts repository.PostRepository, users repository.UserRepository, gravity float64, minKarma int64) VoteService {
	if gravity <= 0 {
		gravity = DefaultGravity
	}
	return &voteService{st: st, posts: posts, users: users, gravity: gravity, minKarma: minKarma}
}

func (s *voteService) CastVote(ctx context.Context, postID, voterID uint64, dir model.Direction) (float64, error) {
	if !dir.Valid() {
		return 0, ErrBadDirection
	}
	voter := strconv.FormatUint(voterID, 10)

	// 查重：出现在任一方向集合里都算重复。两个不同用户并发互不影响，
	// 同一用户在查重与 ZADD 之间并发重投也只会刷新时间戳，不会双计数。
	for _, d := range []model.Direction{model.DirectionUp, model.DirectionDown} {
		if _, voted, err := s.st.ZScore(ctx, repository.VoteSetKey(postID, d), voter); err != nil {
			return 0, err
		} else if voted {
			metrics.DuplicateVotesTotal.Inc()
			return 0, ErrDuplicateVote
		}
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrPostNotFound
	}

	// 投票门槛默认关闭；作者给自己的提交票不受门槛限制
	if s.minKarma > 0 && post.AuthorID != voterID {
		u, err := s.users.GetByID(ctx, voterID)
		if err != nil {
			return 0, err
		}
		if u == nil || u.Karma < s.minKarma {
			return 0, ErrNotEnoughKarma
		}
	}

	now := time.Now().Unix()
	added, err := s.st.ZUpsert(ctx, repository.VoteSetKey(postID, dir), voter, float64(now))
	if err != nil {
		return 0, err
	}
	if added > 0 {
		// 计数只走原子自增，避免读改写丢更新
		n, err := s.st.IncrHashField(ctx, repository.PostKey(postID), dir.String(), 1)
		if err != nil {
			return 0, err
		}
		switch dir {
		case model.DirectionUp:
			post.Upvotes = uint64(n)
		case model.DirectionDown:
			post.Downvotes = uint64(n)
		}
	}

	postMember := strconv.FormatUint(postID, 10)
	if dir == model.DirectionUp {
		// 赞即收藏，作者给自己的提交票也算
		if _, err := s.st.ZUpsert(ctx, repository.UserSavedKey(voterID), postMember, float64(now)); err != nil {
			return 0, err
		}
	}

	score := Score(post.Upvotes, post.Downvotes, AgeHours(post.CreatedAt, time.Now()), s.gravity)
	if err := s.posts.UpdateScore(ctx, postID, score); err != nil {
		return 0, err
	}

	// 排行索引尽力而为：失败记日志不回滚，下一次成功投票会重写该帖分值
	if _, err := s.st.ZUpsert(ctx, repository.KeyTop, postMember, score); err != nil {
		logger.Warn("top index upsert failed",
			zap.Uint64("post_id", postID), zap.Error(err))
	}

	if post.AuthorID != voterID {
		delta := int64(1)
		if dir == model.DirectionDown {
			delta = -1
		}
		if _, err := s.users.IncrKarma(ctx, post.AuthorID, delta); err != nil {
			return 0, err
		}
	}

	metrics.VotesTotal.WithLabelValues(dir.String()).Inc()
	return score, nil
}
