package repository

import (
	"fmt"
	"strconv"

	"linkrank/internal/model"
	"linkrank/internal/store"
)

// 哈希字段都是字符串，数值的解析/格式化只发生在这一层。
// 字段名与既有数据集保持一致（userId/ctime/up/down/comments）。

func postToHash(p *model.Post) map[string]string {
	return map[string]string{
		"id":       strconv.FormatUint(p.ID, 10),
		"title":    p.Title,
		"url":      p.URL,
		"userId":   strconv.FormatUint(p.AuthorID, 10),
		"ctime":    strconv.FormatInt(p.CreatedAt, 10),
		"score":    formatScore(p.Score),
		"up":       strconv.FormatUint(p.Upvotes, 10),
		"down":     strconv.FormatUint(p.Downvotes, 10),
		"comments": strconv.FormatUint(p.CommentCount, 10),
	}
}

func postFromHash(h map[string]string) (*model.Post, error) {
	if len(h) == 0 {
		return nil, nil
	}
	var (
		p   model.Post
		err error
	)
	if p.ID, err = parseUint(h, "id"); err != nil {
		return nil, err
	}
	p.Title = h["title"]
	p.URL = h["url"]
	if p.AuthorID, err = parseUint(h, "userId"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseInt(h, "ctime"); err != nil {
		return nil, err
	}
	if p.Score, err = parseFloat(h, "score"); err != nil {
		return nil, err
	}
	if p.Upvotes, err = parseUint(h, "up"); err != nil {
		return nil, err
	}
	if p.Downvotes, err = parseUint(h, "down"); err != nil {
		return nil, err
	}
	if p.CommentCount, err = parseUint(h, "comments"); err != nil {
		return nil, err
	}
	return &p, nil
}

func userToHash(u *model.User) map[string]string {
	return map[string]string{
		"id":        strconv.FormatUint(u.ID, 10),
		"username":  u.Username,
		"email":     u.Email,
		"password":  u.Password,
		"ctime":     strconv.FormatInt(u.CreatedAt, 10),
		"karma":     strconv.FormatInt(u.Karma, 10),
		"about":     u.About,
		"auth":      u.Auth,
		"apisecret": u.APISecret,
		"flags":     u.Flags,
	}
}

func userFromHash(h map[string]string) (*model.User, error) {
	if len(h) == 0 {
		return nil, nil
	}
	var (
		u   model.User
		err error
	)
	if u.ID, err = parseUint(h, "id"); err != nil {
		return nil, err
	}
	u.Username = h["username"]
	u.Email = h["email"]
	u.Password = h["password"]
	if u.CreatedAt, err = parseInt(h, "ctime"); err != nil {
		return nil, err
	}
	if u.Karma, err = parseInt(h, "karma"); err != nil {
		return nil, err
	}
	u.About = h["about"]
	u.Auth = h["auth"]
	u.APISecret = h["apisecret"]
	u.Flags = h["flags"]
	return &u, nil
}

func formatScore(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func userIDString(id uint64) string { return strconv.FormatUint(id, 10) }

func parseUint(h map[string]string, field string) (uint64, error) {
	v, err := strconv.ParseUint(h[field], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q = %q", store.ErrProtocol, field, h[field])
	}
	return v, nil
}

func parseInt(h map[string]string, field string) (int64, error) {
	v, err := strconv.ParseInt(h[field], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q = %q", store.ErrProtocol, field, h[field])
	}
	return v, nil
}

func parseFloat(h map[string]string, field string) (float64, error) {
	v, err := strconv.ParseFloat(h[field], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q = %q", store.ErrProtocol, field, h[field])
	}
	return v, nil
}
