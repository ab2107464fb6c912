package repository

import (
	"fmt"

	"linkrank/internal/model"
)

// 键名约定与既有数据集兼容，不可更改。
const (
	KeyTop           = "post.top"           // zset: postId -> score
	KeyChronological = "post.chronological" // zset: postId -> ctime
	KeyPostsCount    = "posts.count"        // scalar: id 分配器
	KeyUsersCount    = "users.count"
)

func PostKey(id uint64) string { return fmt.Sprintf("post:%d", id) }

// VoteSetKey 方向集合：post.up:{id} / post.down:{id}，成员 userId -> 投票时间
func VoteSetKey(postID uint64, d model.Direction) string {
	return fmt.Sprintf("post.%s:%d", d, postID)
}

func UserKey(id uint64) string { return fmt.Sprintf("user:%d", id) }

func UserPostedKey(id uint64) string { return fmt.Sprintf("user.posted:%d", id) }

func UserSavedKey(id uint64) string { return fmt.Sprintf("user.saved:%d", id) }

func UsernameKey(name string) string { return "username.to.id:" + name }

func EmailKey(email string) string { return "email.to.id:" + email }

func AuthKey(token string) string { return "auth:" + token }
