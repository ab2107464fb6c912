package model

import "strings"

// TextURLScheme 无外部链接的讨论帖把正文存进 url 字段
const TextURLScheme = "text://"

// Post 帖子主体（post:{id} 哈希的强类型视图）
type Post struct {
	ID           uint64  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	AuthorID     uint64  `json:"author_id"`
	CreatedAt    int64   `json:"created_at"` // unix 秒
	Score        float64 `json:"score"`
	Upvotes      uint64  `json:"upvotes"`
	Downvotes    uint64  `json:"downvotes"`
	CommentCount uint64  `json:"comment_count"`

	// 非存储字段，查询时填充
	Author   string `json:"author,omitempty"`
	TextHTML string `json:"text_html,omitempty"`
}

// IsText 是否为讨论帖（正文型，无外部链接）
func (p *Post) IsText() bool { return strings.HasPrefix(p.URL, TextURLScheme) }

// Text 返回讨论帖的原始正文
func (p *Post) Text() string { return strings.TrimPrefix(p.URL, TextURLScheme) }
