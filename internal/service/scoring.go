package service

import (
	"math"
	"time"
)

// DefaultGravity 年龄压制指数，越大越偏向新帖
const DefaultGravity = 1.8

// Score computes the time-decayed popularity of a post.
//
//	score = (up - down - 1) / (ageHours + 2)^gravity
//
// The -1 offsets the mandatory self-upvote every submission starts with,
// so a fresh unvoted post scores exactly zero. The +2 floor keeps very
// young posts from blowing up the denominator. Pure and deterministic.
func Score(upvotes, downvotes uint64, ageHours, gravity float64) float64 {
	votes := float64(upvotes) - float64(downvotes)
	return (votes - 1) / math.Pow(ageHours+2, gravity)
}

// AgeHours 帖子从创建到 now 的小时数
func AgeHours(createdAt int64, now time.Time) float64 {
	return math.Abs(float64(now.Unix()-createdAt)) / 3600.0
}
