package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFreshSelfVotedPostIsZero(t *testing.T) {
	// 刚提交的帖子只有作者自己的一票，分值应当恰好为 0
	assert.Equal(t, 0.0, Score(1, 0, 0, DefaultGravity))
}

func TestScoreExactValue(t *testing.T) {
	// (2-0-1) / (0+2)^1.8
	want := 1.0 / math.Pow(2, 1.8)
	assert.Equal(t, want, Score(2, 0, 0, DefaultGravity))
}

func TestScoreMonotonicity(t *testing.T) {
	// 固定票数，分值随年龄严格下降
	prev := Score(10, 2, 0, DefaultGravity)
	for _, age := range []float64{1, 5, 24, 72, 240} {
		cur := Score(10, 2, age, DefaultGravity)
		require.Less(t, cur, prev, "age=%v", age)
		prev = cur
	}

	// 固定年龄，随赞成票严格上升
	prev = Score(1, 2, 6, DefaultGravity)
	for u := uint64(2); u < 20; u++ {
		cur := Score(u, 2, 6, DefaultGravity)
		require.Greater(t, cur, prev, "up=%d", u)
		prev = cur
	}

	// 固定年龄，随反对票严格下降
	prev = Score(10, 0, 6, DefaultGravity)
	for d := uint64(1); d < 20; d++ {
		cur := Score(10, d, 6, DefaultGravity)
		require.Less(t, cur, prev, "down=%d", d)
		prev = cur
	}
}

func TestScoreHigherGravityFavorsFresh(t *testing.T) {
	// gravity 越大，老帖被压得越狠
	old := 48.0
	assert.Greater(t, Score(50, 0, old, 1.5), Score(50, 0, old, 2.5))
}

func TestScoreDeterministic(t *testing.T) {
	a := Score(123, 45, 67.89, DefaultGravity)
	b := Score(123, 45, 67.89, DefaultGravity)
	assert.Equal(t, a, b)
}

func TestAgeHours(t *testing.T) {
	now := time.Now()
	assert.InDelta(t, 2.0, AgeHours(now.Add(-2*time.Hour).Unix(), now), 0.001)
	// 时钟偏差导致的未来时间取绝对值，不产生负年龄
	assert.GreaterOrEqual(t, AgeHours(now.Add(time.Hour).Unix(), now), 0.0)
}
