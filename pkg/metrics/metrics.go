package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkrank_submissions_total",
		Help: "Number of posts submitted.",
	})

	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkrank_votes_total",
		Help: "Number of votes recorded, by direction.",
	}, []string{"direction"})

	DuplicateVotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkrank_duplicate_votes_total",
		Help: "Number of votes rejected by the duplicate check.",
	})
)

// Handler 暴露 /metrics
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
