package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"linkrank/internal/model"
	"linkrank/internal/repository"
	"linkrank/internal/service"
	"linkrank/internal/store"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			return v
		}
	}
	return def
}

func main() {
	ctx := context.Background()

	// params
	USERS := envInt("USERS", 1000)
	POSTS := envInt("POSTS", 200)
	VOTES := envInt("VOTES", 20000)
	WORKERS := envInt("WORKERS", 8)

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		m := must(miniredis.Run())
		defer m.Close()
		addr = m.Addr()
		fmt.Println("REDIS_ADDR not set, using embedded miniredis")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 9})
	defer rdb.Close()
	// bench 库清空，保证可复现
	must(rdb.FlushDB(ctx).Result())

	st := store.NewRedis(rdb)
	postRepo := repository.NewPostRepository(st)
	userRepo := repository.NewUserRepository(st)
	voteSvc := service.NewVoteService(st, postRepo, userRepo, service.DefaultGravity, 0)
	postSvc := service.NewPostService(st, postRepo, userRepo, voteSvc)

	// seed users (绕过 bcrypt，压测不关心口令)
	now := time.Now().Unix()
	userIDs := make([]uint64, USERS)
	for i := 0; i < USERS; i++ {
		u := &model.User{
			Username:  fmt.Sprintf("u%06d", i),
			Email:     fmt.Sprintf("u%06d@example.com", i),
			Password:  "x",
			CreatedAt: now,
			Karma:     1,
			Auth:      fmt.Sprintf("tok%06d", i),
			APISecret: fmt.Sprintf("sec%06d", i),
		}
		if err := userRepo.Create(ctx, u); err != nil {
			panic(err)
		}
		userIDs[i] = u.ID
	}

	// seed posts（走完整提交流程，含作者自动投票）
	postIDs := make([]uint64, 0, POSTS)
	for i := 0; i < POSTS; i++ {
		author := userIDs[rand.Intn(len(userIDs))]
		p, err := postSvc.Submit(ctx, fmt.Sprintf("post %d", i), fmt.Sprintf("https://example.com/%d", i), "", author)
		if err != nil {
			panic(err)
		}
		postIDs = append(postIDs, p.ID)
	}

	// concurrent vote phase
	var (
		mu         sync.Mutex
		latencies  []time.Duration
		duplicates int
		wg         sync.WaitGroup
	)
	perWorker := VOTES / WORKERS
	start := time.Now()
	for w := 0; w < WORKERS; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			local := make([]time.Duration, 0, perWorker)
			dups := 0
			for i := 0; i < perWorker; i++ {
				voter := userIDs[rng.Intn(len(userIDs))]
				post := postIDs[rng.Intn(len(postIDs))]
				dir := model.DirectionUp
				if rng.Intn(10) == 0 {
					dir = model.DirectionDown
				}
				st := time.Now()
				_, err := voteSvc.CastVote(ctx, post, voter, dir)
				if errors.Is(err, service.ErrDuplicateVote) {
					dups++
				} else if err != nil {
					panic(err)
				}
				local = append(local, time.Since(st))
			}
			mu.Lock()
			latencies = append(latencies, local...)
			duplicates += dups
			mu.Unlock()
		}(int64(w) + 1)
	}
	wg.Wait()
	voteWall := time.Since(start)

	// read phase: first page of the ranked view
	reads := make([]time.Duration, 0, 200)
	for i := 0; i < 200; i++ {
		st := time.Now()
		if _, err := postSvc.Top(ctx, 1, 30); err != nil {
			panic(err)
		}
		reads = append(reads, time.Since(st))
	}

	var voteSum time.Duration
	for _, d := range latencies {
		voteSum += d
	}
	var readSum time.Duration
	for _, d := range reads {
		readSum += d
	}
	fmt.Printf("USERS=%d POSTS=%d VOTES=%d WORKERS=%d\n", USERS, POSTS, VOTES, WORKERS)
	fmt.Printf("CastVote: total=%v rate=%.0f/s dup=%d avg=%v p95=%v p99=%v\n",
		voteWall, float64(len(latencies))/voteWall.Seconds(), duplicates,
		voteSum/time.Duration(len(latencies)), pct(latencies, 0.95), pct(latencies, 0.99))
	fmt.Printf("Top page read (limit=30): avg=%v p95=%v p99=%v\n",
		readSum/time.Duration(len(reads)), pct(reads, 0.95), pct(reads, 0.99))
}
