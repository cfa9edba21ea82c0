// Package recommend ranks workers and jobs for a viewer with a tiered
// fallback search: primary industry/skill match first, same-region candidates
// next, and a shuffled slice of the general pool to fill whatever is left.
// The accumulated set is scored and stable-sorted before truncation.
package recommend

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"talenthub/internal/domain/job"
	"talenthub/internal/domain/skill"
	"talenthub/internal/domain/worker"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)

const poolFactor = 2

type RankedWorker struct {
	Worker worker.Worker `json:"worker"`
	Score  float64       `json:"score"`
}

type RankedJob struct {
	Job   job.Job `json:"job"`
	Score float64 `json:"score"`
}

type Engine struct {
	workers repository.WorkerQueryRepository
	jobs    repository.JobQueryRepository
	posts   repository.PostRepository
	skills  repository.SkillRepository

	cache    Cache
	cacheTTL time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand

	logger *log.Logger
}

// NewEngine wires the engine. rng seeds the tier-3 shuffle; pass a fixed-seed
// source in tests for deterministic fills, or nil for a time-seeded one.
func NewEngine(
	workers repository.WorkerQueryRepository,
	jobs repository.JobQueryRepository,
	posts repository.PostRepository,
	skills repository.SkillRepository,
	cache Cache,
	cacheTTL time.Duration,
	rng *rand.Rand,
	logger *log.Logger,
) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		workers:  workers,
		jobs:     jobs,
		posts:    posts,
		skills:   skills,
		cache:    cache,
		cacheTTL: cacheTTL,
		rng:      rng,
		logger:   logger,
	}
}

// RankWorkers returns up to limit workers for a recruiter viewer, scored and
// ordered. Equal scores keep their tier-arrival order.
func (e *Engine) RankWorkers(ctx context.Context, v Viewer, limit int) ([]RankedWorker, error) {
	if limit <= 0 {
		return nil, ErrInvalidInput
	}

	key := workersCacheKey(v, limit)
	var cached []RankedWorker
	if hit, err := e.cacheGet(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	stages := []stage[worker.Worker]{
		func(ctx context.Context, need int) ([]worker.Worker, error) {
			return e.workers.FindByIndustry(ctx, v.Industry, need)
		},
		func(ctx context.Context, need int) ([]worker.Worker, error) {
			return e.workers.FindByRegion(ctx, v.Region, need)
		},
		func(ctx context.Context, need int) ([]worker.Worker, error) {
			pool, err := e.workers.FindAnyPool(ctx, limit*poolFactor)
			if err != nil {
				return nil, err
			}
			e.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
			return pool, nil
		},
	}

	acc, err := runPipeline(ctx, stages, func(w worker.Worker) uuid.UUID { return w.ID }, limit)
	if err != nil {
		return nil, ErrStoreUnavailable
	}

	ranked := make([]RankedWorker, 0, len(acc))
	for _, w := range acc {
		ranked = append(ranked, RankedWorker{
			Worker: w,
			Score: Score(Candidate{
				ID:       w.ID,
				SkillID:  w.SkillID,
				Region:   w.Region,
				Pro:      w.IsPro,
				Verified: w.IsVerified,
				Rating:   w.Rating,
			}, v),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	e.cacheSet(ctx, key, ranked)
	return ranked, nil
}

// RankJobs returns up to limit open jobs for a worker viewer. Jobs carry no
// subscription or rating signal, so only the skill and region weights apply.
func (e *Engine) RankJobs(ctx context.Context, v Viewer, limit int) ([]RankedJob, error) {
	if limit <= 0 {
		return nil, ErrInvalidInput
	}

	key := jobsCacheKey(v, limit)
	var cached []RankedJob
	if hit, err := e.cacheGet(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	stages := []stage[job.Job]{
		func(ctx context.Context, need int) ([]job.Job, error) {
			return e.jobs.FindOpenBySkillIndustry(ctx, v.SkillID, v.Industry, need)
		},
		func(ctx context.Context, need int) ([]job.Job, error) {
			return e.jobs.FindOpenByRegion(ctx, v.Region, need)
		},
		func(ctx context.Context, need int) ([]job.Job, error) {
			pool, err := e.jobs.FindOpenPool(ctx, limit*poolFactor)
			if err != nil {
				return nil, err
			}
			e.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
			return pool, nil
		},
	}

	acc, err := runPipeline(ctx, stages, func(j job.Job) uuid.UUID { return j.ID }, limit)
	if err != nil {
		return nil, ErrStoreUnavailable
	}

	ranked := make([]RankedJob, 0, len(acc))
	for _, j := range acc {
		ranked = append(ranked, RankedJob{
			Job: j,
			Score: Score(Candidate{
				ID:      j.ID,
				SkillID: j.SkillID,
				Region:  j.Region,
			}, v),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	e.cacheSet(ctx, key, ranked)
	return ranked, nil
}

// TopSkills returns skills by popularity counter, most popular first. No
// fallback tiers apply.
func (e *Engine) TopSkills(ctx context.Context, limit int) ([]skill.Skill, error) {
	if limit <= 0 {
		return nil, ErrInvalidInput
	}
	out, err := e.skills.TopSkills(ctx, limit)
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	return out, nil
}

// RecommendedPosts ranks workers for the viewer, then returns their posts in
// author-rank order rather than recency. Posts by unranked authors are
// excluded even when newer.
func (e *Engine) RecommendedPosts(ctx context.Context, v Viewer, limit int) ([]worker.Post, error) {
	if limit <= 0 {
		return nil, ErrInvalidInput
	}

	ranked, err := e.RankWorkers(ctx, v, limit)
	if err != nil {
		return nil, err
	}

	rank := make(map[uuid.UUID]int, len(ranked))
	ids := make([]uuid.UUID, 0, len(ranked))
	for i, rw := range ranked {
		rank[rw.Worker.ID] = i
		ids = append(ids, rw.Worker.ID)
	}

	posts, err := e.posts.FindByWorkerIDs(ctx, ids)
	if err != nil {
		return nil, ErrStoreUnavailable
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return rank[posts[i].WorkerID] < rank[posts[j].WorkerID]
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (e *Engine) shuffle(n int, swap func(i, j int)) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(n, swap)
}

func (e *Engine) cacheGet(ctx context.Context, key string, out any) (bool, error) {
	if e.cache == nil {
		return false, nil
	}
	return e.cache.GetJSON(ctx, key, out)
}

func (e *Engine) cacheSet(ctx context.Context, key string, value any) {
	if e.cache == nil {
		return
	}
	if err := e.cache.SetJSON(ctx, key, value, e.cacheTTL); err != nil {
		e.logger.Printf("recommend | cache set failed | key=%s err=%v", key, err)
	}
}
