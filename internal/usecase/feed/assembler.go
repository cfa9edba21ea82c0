// Package feed merges a worker's pending direct offers, recommendation-engine
// output, and a plan-tier job list into one deduplicated feed. Precedence is
// fixed: offers, then recommendations, then plan-tier; a job appearing in two
// sources keeps its highest-precedence context.
package feed

import (
	"context"
	"errors"
	"log"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/worker"
	"talenthub/internal/repository"
	"talenthub/internal/usecase/recommend"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type Source string

const (
	SourceOffer       Source = "offer"
	SourceRecommended Source = "recommended"
	SourcePlan        Source = "plan"
)

type Item struct {
	JobID  uuid.UUID  `json:"job_id"`
	Source Source     `json:"source"`
	Job    job.Job    `json:"job"`
	Offer  *job.Offer `json:"offer,omitempty"`
	Score  float64    `json:"score,omitempty"`
}

// Ranker is the slice of the recommendation engine the assembler consumes.
type Ranker interface {
	RankJobs(ctx context.Context, v recommend.Viewer, limit int) ([]recommend.RankedJob, error)
}

type Assembler struct {
	db     database.DB
	offers repository.OfferRepository
	jobs   repository.JobQueryRepository
	ranker Ranker
	logger *log.Logger
}

func NewAssembler(db database.DB, offers repository.OfferRepository, jobs repository.JobQueryRepository, ranker Ranker, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{db: db, offers: offers, jobs: jobs, ranker: ranker, logger: logger}
}

// BuildWorkerFeed fetches the three source lists concurrently, then merges
// them in precedence order. Merge order never depends on fetch completion
// order. Any source failing fails the feed; degrade-to-empty is the caller's
// policy, not the assembler's.
func (a *Assembler) BuildWorkerFeed(ctx context.Context, w worker.Worker, limit int) ([]Item, error) {
	if w.ID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		return nil, ErrInvalidInput
	}

	var (
		offered     []repository.OfferedJob
		recommended []recommend.RankedJob
		planTier    []job.Job
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offered, err = a.offers.ListPendingWithJobs(gctx, a.db, w.ID)
		if err != nil {
			return ErrStoreUnavailable
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recommended, err = a.ranker.RankJobs(gctx, recommend.Viewer{
			Region:   w.Region,
			Industry: w.Industry,
			SkillID:  w.SkillID,
		}, limit)
		return err
	})
	g.Go(func() error {
		var err error
		planTier, err = a.jobs.ListPlanTier(gctx, limit, w.IsPro)
		if err != nil {
			return ErrStoreUnavailable
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(offered)+len(recommended)+len(planTier))
	seen := make(map[uuid.UUID]struct{})

	add := func(it Item) {
		if _, dup := seen[it.JobID]; dup {
			return
		}
		seen[it.JobID] = struct{}{}
		out = append(out, it)
	}

	for _, oj := range offered {
		o := oj.Offer
		add(Item{JobID: oj.Job.ID, Source: SourceOffer, Job: oj.Job, Offer: &o})
	}
	for _, rj := range recommended {
		add(Item{JobID: rj.Job.ID, Source: SourceRecommended, Job: rj.Job, Score: rj.Score})
	}
	for _, j := range planTier {
		add(Item{JobID: j.ID, Source: SourcePlan, Job: j})
	}

	return out, nil
}
