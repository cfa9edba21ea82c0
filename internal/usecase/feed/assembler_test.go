package feed

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"testing"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/worker"
	"talenthub/internal/repository"
	"talenthub/internal/usecase/recommend"

	"github.com/google/uuid"
)

type nopDB struct{}

func (nopDB) Ping(context.Context) error { return nil }
func (nopDB) Close() error { return nil }
func (nopDB) SQLDB() *sql.DB { return nil }
func (nopDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (nopDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (nopDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (nopDB) Begin(context.Context) (database.Tx, error) { return nil, nil }

type mockOfferSource struct {
	offered []repository.OfferedJob
	err     error
}

func (m *mockOfferSource) Get(context.Context, database.Querier, uuid.UUID) (job.Offer, error) {
	return job.Offer{}, nil
}

func (m *mockOfferSource) Resolve(context.Context, database.Querier, uuid.UUID, job.OfferStatus, *string) (bool, error) {
	return false, nil
}

func (m *mockOfferSource) ListPendingWithJobs(context.Context, database.Querier, uuid.UUID) ([]repository.OfferedJob, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.offered, nil
}

type mockPlanSource struct {
	jobs []job.Job
	err  error

	newestFirst []bool
}

func (m *mockPlanSource) FindOpenBySkillIndustry(context.Context, uuid.UUID, string, int) ([]job.Job, error) {
	return nil, nil
}

func (m *mockPlanSource) FindOpenByRegion(context.Context, string, int) ([]job.Job, error) {
	return nil, nil
}

func (m *mockPlanSource) FindOpenPool(context.Context, int) ([]job.Job, error) { return nil, nil }

func (m *mockPlanSource) ListPlanTier(_ context.Context, limit int, newestFirst bool) ([]job.Job, error) {
	m.newestFirst = append(m.newestFirst, newestFirst)
	if m.err != nil {
		return nil, m.err
	}
	out := m.jobs
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockRanker struct {
	ranked []recommend.RankedJob
	err    error
}

func (m *mockRanker) RankJobs(context.Context, recommend.Viewer, int) ([]recommend.RankedJob, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ranked, nil
}

func newTestAssembler(offers *mockOfferSource, plan *mockPlanSource, ranker *mockRanker) *Assembler {
	if offers == nil {
		offers = &mockOfferSource{}
	}
	if plan == nil {
		plan = &mockPlanSource{}
	}
	if ranker == nil {
		ranker = &mockRanker{}
	}
	return NewAssembler(nopDB{}, offers, plan, ranker, log.New(io.Discard, "", 0))
}

func openJob(title string) job.Job {
	return job.Job{ID: uuid.New(), Title: title, Status: job.StatusActive}
}

func freeWorker() worker.Worker {
	return worker.Worker{ID: uuid.New(), Region: "jakarta", Industry: "construction"}
}

func TestBuildWorkerFeed_PrecedenceOrder(t *testing.T) {
	offerJob := openJob("offered")
	recJob := openJob("recommended")
	planJob := openJob("plan")

	offers := &mockOfferSource{offered: []repository.OfferedJob{
		{Offer: job.Offer{ID: uuid.New(), JobID: offerJob.ID, Status: job.OfferPending}, Job: offerJob},
	}}
	ranker := &mockRanker{ranked: []recommend.RankedJob{{Job: recJob, Score: 2}}}
	plan := &mockPlanSource{jobs: []job.Job{planJob}}

	a := newTestAssembler(offers, plan, ranker)
	items, err := a.BuildWorkerFeed(context.Background(), freeWorker(), 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	wantSources := []Source{SourceOffer, SourceRecommended, SourcePlan}
	for i, s := range wantSources {
		if items[i].Source != s {
			t.Fatalf("position %d: expected source %s, got %s", i, s, items[i].Source)
		}
	}
	if items[0].Offer == nil || items[0].Offer.JobID != offerJob.ID {
		t.Fatalf("offer item must carry its offer context")
	}
	if items[1].Score != 2 {
		t.Fatalf("recommended item must carry its score")
	}
}

func TestBuildWorkerFeed_DedupKeepsHighestPrecedenceContext(t *testing.T) {
	shared := openJob("shared")

	offers := &mockOfferSource{offered: []repository.OfferedJob{
		{Offer: job.Offer{ID: uuid.New(), JobID: shared.ID, Status: job.OfferPending}, Job: shared},
	}}
	// The same job also ranks and sits in the plan tier; only the offer row
	// may survive.
	ranker := &mockRanker{ranked: []recommend.RankedJob{{Job: shared, Score: 5}}}
	plan := &mockPlanSource{jobs: []job.Job{shared}}

	a := newTestAssembler(offers, plan, ranker)
	items, err := a.BuildWorkerFeed(context.Background(), freeWorker(), 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 deduplicated item, got %d", len(items))
	}
	if items[0].Source != SourceOffer || items[0].Offer == nil {
		t.Fatalf("duplicate must keep the offer context, got source %s", items[0].Source)
	}
}

func TestBuildWorkerFeed_PlanTierDirectionFollowsSubscription(t *testing.T) {
	plan := &mockPlanSource{}
	a := newTestAssembler(nil, plan, nil)

	w := freeWorker()
	if _, err := a.BuildWorkerFeed(context.Background(), w, 5); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	w.IsPro = true
	if _, err := a.BuildWorkerFeed(context.Background(), w, 5); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(plan.newestFirst) != 2 || plan.newestFirst[0] != false || plan.newestFirst[1] != true {
		t.Fatalf("expected oldest-first for free then newest-first for pro, got %v", plan.newestFirst)
	}
}

func TestBuildWorkerFeed_SourceFailureFailsFeed(t *testing.T) {
	offers := &mockOfferSource{err: errors.New("connection reset")}
	a := newTestAssembler(offers, nil, nil)

	_, err := a.BuildWorkerFeed(context.Background(), freeWorker(), 5)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestBuildWorkerFeed_RankerErrorPropagates(t *testing.T) {
	ranker := &mockRanker{err: recommend.ErrStoreUnavailable}
	a := newTestAssembler(nil, nil, ranker)

	_, err := a.BuildWorkerFeed(context.Background(), freeWorker(), 5)
	if !errors.Is(err, recommend.ErrStoreUnavailable) {
		t.Fatalf("expected ranker error to propagate, got %v", err)
	}
}

func TestBuildWorkerFeed_InvalidInput(t *testing.T) {
	a := newTestAssembler(nil, nil, nil)

	if _, err := a.BuildWorkerFeed(context.Background(), worker.Worker{}, 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero worker, got %v", err)
	}
	if _, err := a.BuildWorkerFeed(context.Background(), freeWorker(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero limit, got %v", err)
	}
}
