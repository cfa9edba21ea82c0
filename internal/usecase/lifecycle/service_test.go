package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/skill"
	"talenthub/internal/notify"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error { return nil }
func (d *fakeDB) SQLDB() *sql.DB { return nil }
func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	d.tx = &fakeTx{}
	return d.tx, nil
}

type mockJobRepo struct {
	jobs map[uuid.UUID]job.Job

	getErr error
	setErr error

	setCalls int
}

func (m *mockJobRepo) Get(_ context.Context, _ database.Querier, id uuid.UUID) (job.Job, error) {
	return m.lookup(id)
}

func (m *mockJobRepo) GetForUpdate(_ context.Context, _ database.Querier, id uuid.UUID) (job.Job, error) {
	return m.lookup(id)
}

func (m *mockJobRepo) lookup(id uuid.UUID) (job.Job, error) {
	if m.getErr != nil {
		return job.Job{}, m.getErr
	}
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *mockJobRepo) SetCounters(_ context.Context, _ database.Querier, id uuid.UUID, count int, status job.Status) error {
	if m.setErr != nil {
		return m.setErr
	}
	j, ok := m.jobs[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.ApplicantsCount = count
	j.Status = status
	m.jobs[id] = j
	m.setCalls++
	return nil
}

type mockAppRepo struct {
	byID    map[uuid.UUID]job.Application
	byPair  map[string]uuid.UUID
	lastTo  job.ApplicationStatus
	transOK bool

	existsErr error
	createErr error
}

func pairKey(jobID, workerID uuid.UUID) string {
	return jobID.String() + "/" + workerID.String()
}

func newMockAppRepo() *mockAppRepo {
	return &mockAppRepo{
		byID:    map[uuid.UUID]job.Application{},
		byPair:  map[string]uuid.UUID{},
		transOK: true,
	}
}

func (m *mockAppRepo) Get(_ context.Context, _ database.Querier, id uuid.UUID) (job.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return job.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockAppRepo) ExistsByJobAndWorker(_ context.Context, _ database.Querier, jobID, workerID uuid.UUID) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.byPair[pairKey(jobID, workerID)]
	return ok, nil
}

func (m *mockAppRepo) Create(_ context.Context, _ database.Querier, a job.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[a.ID] = a
	m.byPair[pairKey(a.JobID, a.WorkerID)] = a.ID
	return nil
}

func (m *mockAppRepo) Delete(_ context.Context, _ database.Querier, id uuid.UUID) (bool, error) {
	a, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	delete(m.byID, id)
	delete(m.byPair, pairKey(a.JobID, a.WorkerID))
	return true, nil
}

func (m *mockAppRepo) Transition(_ context.Context, _ database.Querier, id uuid.UUID, to job.ApplicationStatus, reason *string, from ...job.ApplicationStatus) (bool, error) {
	a, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	allowed := false
	for _, f := range from {
		if a.Status == f {
			allowed = true
			break
		}
	}
	if !allowed || !m.transOK {
		return false, nil
	}
	a.Status = to
	if reason != nil {
		a.DeclineReason = reason
	}
	m.byID[id] = a
	m.lastTo = to
	return true, nil
}

func (m *mockAppRepo) LinkInterview(_ context.Context, _ database.Querier, id, interviewID uuid.UUID, from ...job.ApplicationStatus) (bool, error) {
	ok, err := m.Transition(context.Background(), nil, id, job.ApplicationInterview, nil, from...)
	if !ok || err != nil {
		return ok, err
	}
	a := m.byID[id]
	a.InterviewID = &interviewID
	m.byID[id] = a
	return true, nil
}

type mockOfferRepo struct {
	offers map[uuid.UUID]job.Offer
}

func (m *mockOfferRepo) Get(_ context.Context, _ database.Querier, id uuid.UUID) (job.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return job.Offer{}, repository.ErrOfferNotFound
	}
	return o, nil
}

func (m *mockOfferRepo) Resolve(_ context.Context, _ database.Querier, id uuid.UUID, status job.OfferStatus, declineReason *string) (bool, error) {
	o, ok := m.offers[id]
	if !ok || o.Status != job.OfferPending {
		return false, nil
	}
	o.Status = status
	o.DeclineReason = declineReason
	m.offers[id] = o
	return true, nil
}

func (m *mockOfferRepo) ListPendingWithJobs(context.Context, database.Querier, uuid.UUID) ([]repository.OfferedJob, error) {
	return nil, nil
}

type mockInterviewRepo struct {
	created []job.Interview
}

func (m *mockInterviewRepo) Create(_ context.Context, _ database.Querier, iv job.Interview) error {
	m.created = append(m.created, iv)
	return nil
}

type mockSkillCounter struct {
	bumps []uuid.UUID
	err   error
}

func (m *mockSkillCounter) TopSkills(context.Context, int) ([]skill.Skill, error) {
	return nil, nil
}

func (m *mockSkillCounter) DisplayName(context.Context, uuid.UUID, string) (string, error) {
	return "", nil
}

func (m *mockSkillCounter) IncrementPopularity(_ context.Context, skillID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.bumps = append(m.bumps, skillID)
	return nil
}

type mockNotifier struct {
	events []notify.Event
	err    error
}

func (m *mockNotifier) Notify(_ context.Context, evt notify.Event) error {
	m.events = append(m.events, evt)
	return m.err
}

func (m *mockNotifier) has(t notify.EventType) bool {
	for _, e := range m.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

func newTestService(jobs *mockJobRepo, apps *mockAppRepo, offers *mockOfferRepo, n *mockNotifier) (*Service, *fakeDB) {
	db := &fakeDB{}
	if offers == nil {
		offers = &mockOfferRepo{offers: map[uuid.UUID]job.Offer{}}
	}
	svc := NewService(db, jobs, apps, offers, &mockInterviewRepo{}, &mockSkillCounter{}, n, log.New(io.Discard, "", 0))
	return svc, db
}

func activeJob(maxApplicants, count int) job.Job {
	return job.Job{
		ID:              uuid.New(),
		RecruiterID:     uuid.New(),
		Title:           "Welder",
		MaxApplicants:   maxApplicants,
		ApplicantsCount: count,
		Status:          job.StatusActive,
	}
}

func TestApply_Success(t *testing.T) {
	j := activeJob(5, 0)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	apps := newMockAppRepo()
	n := &mockNotifier{}
	svc, db := newTestService(jobs, apps, nil, n)

	workerID := uuid.New()
	a, err := svc.Apply(context.Background(), j.ID, workerID, "I can start Monday")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != job.ApplicationApplied {
		t.Fatalf("expected status applied, got %s", a.Status)
	}
	got := jobs.jobs[j.ID]
	if got.ApplicantsCount != 1 {
		t.Fatalf("expected count 1, got %d", got.ApplicantsCount)
	}
	if got.Status != job.StatusActive {
		t.Fatalf("expected job still active, got %s", got.Status)
	}
	if !db.tx.committed {
		t.Fatalf("expected tx committed")
	}
	if !n.has(notify.EventNewApplicant) {
		t.Fatalf("expected new-applicant notification")
	}
	if n.has(notify.EventJobAutoClosed) {
		t.Fatalf("did not expect auto-close notification")
	}
}

func TestApply_ClosesAtCapacity(t *testing.T) {
	j := activeJob(2, 1)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	apps := newMockAppRepo()
	n := &mockNotifier{}
	svc, _ := newTestService(jobs, apps, nil, n)

	if _, err := svc.Apply(context.Background(), j.ID, uuid.New(), ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got := jobs.jobs[j.ID]
	if got.ApplicantsCount != 2 {
		t.Fatalf("expected count 2, got %d", got.ApplicantsCount)
	}
	if got.Status != job.StatusClosed {
		t.Fatalf("expected job closed at capacity, got %s", got.Status)
	}
	if !n.has(notify.EventNewApplicant) || !n.has(notify.EventJobAutoClosed) {
		t.Fatalf("expected both applicant and auto-close notifications, got %+v", n.events)
	}
}

func TestApply_AlreadyApplied(t *testing.T) {
	j := activeJob(5, 1)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	apps := newMockAppRepo()
	svc, _ := newTestService(jobs, apps, nil, &mockNotifier{})

	workerID := uuid.New()
	if _, err := svc.Apply(context.Background(), j.ID, workerID, ""); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	_, err := svc.Apply(context.Background(), j.ID, workerID, "")
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if jobs.jobs[j.ID].ApplicantsCount != 2 {
		t.Fatalf("expected count unchanged at 2, got %d", jobs.jobs[j.ID].ApplicantsCount)
	}
}

func TestApply_JobNotFound(t *testing.T) {
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{}}
	svc, _ := newTestService(jobs, newMockAppRepo(), nil, &mockNotifier{})

	_, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), "")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApply_JobClosed(t *testing.T) {
	j := activeJob(5, 1)
	j.Status = job.StatusClosed
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	n := &mockNotifier{}
	svc, _ := newTestService(jobs, newMockAppRepo(), nil, n)

	_, err := svc.Apply(context.Background(), j.ID, uuid.New(), "")
	if !errors.Is(err, ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
	if !n.has(notify.EventJobClosed) {
		t.Fatalf("expected closed-job notification to recruiter")
	}
	if jobs.jobs[j.ID].ApplicantsCount != 1 {
		t.Fatalf("count must not change on rejection")
	}
}

func TestApply_OfferOnlyJobRejectsImmediately(t *testing.T) {
	// MaxApplicants 0 is always at capacity, whatever the current count.
	j := activeJob(0, 0)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	n := &mockNotifier{}
	svc, _ := newTestService(jobs, newMockAppRepo(), nil, n)

	_, err := svc.Apply(context.Background(), j.ID, uuid.New(), "")
	if !errors.Is(err, ErrCapacityReached) {
		t.Fatalf("expected ErrCapacityReached, got %v", err)
	}
	if jobs.jobs[j.ID].Status != job.StatusClosed {
		t.Fatalf("expected job closed as side effect")
	}
	if !n.has(notify.EventJobAutoClosed) {
		t.Fatalf("expected auto-close notification")
	}
}

func TestApply_DuplicateInsertRaceIsAlreadyApplied(t *testing.T) {
	// A concurrent apply can slip past the existence check before the job
	// row lock; the unique constraint fires on insert instead.
	j := activeJob(5, 1)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	apps := newMockAppRepo()
	apps.createErr = repository.ErrDuplicateApplication
	svc, _ := newTestService(jobs, apps, nil, &mockNotifier{})

	_, err := svc.Apply(context.Background(), j.ID, uuid.New(), "")
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if jobs.jobs[j.ID].ApplicantsCount != 1 {
		t.Fatalf("count must not change on a duplicate insert")
	}
}

func TestApply_BumpsSkillPopularity(t *testing.T) {
	j := activeJob(5, 0)
	j.SkillID = uuid.New()
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	counter := &mockSkillCounter{}
	db := &fakeDB{}
	svc := NewService(db, jobs, newMockAppRepo(), &mockOfferRepo{offers: map[uuid.UUID]job.Offer{}}, &mockInterviewRepo{}, counter, &mockNotifier{}, log.New(io.Discard, "", 0))

	if _, err := svc.Apply(context.Background(), j.ID, uuid.New(), ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(counter.bumps) != 1 || counter.bumps[0] != j.SkillID {
		t.Fatalf("expected one popularity bump for %s, got %v", j.SkillID, counter.bumps)
	}
}

func TestApply_RejectedApplyDoesNotBumpPopularity(t *testing.T) {
	j := activeJob(5, 0)
	j.SkillID = uuid.New()
	j.Status = job.StatusClosed
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	counter := &mockSkillCounter{}
	db := &fakeDB{}
	svc := NewService(db, jobs, newMockAppRepo(), &mockOfferRepo{offers: map[uuid.UUID]job.Offer{}}, &mockInterviewRepo{}, counter, &mockNotifier{}, log.New(io.Discard, "", 0))

	if _, err := svc.Apply(context.Background(), j.ID, uuid.New(), ""); !errors.Is(err, ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
	if len(counter.bumps) != 0 {
		t.Fatalf("rejected apply must not bump popularity, got %v", counter.bumps)
	}
}

func TestApply_PopularityBumpFailureDoesNotFailOperation(t *testing.T) {
	j := activeJob(5, 0)
	j.SkillID = uuid.New()
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	counter := &mockSkillCounter{err: errors.New("skill row gone")}
	db := &fakeDB{}
	svc := NewService(db, jobs, newMockAppRepo(), &mockOfferRepo{offers: map[uuid.UUID]job.Offer{}}, &mockInterviewRepo{}, counter, &mockNotifier{}, log.New(io.Discard, "", 0))

	if _, err := svc.Apply(context.Background(), j.ID, uuid.New(), ""); err != nil {
		t.Fatalf("popularity bump failure must not fail Apply: %v", err)
	}
}

func TestApply_NotifierFailureDoesNotFailOperation(t *testing.T) {
	j := activeJob(5, 0)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	n := &mockNotifier{err: errors.New("push gateway down")}
	svc, _ := newTestService(jobs, newMockAppRepo(), nil, n)

	if _, err := svc.Apply(context.Background(), j.ID, uuid.New(), ""); err != nil {
		t.Fatalf("notifier failure must not fail Apply: %v", err)
	}
}

func TestWithdraw_ReopensWhenBackUnderCapacity(t *testing.T) {
	j := activeJob(2, 2)
	j.Status = job.StatusClosed
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	apps := newMockAppRepo()
	a := job.Application{ID: uuid.New(), JobID: j.ID, WorkerID: uuid.New(), Status: job.ApplicationApplied}
	_ = apps.Create(context.Background(), nil, a)
	svc, _ := newTestService(jobs, apps, nil, &mockNotifier{})

	if err := svc.Withdraw(context.Background(), a.ID, j.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := jobs.jobs[j.ID]
	if got.ApplicantsCount != 1 {
		t.Fatalf("expected count 1, got %d", got.ApplicantsCount)
	}
	if got.Status != job.StatusActive {
		t.Fatalf("expected job reopened, got %s", got.Status)
	}
}

func TestWithdraw_FloorsCountAtZero(t *testing.T) {
	j := activeJob(5, 0)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	svc, _ := newTestService(jobs, newMockAppRepo(), nil, &mockNotifier{})

	if err := svc.Withdraw(context.Background(), uuid.New(), j.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if jobs.jobs[j.ID].ApplicantsCount != 0 {
		t.Fatalf("count must not go below zero, got %d", jobs.jobs[j.ID].ApplicantsCount)
	}
}

func TestWithdraw_OfferOnlyClosedJobStaysClosed(t *testing.T) {
	j := activeJob(0, 0)
	j.Status = job.StatusClosed
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	svc, _ := newTestService(jobs, newMockAppRepo(), nil, &mockNotifier{})

	if err := svc.Withdraw(context.Background(), uuid.New(), j.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if jobs.jobs[j.ID].Status != job.StatusClosed {
		t.Fatalf("zero-cap job must stay closed")
	}
}

// Drives a full apply/withdraw sequence and checks the capacity invariant
// after every step.
func TestApplyWithdraw_CapacityInvariantHolds(t *testing.T) {
	const limit = 3
	j := activeJob(limit, 0)
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{j.ID: j}}
	apps := newMockAppRepo()
	svc, _ := newTestService(jobs, apps, nil, &mockNotifier{})

	check := func(step string) {
		got := jobs.jobs[j.ID]
		if got.ApplicantsCount < 0 || got.ApplicantsCount > limit {
			t.Fatalf("%s: count %d violates invariant", step, got.ApplicantsCount)
		}
		if got.ApplicantsCount == limit && got.Status != job.StatusClosed {
			t.Fatalf("%s: job must be closed at capacity", step)
		}
		if got.ApplicantsCount < limit && got.Status == job.StatusClosed {
			t.Fatalf("%s: job must not stay closed under capacity", step)
		}
	}

	var created []job.Application
	for i := 0; i < limit; i++ {
		a, err := svc.Apply(context.Background(), j.ID, uuid.New(), "")
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
		created = append(created, a)
		check(fmt.Sprintf("apply %d", i))
	}

	if _, err := svc.Apply(context.Background(), j.ID, uuid.New(), ""); !errors.Is(err, ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed once full, got %v", err)
	}

	for i, a := range created {
		if err := svc.Withdraw(context.Background(), a.ID, j.ID); err != nil {
			t.Fatalf("withdraw %d: %v", i, err)
		}
		check(fmt.Sprintf("withdraw %d", i))
	}
}

func TestAcceptOffer_Pending(t *testing.T) {
	o := job.Offer{ID: uuid.New(), JobID: uuid.New(), RecruiterID: uuid.New(), Status: job.OfferPending}
	offers := &mockOfferRepo{offers: map[uuid.UUID]job.Offer{o.ID: o}}
	n := &mockNotifier{}
	svc, _ := newTestService(&mockJobRepo{jobs: map[uuid.UUID]job.Job{}}, newMockAppRepo(), offers, n)

	if err := svc.AcceptOffer(context.Background(), o.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if offers.offers[o.ID].Status != job.OfferAccepted {
		t.Fatalf("expected accepted, got %s", offers.offers[o.ID].Status)
	}
	if !n.has(notify.EventOfferAccepted) {
		t.Fatalf("expected acceptance notification")
	}
}

func TestAcceptOffer_NonPendingIsInvalidState(t *testing.T) {
	o := job.Offer{ID: uuid.New(), Status: job.OfferDeclined}
	offers := &mockOfferRepo{offers: map[uuid.UUID]job.Offer{o.ID: o}}
	svc, _ := newTestService(&mockJobRepo{jobs: map[uuid.UUID]job.Job{}}, newMockAppRepo(), offers, &mockNotifier{})

	if err := svc.AcceptOffer(context.Background(), o.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestAcceptOffer_Missing(t *testing.T) {
	offers := &mockOfferRepo{offers: map[uuid.UUID]job.Offer{}}
	svc, _ := newTestService(&mockJobRepo{jobs: map[uuid.UUID]job.Job{}}, newMockAppRepo(), offers, &mockNotifier{})

	if err := svc.AcceptOffer(context.Background(), uuid.New()); !errors.Is(err, ErrOfferNotFound) {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}
}

func TestDeclineOffer_RecordsReason(t *testing.T) {
	o := job.Offer{ID: uuid.New(), Status: job.OfferPending}
	offers := &mockOfferRepo{offers: map[uuid.UUID]job.Offer{o.ID: o}}
	svc, _ := newTestService(&mockJobRepo{jobs: map[uuid.UUID]job.Job{}}, newMockAppRepo(), offers, &mockNotifier{})

	if err := svc.DeclineOffer(context.Background(), o.ID, "rate too low"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := offers.offers[o.ID]
	if got.Status != job.OfferDeclined {
		t.Fatalf("expected declined, got %s", got.Status)
	}
	if got.DeclineReason == nil || *got.DeclineReason != "rate too low" {
		t.Fatalf("expected decline reason recorded, got %v", got.DeclineReason)
	}
}

func TestMarkSeen_WrongSourceStatus(t *testing.T) {
	apps := newMockAppRepo()
	a := job.Application{ID: uuid.New(), Status: job.ApplicationHired}
	apps.byID[a.ID] = a
	svc, _ := newTestService(&mockJobRepo{jobs: map[uuid.UUID]job.Job{}}, apps, nil, &mockNotifier{})

	if err := svc.MarkSeen(context.Background(), a.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestScheduleInterview_LinksAndTransitions(t *testing.T) {
	apps := newMockAppRepo()
	a := job.Application{ID: uuid.New(), JobID: uuid.New(), WorkerID: uuid.New(), Status: job.ApplicationSeen}
	apps.byID[a.ID] = a
	svc, _ := newTestService(&mockJobRepo{jobs: map[uuid.UUID]job.Job{}}, apps, nil, &mockNotifier{})

	iv, err := svc.ScheduleInterview(context.Background(), a.ID, time.Now().Add(48*time.Hour), "bring your portfolio")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := apps.byID[a.ID]
	if got.Status != job.ApplicationInterview {
		t.Fatalf("expected interview status, got %s", got.Status)
	}
	if got.InterviewID == nil || *got.InterviewID != iv.ID {
		t.Fatalf("expected interview linked")
	}
}

func TestConfirmHire_DeclinePath(t *testing.T) {
	apps := newMockAppRepo()
	a := job.Application{ID: uuid.New(), Status: job.ApplicationHired}
	apps.byID[a.ID] = a
	svc, _ := newTestService(&mockJobRepo{jobs: map[uuid.UUID]job.Job{}}, apps, nil, &mockNotifier{})

	if err := svc.ConfirmHire(context.Background(), a.ID, false, "took another job"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := apps.byID[a.ID]
	if got.Status != job.ApplicationHireDeclined {
		t.Fatalf("expected hire_declined, got %s", got.Status)
	}
	if got.DeclineReason == nil || *got.DeclineReason != "took another job" {
		t.Fatalf("expected reason recorded")
	}
}

func TestApply_BeginFailureIsStoreUnavailable(t *testing.T) {
	jobs := &mockJobRepo{jobs: map[uuid.UUID]job.Job{}}
	db := &fakeDB{beginErr: errors.New("pool exhausted")}
	svc := NewService(db, jobs, newMockAppRepo(), &mockOfferRepo{offers: map[uuid.UUID]job.Offer{}}, &mockInterviewRepo{}, &mockSkillCounter{}, &mockNotifier{}, log.New(io.Discard, "", 0))

	_, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), "")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
