package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	pgrepo "github.com/ivankudzin/askbox/backend/internal/repo/postgres"
)

func TestCreateUserReport(t *testing.T) {
	f := newReportFixture(t)
	f.users.records[10] = pgrepo.UserRecord{ID: 10}

	id, message, err := f.svc.Create(context.Background(), 20, CreateInput{UserID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Fatalf("unexpected report id: %d", id)
	}
	if message != "Report created successfully with report id 1" {
		t.Fatalf("unexpected message: %q", message)
	}

	created := f.reports.created[0]
	if created.reportedUserID != 10 || created.reporterID != 20 {
		t.Fatalf("unexpected report row: %+v", created)
	}
	if created.reportType != "user" {
		t.Fatalf("unexpected report type: %q", created.reportType)
	}
	if created.postID != nil || created.postType != nil {
		t.Fatalf("user report must not carry a post reference")
	}
}

func TestCreateQuestionReportLandsOnOwner(t *testing.T) {
	f := newReportFixture(t)
	f.users.records[10] = pgrepo.UserRecord{ID: 10}
	f.questions.owners[7] = 10

	_, _, err := f.svc.Create(context.Background(), 20, CreateInput{QuestionID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created := f.reports.created[0]
	if created.reportedUserID != 10 {
		t.Fatalf("expected report against question owner, got user %d", created.reportedUserID)
	}
	if created.reportType != "content" {
		t.Fatalf("unexpected report type: %q", created.reportType)
	}
	if created.postID == nil || *created.postID != 7 {
		t.Fatalf("unexpected post id: %v", created.postID)
	}
	if created.postType == nil || *created.postType != "question" {
		t.Fatalf("unexpected post type: %v", created.postType)
	}
}

func TestCreateReplyReportLandsOnOwner(t *testing.T) {
	f := newReportFixture(t)
	f.users.records[11] = pgrepo.UserRecord{ID: 11}
	f.replies.owners[9] = 11

	_, _, err := f.svc.Create(context.Background(), 20, CreateInput{ReplyID: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created := f.reports.created[0]
	if created.reportedUserID != 11 {
		t.Fatalf("expected report against reply owner, got user %d", created.reportedUserID)
	}
	if created.postType == nil || *created.postType != "reply" {
		t.Fatalf("unexpected post type: %v", created.postType)
	}
}

func TestCreateRequiresExactlyOneTarget(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{name: "no target", input: CreateInput{}, want: ErrTargetRequired},
		{name: "user and question", input: CreateInput{UserID: 10, QuestionID: 7}, want: ErrMultipleTargets},
		{name: "question and reply", input: CreateInput{QuestionID: 7, ReplyID: 9}, want: ErrMultipleTargets},
		{name: "all three", input: CreateInput{UserID: 10, QuestionID: 7, ReplyID: 9}, want: ErrMultipleTargets},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newReportFixture(t)

			_, _, err := f.svc.Create(context.Background(), 20, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got %v want %v", err, tc.want)
			}
			if len(f.reports.created) != 0 {
				t.Fatalf("no report row must be created")
			}
		})
	}
}

func TestCreateRejectsSelfReport(t *testing.T) {
	f := newReportFixture(t)
	f.users.records[20] = pgrepo.UserRecord{ID: 20}
	f.questions.owners[7] = 20

	for _, input := range []CreateInput{{UserID: 20}, {QuestionID: 7}} {
		_, _, err := f.svc.Create(context.Background(), 20, input)
		if !errors.Is(err, ErrSelfReport) {
			t.Fatalf("expected ErrSelfReport for %+v, got %v", input, err)
		}
	}
}

func TestCreateMissingTargets(t *testing.T) {
	f := newReportFixture(t)

	tests := []struct {
		name  string
		input CreateInput
	}{
		{name: "unknown user", input: CreateInput{UserID: 404}},
		{name: "unknown question", input: CreateInput{QuestionID: 404}},
		{name: "unknown reply", input: CreateInput{ReplyID: 404}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.svc.Create(context.Background(), 20, tc.input)
			if !errors.Is(err, ErrTargetNotFound) {
				t.Fatalf("expected ErrTargetNotFound, got %v", err)
			}
		})
	}
}

type reportFixture struct {
	svc       *Service
	users     *stubUserStore
	questions *stubOwnerStore
	replies   *stubOwnerStore
	reports   *stubReportStore
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	f := &reportFixture{
		users:     &stubUserStore{records: map[int64]pgrepo.UserRecord{}},
		questions: &stubOwnerStore{owners: map[int64]int64{}, missing: pgrepo.ErrQuestionNotFound},
		replies:   &stubOwnerStore{owners: map[int64]int64{}, missing: pgrepo.ErrReplyNotFound},
		reports:   &stubReportStore{},
	}

	f.svc = NewService(Dependencies{
		UserStore:     f.users,
		QuestionStore: f.questions,
		ReplyStore:    f.replies,
		ReportStore:   f.reports,
	})
	f.svc.runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
		return fn(ctx, nil)
	}

	return f
}

type stubUserStore struct {
	records map[int64]pgrepo.UserRecord
}

func (s *stubUserStore) GetByID(_ context.Context, _ pgx.Tx, userID int64) (pgrepo.UserRecord, error) {
	rec, ok := s.records[userID]
	if !ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
	}
	return rec, nil
}

type stubOwnerStore struct {
	owners  map[int64]int64
	missing error
}

func (s *stubOwnerStore) GetOwnerID(_ context.Context, id int64) (int64, error) {
	ownerID, ok := s.owners[id]
	if !ok {
		return 0, s.missing
	}
	return ownerID, nil
}

type createdReport struct {
	reporterID     int64
	reportedUserID int64
	reportType     string
	postID         *int64
	postType       *string
}

type stubReportStore struct {
	created []createdReport
}

func (s *stubReportStore) Create(
	_ context.Context,
	_ pgx.Tx,
	reporterUserID, reportedUserID int64,
	reportType string,
	reportedPostID *int64,
	reportedPostType *string,
) (int64, error) {
	s.created = append(s.created, createdReport{
		reporterID:     reporterUserID,
		reportedUserID: reportedUserID,
		reportType:     reportType,
		postID:         reportedPostID,
		postType:       reportedPostType,
	})
	return int64(len(s.created)), nil
}
