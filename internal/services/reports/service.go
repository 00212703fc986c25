package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/askbox/backend/internal/domain/enums"
	pgrepo "github.com/ivankudzin/askbox/backend/internal/repo/postgres"
)

var (
	ErrTargetRequired  = errors.New("user or post id is required")
	ErrMultipleTargets = errors.New("only one of user, question or reply can be reported")
	ErrTargetNotFound  = errors.New("user or post or reply not found")
	ErrSelfReport      = errors.New("you cannot report yourself")
)

type UserStore interface {
	GetByID(ctx context.Context, tx pgx.Tx, userID int64) (pgrepo.UserRecord, error)
}

type QuestionStore interface {
	GetOwnerID(ctx context.Context, questionID int64) (int64, error)
}

type ReplyStore interface {
	GetOwnerID(ctx context.Context, replyID int64) (int64, error)
}

type ReportStore interface {
	Create(
		ctx context.Context,
		tx pgx.Tx,
		reporterUserID, reportedUserID int64,
		reportType string,
		reportedPostID *int64,
		reportedPostType *string,
	) (int64, error)
}

type Service struct {
	users     UserStore
	questions QuestionStore
	replies   ReplyStore
	reports   ReportStore
	runTx     func(context.Context, func(context.Context, pgx.Tx) error) error
}

type Dependencies struct {
	Pool          *pgxpool.Pool
	UserStore     UserStore
	QuestionStore QuestionStore
	ReplyStore    ReplyStore
	ReportStore   ReportStore
}

// CreateInput names exactly one target; zero means "not given".
type CreateInput struct {
	UserID     int64
	QuestionID int64
	ReplyID    int64
}

func NewService(deps Dependencies) *Service {
	pool := deps.Pool
	return &Service{
		users:     deps.UserStore,
		questions: deps.QuestionStore,
		replies:   deps.ReplyStore,
		reports:   deps.ReportStore,
		runTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		},
	}
}

// Create files a complaint by reporterID against exactly one of a user, a
// question or a reply. The reported user is resolved here, at creation
// time: a content report lands on the content's owner.
func (s *Service) Create(ctx context.Context, reporterID int64, input CreateInput) (int64, string, error) {
	if reporterID <= 0 {
		return 0, "", fmt.Errorf("invalid reporter id")
	}
	if s.users == nil || s.reports == nil || s.questions == nil || s.replies == nil {
		return 0, "", fmt.Errorf("report service dependencies are not configured")
	}

	targets := 0
	for _, id := range []int64{input.UserID, input.QuestionID, input.ReplyID} {
		if id > 0 {
			targets++
		}
	}
	if targets == 0 {
		return 0, "", ErrTargetRequired
	}
	if targets > 1 {
		return 0, "", ErrMultipleTargets
	}

	reportedUserID, reportType, postID, postType, err := s.resolveTarget(ctx, input)
	if err != nil {
		return 0, "", err
	}
	if reportedUserID == reporterID {
		return 0, "", ErrSelfReport
	}

	var reportID int64
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if _, err := s.users.GetByID(txCtx, tx, reportedUserID); err != nil {
			if errors.Is(err, pgrepo.ErrUserNotFound) {
				return ErrTargetNotFound
			}
			return err
		}

		id, err := s.reports.Create(txCtx, tx, reporterID, reportedUserID, reportType, postID, postType)
		if err != nil {
			return err
		}
		reportID = id
		return nil
	}); err != nil {
		return 0, "", err
	}

	return reportID, fmt.Sprintf("Report created successfully with report id %d", reportID), nil
}

func (s *Service) resolveTarget(ctx context.Context, input CreateInput) (int64, string, *int64, *string, error) {
	switch {
	case input.UserID > 0:
		return input.UserID, string(enums.ReportTypeUser), nil, nil, nil
	case input.QuestionID > 0:
		ownerID, err := s.questions.GetOwnerID(ctx, input.QuestionID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrQuestionNotFound) {
				return 0, "", nil, nil, ErrTargetNotFound
			}
			return 0, "", nil, nil, err
		}
		postID := input.QuestionID
		postType := string(enums.ReportedPostTypeQuestion)
		return ownerID, string(enums.ReportTypeContent), &postID, &postType, nil
	default:
		ownerID, err := s.replies.GetOwnerID(ctx, input.ReplyID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrReplyNotFound) {
				return 0, "", nil, nil, ErrTargetNotFound
			}
			return 0, "", nil, nil, err
		}
		postID := input.ReplyID
		postType := string(enums.ReportedPostTypeReply)
		return ownerID, string(enums.ReportTypeContent), &postID, &postType, nil
	}
}
