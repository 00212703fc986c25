package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/askbox/backend/internal/domain/enums"
	"github.com/ivankudzin/askbox/backend/internal/domain/model"
	pgrepo "github.com/ivankudzin/askbox/backend/internal/repo/postgres"
)

const signedURLTTL = 5 * time.Minute

const (
	ActionBan     = "ban"
	ActionWarn    = "warn"
	ActionTimeout = "timeout"
	ActionUnban   = "unban"
	ActionReject  = "reject"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidAction  = errors.New("invalid action")
	ErrNotSanctioned  = errors.New("user is not banned")
	ErrReportResolved = errors.New("report already resolved")
	ErrInvalidFilter  = errors.New("invalid filter")
)

type UserStore interface {
	GetByID(ctx context.Context, tx pgx.Tx, userID int64) (pgrepo.UserRecord, error)
}

type PunishmentStore interface {
	GetByUserID(ctx context.Context, tx pgx.Tx, userID int64) (pgrepo.PunishmentRecord, error)
	Upsert(ctx context.Context, tx pgx.Tx, userID int64, status string, expiresAt time.Time) error
	DeleteByUserID(ctx context.Context, tx pgx.Tx, userID int64) error
	GetActiveByUserID(ctx context.Context, userID int64) (pgrepo.PunishmentRecord, error)
}

type ReportStore interface {
	GetByID(ctx context.Context, tx pgx.Tx, reportID int64) (pgrepo.ReportRecord, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, reportID int64, status string) error
	List(ctx context.Context, filter string, offset, limit int) ([]pgrepo.ReportRecord, int, error)
}

type QuestionStore interface {
	GetByID(ctx context.Context, tx pgx.Tx, questionID int64) (pgrepo.QuestionRecord, error)
	ListFiles(ctx context.Context, tx pgx.Tx, questionID int64) ([]pgrepo.QuestionFileRecord, error)
}

type ReplyStore interface {
	GetByID(ctx context.Context, tx pgx.Tx, replyID int64) (pgrepo.ReplyRecord, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int64, message string) error
}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Service struct {
	users       UserStore
	punishments PunishmentStore
	reports     ReportStore
	questions   QuestionStore
	replies     ReplyStore
	notifier    Notifier
	signer      URLSigner
	sanctionTTL time.Duration
	now         func() time.Time
	runTx       func(context.Context, func(context.Context, pgx.Tx) error) error
}

type Dependencies struct {
	Pool            *pgxpool.Pool
	UserStore       UserStore
	PunishmentStore PunishmentStore
	ReportStore     ReportStore
	QuestionStore   QuestionStore
	ReplyStore      ReplyStore
	Notifier        Notifier
	Signer          URLSigner
}

type Config struct {
	SanctionTTL time.Duration
}

// Sanction is the current punishment of one user as seen by the gate.
type Sanction struct {
	Status    enums.PunishmentStatus
	ExpiresAt time.Time
}

// Preview resolves the content a report points at. Exactly one of Question
// and Reply is set for a content report; both stay nil for a user report or
// when the content itself has been deleted.
type Preview struct {
	Question *model.Question
	Reply    *model.Reply
}

type notice struct {
	userID  int64
	message string
}

func NewService(deps Dependencies, cfg Config) *Service {
	ttl := cfg.SanctionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	pool := deps.Pool
	return &Service{
		users:       deps.UserStore,
		punishments: deps.PunishmentStore,
		reports:     deps.ReportStore,
		questions:   deps.QuestionStore,
		replies:     deps.ReplyStore,
		notifier:    deps.Notifier,
		signer:      deps.Signer,
		sanctionTTL: ttl,
		now:         time.Now,
		runTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		},
	}
}

// ApplyUserAction applies one of ban/warn/timeout/unban to a user and
// reports the outcome. Sanctions always expire sanctionTTL after the call,
// so re-applying one resets the window relative to the latest infraction.
func (s *Service) ApplyUserAction(ctx context.Context, userID int64, action string) (string, error) {
	if userID <= 0 {
		return "", ErrUserNotFound
	}
	if s.users == nil || s.punishments == nil {
		return "", fmt.Errorf("moderation service dependencies are not configured")
	}

	var (
		message string
		note    notice
	)
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		m, n, err := s.applyAction(txCtx, tx, userID, action)
		if err != nil {
			return err
		}
		message = m
		note = n
		return nil
	}); err != nil {
		return "", err
	}

	s.emit(ctx, note)
	return message, nil
}

func (s *Service) applyAction(ctx context.Context, tx pgx.Tx, userID int64, action string) (string, notice, error) {
	user, err := s.users.GetByID(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return "", notice{}, ErrUserNotFound
		}
		return "", notice{}, err
	}

	sanctioned := true
	if _, err := s.punishments.GetByUserID(ctx, tx, user.ID); err != nil {
		if !errors.Is(err, pgrepo.ErrPunishmentNotFound) {
			return "", notice{}, err
		}
		sanctioned = false
	}

	if action == ActionUnban {
		if !sanctioned {
			return "", notice{}, ErrNotSanctioned
		}
		if err := s.punishments.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return "", notice{}, err
		}
		return "User unbanned", notice{userID: user.ID, message: "You have been unbanned"}, nil
	}

	expiresAt := s.now().Add(s.sanctionTTL)

	switch action {
	case ActionBan:
		if err := s.punishments.Upsert(ctx, tx, user.ID, string(enums.PunishmentStatusBanned), expiresAt); err != nil {
			return "", notice{}, err
		}
		return "User banned", notice{userID: user.ID, message: "You have been banned"}, nil
	case ActionWarn:
		if err := s.punishments.Upsert(ctx, tx, user.ID, string(enums.PunishmentStatusWarned), expiresAt); err != nil {
			return "", notice{}, err
		}
		return "User warned", notice{userID: user.ID, message: "You have been warned"}, nil
	case ActionTimeout:
		if err := s.punishments.Upsert(ctx, tx, user.ID, string(enums.PunishmentStatusTimeout), expiresAt); err != nil {
			return "", notice{}, err
		}
		return "User timeout", notice{userID: user.ID, message: "You have been timed out"}, nil
	default:
		return "", notice{}, ErrInvalidAction
	}
}

// ResolveReport moves a pending report to a terminal status. Sanctioning
// actions run against the report's resolved target user inside the same
// transaction as the status flip, so a failed sanction leaves the report
// pending.
func (s *Service) ResolveReport(ctx context.Context, reportID int64, action string) (string, error) {
	if reportID <= 0 {
		return "", ErrReportNotFound
	}
	if s.reports == nil || s.users == nil || s.punishments == nil {
		return "", fmt.Errorf("moderation service dependencies are not configured")
	}

	var (
		note    notice
		hasNote bool
	)
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		report, err := s.reports.GetByID(txCtx, tx, reportID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrReportNotFound) {
				return ErrReportNotFound
			}
			return err
		}

		if report.ReportStatus != string(enums.ReportStatusPending) {
			return ErrReportResolved
		}

		switch action {
		case ActionReject:
			return s.reports.UpdateStatus(txCtx, tx, report.ID, string(enums.ReportStatusRejected))
		case ActionBan, ActionWarn, ActionTimeout:
			_, n, err := s.applyAction(txCtx, tx, report.ReportedUserID, action)
			if err != nil {
				return err
			}
			note = n
			hasNote = true
			return s.reports.UpdateStatus(txCtx, tx, report.ID, string(enums.ReportStatusResolved))
		default:
			return ErrInvalidAction
		}
	}); err != nil {
		return "", err
	}

	if hasNote {
		s.emit(ctx, note)
	}
	return "Successfully resolved report", nil
}

// PreviewReport loads the reported content for an admin. A report whose
// target has since been deleted previews as empty rather than failing.
func (s *Service) PreviewReport(ctx context.Context, reportID int64) (Preview, error) {
	if reportID <= 0 {
		return Preview{}, ErrReportNotFound
	}
	if s.reports == nil || s.questions == nil || s.replies == nil {
		return Preview{}, fmt.Errorf("moderation service dependencies are not configured")
	}

	var preview Preview
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		report, err := s.reports.GetByID(txCtx, tx, reportID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrReportNotFound) {
				return ErrReportNotFound
			}
			return err
		}

		if report.ReportedPostID == nil || report.ReportedPostType == nil {
			return nil
		}

		switch enums.ReportedPostType(*report.ReportedPostType) {
		case enums.ReportedPostTypeQuestion:
			question, err := s.loadQuestion(txCtx, tx, *report.ReportedPostID)
			if err != nil {
				return err
			}
			preview.Question = question
		case enums.ReportedPostTypeReply:
			reply, err := s.loadReply(txCtx, tx, *report.ReportedPostID)
			if err != nil {
				return err
			}
			preview.Reply = reply
		}
		return nil
	}); err != nil {
		return Preview{}, err
	}

	return preview, nil
}

// SanctionFor returns the user's current punishment, or nil if there is
// none. Expiry is not evaluated here; the caller compares ExpiresAt against
// its own clock.
func (s *Service) SanctionFor(ctx context.Context, userID int64) (*Sanction, error) {
	if s.punishments == nil {
		return nil, fmt.Errorf("moderation service dependencies are not configured")
	}
	if userID <= 0 {
		return nil, ErrUserNotFound
	}

	rec, err := s.punishments.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPunishmentNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &Sanction{
		Status:    enums.PunishmentStatus(rec.Status),
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *Service) ListReports(ctx context.Context, filter string, page, size int) ([]model.Report, int, error) {
	if s.reports == nil {
		return nil, 0, fmt.Errorf("moderation service dependencies are not configured")
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}

	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", "all", "pending", "resolved", "rejected":
	default:
		return nil, 0, ErrInvalidFilter
	}

	records, total, err := s.reports.List(ctx, filter, (page-1)*size, size)
	if err != nil {
		return nil, 0, err
	}

	reports := make([]model.Report, 0, len(records))
	for _, rec := range records {
		report := model.Report{
			ID:             rec.ID,
			ReportType:     enums.ReportType(rec.ReportType),
			ReportStatus:   enums.ReportStatus(rec.ReportStatus),
			ReportedPostID: rec.ReportedPostID,
			ReporterID:     rec.ReporterID,
			ReportedUserID: rec.ReportedUserID,
			CreatedAt:      rec.CreatedAt,
			UpdatedAt:      rec.UpdatedAt,
		}
		if rec.ReportedPostType != nil {
			postType := enums.ReportedPostType(*rec.ReportedPostType)
			report.ReportedPostType = &postType
		}
		reports = append(reports, report)
	}

	return reports, totalPages(total, size), nil
}

func (s *Service) loadQuestion(ctx context.Context, tx pgx.Tx, questionID int64) (*model.Question, error) {
	rec, err := s.questions.GetByID(ctx, tx, questionID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrQuestionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	files, err := s.questions.ListFiles(ctx, tx, rec.ID)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		ID:          rec.ID,
		OwnerUserID: rec.OwnerUserID,
		Content:     rec.Content,
		Anonymous:   rec.Anonymous,
		CreatedAt:   rec.CreatedAt,
	}
	for _, f := range files {
		ref := model.FileRef{ID: f.ID, ObjectKey: f.ObjectKey}
		if s.signer != nil && strings.TrimSpace(f.ObjectKey) != "" {
			url, signErr := s.signer.PresignGet(ctx, f.ObjectKey, signedURLTTL)
			if signErr != nil {
				return nil, fmt.Errorf("sign question file: %w", signErr)
			}
			ref.URL = url
		}
		question.Files = append(question.Files, ref)
	}

	return question, nil
}

func (s *Service) loadReply(ctx context.Context, tx pgx.Tx, replyID int64) (*model.Reply, error) {
	rec, err := s.replies.GetByID(ctx, tx, replyID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrReplyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &model.Reply{
		ID:          rec.ID,
		QuestionID:  rec.QuestionID,
		OwnerUserID: rec.OwnerUserID,
		Content:     rec.Content,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// emit runs after the transaction has committed; delivery is best effort
// and never fails the moderation call itself.
func (s *Service) emit(ctx context.Context, note notice) {
	if s.notifier == nil || note.userID <= 0 {
		return
	}
	_ = s.notifier.Notify(ctx, note.userID, note.message)
}

func totalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}
