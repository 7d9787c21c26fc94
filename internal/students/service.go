package students

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/emailtemplates"
	"github.com/limitless-club/booking/internal/metrics"
	"github.com/limitless-club/booking/pkg/mailer"
)

// Store is the part of the Students table the service writes to.
type Store interface {
	FindByReferenceID(ctx context.Context, refID string) ([]Student, error)
	Update(ctx context.Context, id string, u Update) error
	SetSaleOwner(ctx context.Context, id, name string) error
}

// TemplateFinder looks up the confirmation email for a class round.
type TemplateFinder interface {
	FindActiveForClassAndDate(ctx context.Context, className, date string) (*emailtemplates.Template, error)
}

// saleOwnerConcurrency keeps bulk updates under the store's per-base rate limit.
const saleOwnerConcurrency = 5

// Service implements the student profile actions.
type Service struct {
	store     Store
	templates TemplateFinder
	mail      mailer.Sender
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates the student service.
func NewService(store Store, templates TemplateFinder, mail mailer.Sender, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, templates: templates, mail: mail, metrics: m, logger: logger}
}

// ListByReference returns the students of one registration group.
func (s *Service) ListByReference(ctx context.Context, refID string) ([]Student, error) {
	return s.store.FindByReferenceID(ctx, strings.TrimSpace(refID))
}

// UpdateProfile validates and saves the student info form, then sends the
// class confirmation email if an active template matches. The email is
// best-effort: its Outcome is returned but never fails the action.
func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (action.Result, action.Outcome) {
	if id == "" {
		return action.Rejected(action.Invalid(MsgMissingID)), action.Skipped("not saved")
	}
	if err := in.Validate(); err != nil {
		return action.Rejected(err), action.Skipped("not saved")
	}
	if err := s.store.Update(ctx, id, in.update()); err != nil {
		s.logger.Error("update student failed", zap.String("record_id", id), zap.Error(err))
		return action.Failed(err, MsgSaveFailed), action.Skipped("not saved")
	}

	outcome := s.sendConfirmation(ctx, in)
	if outcome.SkippedWithWarning() {
		s.logger.Info("confirmation email skipped", zap.String("record_id", id), zap.String("reason", outcome.Reason))
	}
	return action.OK(MsgSaved), outcome
}

func (s *Service) sendConfirmation(ctx context.Context, in ProfileInput) action.Outcome {
	if in.ClassName == "" || in.Date == "" {
		return action.Skipped("class or date missing")
	}
	tpl, err := s.templates.FindActiveForClassAndDate(ctx, in.ClassName, in.Date)
	if err != nil {
		s.logger.Warn("find email template failed", zap.Error(err))
		return action.Skipped("template lookup failed: " + err.Error())
	}
	if tpl == nil {
		return action.Skipped("no active template")
	}
	body, err := composeConfirmation(tpl, in)
	if err != nil {
		s.logger.Warn("compose confirmation failed", zap.Error(err))
		return action.Skipped("compose failed: " + err.Error())
	}
	_, err = s.mail.Send(ctx, mailer.SendRequest{
		To:      []string{in.UserEmail},
		Subject: ConfirmationSubject(in.ClassName),
		HTML:    body,
	})
	s.metrics.ObserveEmail("confirmation", err)
	if err != nil {
		s.logger.Warn("send confirmation failed", zap.String("to", in.UserEmail), zap.Error(err))
		return action.Skipped("send failed: " + err.Error())
	}
	return action.Applied()
}

// AssignSaleOwner sets the sale owner on every record in parallel. Any
// failure fails the whole action without per-record detail.
func (s *Service) AssignSaleOwner(ctx context.Context, ids []string, name string) action.Result {
	ids = compact(ids)
	if len(ids) == 0 {
		return action.Rejected(action.Invalid(MsgSaleFailed))
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(saleOwnerConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return s.store.SetSaleOwner(gctx, id, name)
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("assign sale owner failed", zap.Int("records", len(ids)), zap.Error(err))
		if !action.IsUpstream(err) && !errors.Is(err, context.Canceled) {
			err = action.Upstream("airtable", "assign sale owner", err)
		}
		return action.Failed(err, MsgSaleFailed)
	}
	return action.OK(MsgSaleAssigned)
}

func compact(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
