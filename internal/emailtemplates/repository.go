package emailtemplates

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/pkg/airtable"
)

// Repository reads email templates from the record store.
type Repository struct {
	client *airtable.Client
	table  string
	logger *zap.Logger
}

// NewRepository creates a template repository over table.
func NewRepository(client *airtable.Client, table string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, table: table, logger: logger}
}

func (r *Repository) list(ctx context.Context, p airtable.ListParams) ([]Template, error) {
	recs, err := r.client.List(ctx, r.table, p)
	if err != nil {
		return nil, err
	}
	out := make([]Template, 0, len(recs))
	for _, rec := range recs {
		var t Template
		if err := rec.Decode(&t); err != nil {
			r.logger.Warn("skip undecodable template", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}
		t.RecordID = rec.ID
		out = append(out, t)
	}
	return out, nil
}

// ListAll returns every template in store order.
func (r *Repository) ListAll(ctx context.Context) ([]Template, error) {
	ts, err := r.list(ctx, airtable.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return ts, nil
}

// FindActiveForClassAndDate returns the first active template for
// className on date, or nil when none matches. Active templates are
// fetched in one query and matched here since class and date may be
// lookup arrays that formulas handle poorly.
func (r *Repository) FindActiveForClassAndDate(ctx context.Context, className, date string) (*Template, error) {
	ts, err := r.list(ctx, airtable.ListParams{Formula: airtable.IsTrue("Is Active")})
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	for i := range ts {
		if ts[i].Matches(className, date) {
			r.logger.Info("template matched",
				zap.String("record_id", ts[i].RecordID),
				zap.String("class", className),
				zap.String("date", date),
			)
			return &ts[i], nil
		}
	}
	r.logger.Info("no active template matched",
		zap.String("class", className),
		zap.String("date", date),
		zap.Int("active", len(ts)),
	)
	return nil, nil
}
