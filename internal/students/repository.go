package students

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/pkg/airtable"
)

const service = "airtable"

// Repository reads and writes the Students table.
type Repository struct {
	client *airtable.Client
	table  string
	logger *zap.Logger
}

// NewRepository creates a student repository over table.
func NewRepository(client *airtable.Client, table string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, table: table, logger: logger}
}

func decode(rec airtable.Record) (Student, error) {
	var s Student
	if err := rec.Decode(&s); err != nil {
		return Student{}, err
	}
	s.ID = rec.ID
	return s, nil
}

// FindByReferenceID returns every student sharing refID; empty when none.
func (r *Repository) FindByReferenceID(ctx context.Context, refID string) ([]Student, error) {
	recs, err := r.client.List(ctx, r.table, airtable.ListParams{Formula: airtable.Eq("uuid", refID)})
	if err != nil {
		return nil, action.Upstream(service, "find students", err)
	}
	out := make([]Student, 0, len(recs))
	for _, rec := range recs {
		s, err := decode(rec)
		if err != nil {
			r.logger.Warn("skip undecodable student", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// FindByID returns the student with record id, or nil when it does not exist.
func (r *Repository) FindByID(ctx context.Context, id string) (*Student, error) {
	rec, err := r.client.Get(ctx, r.table, id)
	if err != nil {
		if airtable.IsNotFound(err) {
			return nil, nil
		}
		return nil, action.Upstream(service, "get student", err)
	}
	s, err := decode(*rec)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &s, nil
}

// Update writes the non-nil fields of u.
func (r *Repository) Update(ctx context.Context, id string, u Update) error {
	if _, err := r.client.Update(ctx, r.table, id, u); err != nil {
		return action.Upstream(service, "update student", err)
	}
	return nil
}

// UpdateEmailStatus flips the receipt email state.
func (r *Repository) UpdateEmailStatus(ctx context.Context, id string, status EmailStatus) error {
	return r.Update(ctx, id, Update{EmailStatus: &status})
}

// SetSaleOwner sets name_sale on one record.
func (r *Repository) SetSaleOwner(ctx context.Context, id, name string) error {
	return r.Update(ctx, id, Update{SaleName: &name})
}

// UpdateDocumentAttachment replaces the document list with a single file
// and returns the stored record. The store accepts malformed attachment
// payloads silently, so callers check the returned Document list.
func (r *Repository) UpdateDocumentAttachment(ctx context.Context, id, url, filename string) (*Student, error) {
	rec, err := r.client.Update(ctx, r.table, id, Update{
		Document: []airtable.Attachment{{URL: url, Filename: filename}},
	})
	if err != nil {
		return nil, action.Upstream(service, "update document", err)
	}
	s, err := decode(*rec)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return &s, nil
}
