package registrations

import (
	"context"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/pkg/airtable"
)

// Repository reads and writes the Registration table. Callers only know
// the reference uuid, so every write resolves it to a record id first.
type Repository struct {
	client *airtable.Client
	table  string
	logger *zap.Logger
}

// NewRepository creates a registration repository over table.
func NewRepository(client *airtable.Client, table string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, table: table, logger: logger}
}

// FindByUUID returns the first registration with uuid.
func (r *Repository) FindByUUID(ctx context.Context, uuid string) (*Registration, error) {
	recs, err := r.client.List(ctx, r.table, airtable.ListParams{
		Formula:    airtable.Eq("uuid", uuid),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, action.Upstream("airtable", "find registration", err)
	}
	if len(recs) == 0 {
		return nil, &action.NotFoundError{Kind: "registration", Key: uuid}
	}
	var reg Registration
	if err := recs[0].Decode(&reg); err != nil {
		return nil, action.Upstream("airtable", "decode registration", err)
	}
	reg.ID = recs[0].ID
	return &reg, nil
}

// UpdateReceiptByUUID replaces the receipt list with files.
func (r *Repository) UpdateReceiptByUUID(ctx context.Context, uuid string, files []airtable.Attachment) error {
	reg, err := r.FindByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if _, err := r.client.Update(ctx, r.table, reg.ID, update{Receipt: files}); err != nil {
		return action.Upstream("airtable", "update receipt", err)
	}
	r.logger.Info("registration receipt updated", zap.String("uuid", uuid), zap.Int("files", len(files)))
	return nil
}

// UpdatePayerByUUID sets payer_name.
func (r *Repository) UpdatePayerByUUID(ctx context.Context, uuid, payerName string) error {
	reg, err := r.FindByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if _, err := r.client.Update(ctx, r.table, reg.ID, update{PayerName: &payerName}); err != nil {
		return action.Upstream("airtable", "update payer", err)
	}
	return nil
}
