// Package registrations handles payment slips and payer names on the
// Registration table.
package registrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/media"
	"github.com/limitless-club/booking/pkg/airtable"
)

// User-facing messages.
const (
	MsgNoSlips       = "กรุณาเลือกรูปภาพสลิป"
	MsgUploadFailed  = "ไม่สามารถอัปโหลดรูปภาพได้"
	MsgSlipsSaved    = "อัปโหลดสลิปเรียบร้อยแล้ว"
	MsgSlipsError    = "เกิดข้อผิดพลาดในการอัปโหลด หรือไม่พบข้อมูลการลงทะเบียน (UUID)"
	MsgPayerFailed   = "Failed to update payer name"
	MsgPayerRequired = "กรุณากรอกชื่อผู้ชำระเงิน"
)

var errNoSlipUploaded = errors.New("no slip uploaded")

// Store is the part of the Registration table the actions touch.
type Store interface {
	UpdateReceiptByUUID(ctx context.Context, uuid string, files []airtable.Attachment) error
	UpdatePayerByUUID(ctx context.Context, uuid, payerName string) error
}

// Slip is one uploaded slip image.
type Slip struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service implements the registration actions.
type Service struct {
	store  Store
	media  media.Uploader
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates the registration service.
func NewService(store Store, up media.Uploader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, media: up, logger: logger, now: time.Now}
}

// UploadSlips uploads every non-empty slip concurrently and replaces the
// registration's receipt list with the ones that went through.
func (s *Service) UploadSlips(ctx context.Context, uuid string, slips []Slip) action.Result {
	uuid = strings.TrimSpace(uuid)
	files := make([]Slip, 0, len(slips))
	for _, sl := range slips {
		if len(sl.Data) > 0 {
			files = append(files, sl)
		}
	}
	if uuid == "" || len(files) == 0 {
		return action.Rejected(action.Invalid(MsgNoSlips))
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := s.media.Upload(gctx, media.File{
				Folder:       media.FolderSlips,
				Filename:     f.Filename,
				ContentType:  f.ContentType,
				ResourceType: media.ResourceAuto,
				Data:         f.Data,
				Shrink:       true,
			})
			if err != nil {
				// one failed slip must not cancel the others
				s.logger.Warn("upload slip failed", zap.String("uuid", uuid), zap.Int("index", i), zap.Error(err))
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	_ = g.Wait()

	stamp := s.now().UnixMilli()
	var attachments []airtable.Attachment
	for _, u := range urls {
		if u == "" {
			continue
		}
		attachments = append(attachments, airtable.Attachment{
			URL:      u,
			Filename: fmt.Sprintf("slip_%d_%d.jpg", stamp, len(attachments)),
		})
	}
	if len(attachments) == 0 {
		return action.Failed(action.Upstream("media", "upload slips", errNoSlipUploaded), MsgUploadFailed)
	}

	if err := s.store.UpdateReceiptByUUID(ctx, uuid, attachments); err != nil {
		s.logger.Error("save slips failed", zap.String("uuid", uuid), zap.Error(err))
		return action.Failed(err, MsgSlipsError)
	}
	return action.OK(MsgSlipsSaved)
}

// UpdatePayerName sets the payer name of the registration with uuid.
func (s *Service) UpdatePayerName(ctx context.Context, uuid, payerName string) action.Result {
	uuid = strings.TrimSpace(uuid)
	if uuid == "" {
		return action.Rejected(action.Invalid(MsgSlipsError))
	}
	if strings.TrimSpace(payerName) == "" {
		return action.Rejected(action.Invalid(MsgPayerRequired))
	}
	if err := s.store.UpdatePayerByUUID(ctx, uuid, strings.TrimSpace(payerName)); err != nil {
		s.logger.Error("update payer name failed", zap.String("uuid", uuid), zap.Error(err))
		return action.Failed(err, MsgPayerFailed)
	}
	return action.OK("")
}
