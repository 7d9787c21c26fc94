// Package receipts sends the receipt / tax invoice email to a student's
// billing address, optionally with an attached file.
package receipts

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/media"
	"github.com/limitless-club/booking/internal/metrics"
	"github.com/limitless-club/booking/internal/students"
	"github.com/limitless-club/booking/pkg/mailer"
)

// User-facing messages.
const (
	MsgMissingInput = "ข้อมูลไม่ครบถ้วน (Record ID หรือ Email)"
	MsgSent         = "ส่งอีเมลสำเร็จเรียบร้อย"
	MsgSendFailed   = "เกิดข้อผิดพลาดในการส่งอีเมล (โปรดตรวจสอบ App Password)"
)

// Students is the part of the Students table the action touches.
type Students interface {
	FindByID(ctx context.Context, id string) (*students.Student, error)
	Update(ctx context.Context, id string, u students.Update) error
	UpdateEmailStatus(ctx context.Context, id string, status students.EmailStatus) error
	UpdateDocumentAttachment(ctx context.Context, id, url, filename string) (*students.Student, error)
}

// File is an uploaded attachment.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Input is the send-email form.
type Input struct {
	BillEmail   string `form:"bill_email"`
	FullName    string `form:"full_name"`
	ClassName   string `form:"name_class"`
	CompanyName string `form:"company_name"`
	TaxID       string `form:"tax_id"`
	TaxAddress  string `form:"tax_addres"`
	Content
	Attachment *File `form:"-"`
}

// Report details the best-effort steps of one send.
type Report struct {
	Document action.Outcome
	Status   action.Outcome
}

// Service implements the receipt email action.
type Service struct {
	students Students
	media    media.Uploader
	mail     mailer.Sender
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates the receipt service.
func NewService(st Students, up media.Uploader, mail mailer.Sender, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{students: st, media: up, mail: mail, metrics: m, logger: logger}
}

// Student returns the record shown on the send-email page, or nil.
func (s *Service) Student(ctx context.Context, id string) (*students.Student, error) {
	return s.students.FindByID(ctx, id)
}

// Send saves the billing fields, uploads and records the attachment
// (best-effort), emails the billing address and records the outcome on
// the student's email status.
func (s *Service) Send(ctx context.Context, id string, in Input) (action.Result, Report) {
	report := Report{
		Document: action.Skipped("no attachment"),
		Status:   action.Skipped("not sent"),
	}
	if id == "" || in.BillEmail == "" {
		return action.Rejected(action.Invalid(MsgMissingInput)), report
	}

	log := s.logger.With(zap.String("record_id", id))
	if err := s.students.Update(ctx, id, students.Update{
		FullName:    students.Optional(in.FullName),
		ClassName:   students.Optional(in.ClassName),
		CompanyName: students.Optional(in.CompanyName),
		TaxID:       students.Optional(in.TaxID),
		TaxAddress:  students.Optional(in.TaxAddress),
		BillEmail:   &in.BillEmail,
	}); err != nil {
		log.Error("update billing fields failed", zap.Error(err))
		return s.fail(ctx, id, err, report)
	}

	req := mailer.SendRequest{
		To:      []string{in.BillEmail},
		Subject: in.subject(),
	}
	if f := in.Attachment; f != nil && len(f.Data) > 0 {
		report.Document = s.recordDocument(ctx, id, f)
		req.Attachments = append(req.Attachments, mailer.Attachment{Filename: f.Filename, Content: f.Data})
	}

	body, err := composeReceipt(in.Content)
	if err != nil {
		return s.fail(ctx, id, err, report)
	}
	req.HTML = body

	_, err = s.mail.Send(ctx, req)
	s.metrics.ObserveEmail("receipt", err)
	if err != nil {
		log.Error("send receipt failed", zap.String("to", in.BillEmail), zap.Error(err))
		return s.fail(ctx, id, action.Upstream("mail", "send receipt", err), report)
	}

	if err := s.students.UpdateEmailStatus(ctx, id, students.EmailSuccess); err != nil {
		log.Warn("set email status success failed", zap.Error(err))
		report.Status = action.Skipped("status update failed: " + err.Error())
	} else {
		report.Status = action.Applied()
	}
	return action.OK(MsgSent), report
}

// recordDocument uploads the attachment and echoes its URL onto the
// student's Document field.
func (s *Service) recordDocument(ctx context.Context, id string, f *File) action.Outcome {
	if s.media == nil {
		return action.Skipped("no media store")
	}
	url, err := s.media.Upload(ctx, media.Document(f.Filename, f.ContentType, f.Data))
	if err != nil {
		s.logger.Warn("upload document failed", zap.String("record_id", id), zap.String("filename", f.Filename), zap.Error(err))
		return action.Skipped("upload failed: " + err.Error())
	}
	st, err := s.students.UpdateDocumentAttachment(ctx, id, url, f.Filename)
	if err != nil {
		s.logger.Warn("update document field failed", zap.String("record_id", id), zap.Error(err))
		return action.Skipped("document field update failed: " + err.Error())
	}
	if st == nil || len(st.Document) == 0 {
		s.logger.Warn("document field empty after update", zap.String("record_id", id), zap.String("url", url))
		return action.Skipped("document field empty after update")
	}
	return action.Applied()
}

func (s *Service) fail(ctx context.Context, id string, cause error, report Report) (action.Result, Report) {
	if err := s.students.UpdateEmailStatus(ctx, id, students.EmailFail); err != nil {
		s.logger.Error("set email status fail failed", zap.String("record_id", id), zap.Error(err))
		report.Status = action.Skipped("status update failed: " + err.Error())
	} else {
		report.Status = action.Applied()
	}
	if !action.IsUpstream(cause) && !errors.Is(cause, context.Canceled) {
		cause = action.Upstream("airtable", "send receipt", cause)
	}
	return action.Failed(cause, MsgSendFailed), report
}
