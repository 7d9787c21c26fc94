package students

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/emailtemplates"
	"github.com/limitless-club/booking/pkg/airtable"
	"github.com/limitless-club/booking/pkg/mailer"
)

type fakeStore struct {
	mu        sync.Mutex
	updates   map[string]Update
	sale      map[string]string
	updateErr error
	saleErrID string
	students  []Student
}

func newFakeStore() *fakeStore {
	return &fakeStore{updates: map[string]Update{}, sale: map[string]string{}}
}

func (f *fakeStore) FindByReferenceID(_ context.Context, _ string) ([]Student, error) {
	return f.students, nil
}

func (f *fakeStore) Update(_ context.Context, id string, u Update) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = u
	return nil
}

func (f *fakeStore) SetSaleOwner(_ context.Context, id, name string) error {
	if id == f.saleErrID {
		return action.Upstream("airtable", "update student", errors.New("422 INVALID_VALUE"))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sale[id] = name
	return nil
}

type fakeTemplates struct {
	tpl *emailtemplates.Template
	err error
}

func (f *fakeTemplates) FindActiveForClassAndDate(context.Context, string, string) (*emailtemplates.Template, error) {
	return f.tpl, f.err
}

type fakeMailer struct {
	sent []mailer.SendRequest
	err  error
}

func (f *fakeMailer) Send(_ context.Context, req mailer.SendRequest) (mailer.SendResult, error) {
	f.sent = append(f.sent, req)
	return mailer.SendResult{}, f.err
}

func yogaTemplate() *emailtemplates.Template {
	return &emailtemplates.Template{
		RecordID:    "recT",
		ClassName:   airtable.StringList{"Yoga 101"},
		Date:        airtable.StringList{"2024-06-10T00:00:00.000Z"},
		Body:        "สวัสดี {{full_name}} วันที่ {{date}} รหัส {{uuid}}",
		YoutubeLink: "https://youtu.be/abc",
	}
}

func profileForYoga() ProfileInput {
	in := validProfile()
	in.FullName = "สมชาย <b>"
	in.ClassName = "Yoga 101"
	in.Date = "2024-05-01"
	in.UUID = "ab12cd34-0000-4000-8000-000000000000"
	return in
}

func TestUpdateProfileRejectsWithoutWrites(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(store, &fakeTemplates{tpl: yogaTemplate()}, mail, nil, nil)

	in := profileForYoga()
	in.Phone = "12345"
	res, outcome := svc.UpdateProfile(context.Background(), "rec1", in)

	assert.False(t, res.Success)
	assert.Equal(t, MsgPhone, res.Message)
	assert.True(t, outcome.SkippedWithWarning())
	assert.Empty(t, store.updates)
	assert.Empty(t, mail.sent)
}

func TestUpdateProfileMissingID(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeTemplates{}, &fakeMailer{}, nil, nil)
	res, _ := svc.UpdateProfile(context.Background(), "", profileForYoga())
	assert.False(t, res.Success)
	assert.Equal(t, MsgMissingID, res.Message)
}

func TestUpdateProfileSendsConfirmation(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(store, &fakeTemplates{tpl: yogaTemplate()}, mail, nil, nil)

	res, outcome := svc.UpdateProfile(context.Background(), "rec1", profileForYoga())
	require.True(t, res.Success)
	assert.Equal(t, MsgSaved, res.Message)
	assert.True(t, outcome.Applied)

	u := store.updates["rec1"]
	require.NotNil(t, u.IsUpdate)
	assert.True(t, *u.IsUpdate)
	assert.Equal(t, "0812345678", *u.Phone)
	assert.Nil(t, u.EmailStatus, "profile save does not touch the email status")

	require.Len(t, mail.sent, 1)
	msg := mail.sent[0]
	assert.Equal(t, []string{"somchai@example.com"}, msg.To)
	assert.Equal(t, "ยืนยันข้อมูลและเริ่มเรียนคลาส Yoga 101", msg.Subject)
	assert.Contains(t, msg.HTML, "สวัสดี สมชาย &lt;b&gt; วันที่ 1 พ.ค. 67 รหัส AB12CD34")
	assert.Contains(t, msg.HTML, "1 พฤษภาคม 2567")
	assert.Contains(t, msg.HTML, "PAYMENT CODE ของกลุ่มคุณคือ : AB12CD34")
	assert.Contains(t, msg.HTML, `href="https://youtu.be/abc"`)
	assert.NotContains(t, msg.HTML, "{{")
}

func TestUpdateProfileMailFailureStillSucceeds(t *testing.T) {
	store := newFakeStore()
	mail := &fakeMailer{err: errors.New("535 bad app password")}
	svc := NewService(store, &fakeTemplates{tpl: yogaTemplate()}, mail, nil, nil)

	res, outcome := svc.UpdateProfile(context.Background(), "rec1", profileForYoga())
	assert.True(t, res.Success)
	assert.True(t, outcome.SkippedWithWarning())
	assert.Contains(t, outcome.Reason, "send failed")
	assert.Contains(t, store.updates, "rec1")
}

func TestUpdateProfileWithoutTemplate(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewService(newFakeStore(), &fakeTemplates{}, mail, nil, nil)

	res, outcome := svc.UpdateProfile(context.Background(), "rec1", profileForYoga())
	assert.True(t, res.Success)
	assert.Equal(t, "no active template", outcome.Reason)
	assert.Empty(t, mail.sent)

	lookupErr := NewService(newFakeStore(), &fakeTemplates{err: errors.New("timeout")}, mail, nil, nil)
	res, outcome = lookupErr.UpdateProfile(context.Background(), "rec1", profileForYoga())
	assert.True(t, res.Success)
	assert.True(t, outcome.SkippedWithWarning())
}

func TestUpdateProfileStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.updateErr = action.Upstream("airtable", "update student", errors.New("503"))
	mail := &fakeMailer{}
	svc := NewService(store, &fakeTemplates{tpl: yogaTemplate()}, mail, nil, nil)

	res, _ := svc.UpdateProfile(context.Background(), "rec1", profileForYoga())
	assert.False(t, res.Success)
	assert.Equal(t, MsgSaveFailed, res.Message)
	assert.Empty(t, mail.sent)
}

func TestAssignSaleOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTemplates{}, &fakeMailer{}, nil, nil)

	res := svc.AssignSaleOwner(context.Background(), []string{"rec1", "rec2", " rec1 ", ""}, "Nok")
	require.True(t, res.Success)
	assert.Equal(t, map[string]string{"rec1": "Nok", "rec2": "Nok"}, store.sale)
}

func TestAssignSaleOwnerAggregateFailure(t *testing.T) {
	store := newFakeStore()
	store.saleErrID = "rec2"
	svc := NewService(store, &fakeTemplates{}, &fakeMailer{}, nil, nil)

	res := svc.AssignSaleOwner(context.Background(), []string{"rec1", "rec2", "rec3"}, "Nok")
	assert.False(t, res.Success)
	assert.Equal(t, MsgSaleFailed, res.Message)
}

func TestAssignSaleOwnerNeedsIDs(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeTemplates{}, &fakeMailer{}, nil, nil)
	res := svc.AssignSaleOwner(context.Background(), nil, "Nok")
	assert.False(t, res.Success)
}
