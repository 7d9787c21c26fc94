package students

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitless-club/booking/internal/action"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl := template.Must(template.New("students.html").Parse(
		`{{range .students}}{{.FullName}}{{if eq .ID $.activeID}}/{{.TaxID}}{{end}};{{end}}{{with .result}}[{{.Message}}]{{end}}`))
	template.Must(tmpl.New("error.html").Parse(`{{.message}}`))
	r.SetHTMLTemplate(tmpl)

	h := NewHandler(svc, nil)
	r.GET("/create/id", h.Page)
	r.POST("/create/id/:id", h.UpdateProfile)
	r.POST("/students/sale-owner", h.AssignSaleOwner)
	return r
}

func profileForm(in ProfileInput) url.Values {
	return url.Values{
		"full_name":             {in.FullName},
		"full_name_certificate": {in.FullNameCertificate},
		"nickname":              {in.Nickname},
		"user_email":            {in.UserEmail},
		"company_name":          {in.CompanyName},
		"tax_id":                {in.TaxID},
		"tax_addres":            {in.TaxAddress},
		"bill_email":            {in.BillEmail},
		"phone_num":             {in.Phone},
		"uuid":                  {in.UUID},
	}
}

func TestPageStates(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(NewService(store, &fakeTemplates{}, &fakeMailer{}, nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create/id", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Reference ID is missing.")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create/id?refid=abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "abc")

	store.students = []Student{{ID: "rec1", FullName: "Somchai"}, {ID: "rec2", FullName: "Suda"}}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create/id?refid=abc", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Somchai;Suda;", w.Body.String())
}

func TestUpdateProfileJSON(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(NewService(store, &fakeTemplates{}, &fakeMailer{}, nil, nil))

	in := validProfile()
	in.TaxID = "123"
	req := httptest.NewRequest(http.MethodPost, "/create/id/rec1", strings.NewReader(profileForm(in).Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var res action.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, MsgTaxID, res.Message)
	assert.Empty(t, store.updates)
}

func TestUpdateProfileHTMLRerendersList(t *testing.T) {
	store := newFakeStore()
	store.students = []Student{{ID: "rec1", FullName: "Somchai"}}
	r := newTestRouter(NewService(store, &fakeTemplates{}, &fakeMailer{}, nil, nil))

	in := validProfile()
	in.UUID = "ref-1"
	req := httptest.NewRequest(http.MethodPost, "/create/id/rec1", strings.NewReader(profileForm(in).Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Somchai/;["+MsgSaved+"]", w.Body.String())
	assert.Contains(t, store.updates, "rec1")
}

func TestUpdateProfileHTMLRejectedKeepsInput(t *testing.T) {
	store := newFakeStore()
	store.students = []Student{{ID: "rec1", FullName: "Somchai", TaxID: "1111111111111"}, {ID: "rec2", FullName: "Suda"}}
	r := newTestRouter(NewService(store, &fakeTemplates{}, &fakeMailer{}, nil, nil))

	in := validProfile()
	in.UUID = "ref-1"
	in.FullName = "Somchai Jaidee"
	in.TaxID = "123"
	req := httptest.NewRequest(http.MethodPost, "/create/id/rec1", strings.NewReader(profileForm(in).Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Somchai Jaidee/123;Suda;["+MsgTaxID+"]", w.Body.String())
	assert.Empty(t, store.updates)
	assert.Equal(t, "Somchai", store.students[0].FullName)
}

func TestAssignSaleOwnerJSON(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(NewService(store, &fakeTemplates{}, &fakeMailer{}, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/students/sale-owner",
		strings.NewReader(`{"recordIds":["rec1","rec2"],"saleName":" Nok "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nok", store.sale["rec2"])
}
