package emailtemplates

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/limitless-club/booking/pkg/airtable"
)

type fakeLister struct {
	ts  []Template
	err error
}

func (f fakeLister) ListAll(context.Context) ([]Template, error) { return f.ts, f.err }

func newTestRouter(l Lister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl := template.Must(template.New("templates.html").Parse(
		`{{range .templates}}{{.Key}}:{{if .IsActive}}Active{{else}}Inactive{{end}};{{end}}`))
	template.Must(tmpl.New("error.html").Parse(`{{.message}}`))
	r.SetHTMLTemplate(tmpl)
	r.GET("/templates", NewHandler(l, nil).List)
	return r
}

func TestListTemplatesPage(t *testing.T) {
	r := newTestRouter(fakeLister{ts: []Template{
		{Key: airtable.StringList{"T1"}, IsActive: true},
		{Key: airtable.StringList{"T2"}},
	}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T1:Active;T2:Inactive;", w.Body.String())
}

func TestListTemplatesFailure(t *testing.T) {
	r := newTestRouter(fakeLister{err: errors.New("403")})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "403")
}
