package registrations

import (
	"bytes"
	"encoding/json"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
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
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse(`{{.message}}`)))
	h := NewHandler(svc, nil)
	r.POST("/registrations/:uuid/slips", h.UploadSlips)
	r.POST("/registrations/:uuid/payer", h.UpdatePayer)
	return r
}

func slipsRequest(t *testing.T, uuid string, names ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, n := range names {
		fw, err := mw.CreateFormFile("slips", n)
		require.NoError(t, err)
		_, _ = fw.Write([]byte("jpeg bytes"))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/registrations/"+uuid+"/slips", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadSlipsHandlerRedirectsBack(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(newTestService(store, &fakeUploader{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, slipsRequest(t, "u-1", "a.jpg", "b.jpg"))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/create/id?refid=u-1", w.Header().Get("Location"))
	assert.Len(t, store.receipts, 2)
}

func TestUploadSlipsHandlerJSON(t *testing.T) {
	r := newTestRouter(newTestService(&fakeStore{}, &fakeUploader{}))

	req := slipsRequest(t, "u-1")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res action.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, MsgNoSlips, res.Message)
}

func TestUpdatePayerHandler(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(newTestService(store, &fakeUploader{}))

	req := httptest.NewRequest(http.MethodPost, "/registrations/u-1/payer", strings.NewReader(`{"payerName":"Suda"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Suda", store.payer)

	req = httptest.NewRequest(http.MethodPost, "/registrations/u-1/payer", strings.NewReader("payer_name="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), MsgPayerRequired)
}
