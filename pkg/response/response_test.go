package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWantsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header, value string
		want          bool
	}{
		{"Accept", "application/json", true},
		{"Accept", "text/html,application/xhtml+xml", false},
		{"Content-Type", "application/json; charset=utf-8", true},
		{"X-Requested-With", "XMLHttpRequest", true},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		c.Request.Header.Set(tc.header, tc.value)
		assert.Equal(t, tc.want, WantsJSON(c), tc.header+": "+tc.value)
	}
}

func TestAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	APIError(c, http.StatusForbidden, "ไม่ได้รับอนุญาตให้เข้าถึง Airtable", "details")

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ไม่ได้รับอนุญาตให้เข้าถึง Airtable", body.Error)
	assert.Equal(t, "details", body.Details)
}
