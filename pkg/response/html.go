package response

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// HTML renders the named page, adding the CSRF hidden field and token so
// every form in the page can post back.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["csrfField"] = csrf.TemplateField(c.Request)
	data["csrfToken"] = csrf.Token(c.Request)
	if v, ok := c.Get("session_user"); ok {
		data["user"] = v
	}
	c.HTML(status, name, data)
}
