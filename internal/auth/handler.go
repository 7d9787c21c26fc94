package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/pkg/response"
)

// MsgInvalidCredentials is shown on a failed login.
const MsgInvalidCredentials = "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Username    string `form:"username" json:"username"`
	Password    string `form:"password" json:"password"`
	CallbackURL string `form:"callbackUrl" json:"callbackUrl"`
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler handles login and logout.
type Handler struct {
	creds    Credentials
	sessions *SessionService
	cookie   CookieConfig
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(creds Credentials, sessions *SessionService, cookie CookieConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{creds: creds, sessions: sessions, cookie: cookie, logger: logger}
}

// SafeCallback returns target when it is a local path, otherwise "/".
func SafeCallback(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

// LoginPage handles GET /login.
func (h *Handler) LoginPage(c *gin.Context) {
	response.HTML(c, http.StatusOK, "login.html", gin.H{
		"callbackUrl": SafeCallback(c.Query("callbackUrl")),
	})
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	_ = c.ShouldBind(&req)
	callback := SafeCallback(req.CallbackURL)

	if !h.creds.Check(req.Username, req.Password) {
		h.logger.Warn("login failed", zap.String("username", req.Username), zap.String("client_ip", c.ClientIP()))
		h.loginFailed(c, callback)
		return
	}
	token, err := h.sessions.Issue(req.Username)
	if err != nil {
		h.logger.Error("issue session failed", zap.Error(err))
		h.loginFailed(c, callback)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.sessions.TTL().Seconds()), "/", "", h.cookie.Secure, true)
	h.logger.Info("login", zap.String("username", req.Username))

	if response.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "redirect": callback})
		return
	}
	c.Redirect(http.StatusSeeOther, callback)
}

func (h *Handler) loginFailed(c *gin.Context, callback string) {
	if response.WantsJSON(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": MsgInvalidCredentials})
		return
	}
	response.HTML(c, http.StatusUnauthorized, "login.html", gin.H{
		"callbackUrl": callback,
		"message":     MsgInvalidCredentials,
	})
}

// Logout handles POST /logout.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
