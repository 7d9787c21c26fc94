package main

import (
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/limitless-club/booking/config"
)

// newRouter builds the engine. Forwarded-for headers are only honoured
// from cfg.TrustedProxies, so the login limiter keys on a client IP the
// caller cannot choose.
func newRouter(cfg config.ServerConfig, pages *template.Template) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	if pages != nil {
		router.SetHTMLTemplate(pages)
	}
	return router, nil
}
