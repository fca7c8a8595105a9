package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// contentSecurityPolicy allows only same-origin scripts; the editor page keeps
// its styles inline but loads all behaviour from /app.js.
const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"

// Secure sets the security response headers. In dev mode the HTTPS redirect
// and HSTS are skipped so the editor works over plain http on localhost.
func Secure(devMode bool) gin.HandlerFunc {
	return secure.New(secure.Config{
		IsDevelopment:         devMode,
		SSLRedirect:           true,
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		IENoOpen:              true,
		ReferrerPolicy:        "same-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
}
