package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
)

// BodyLimit recusa corpos maiores que limit bytes.
// Content-Length declarado é checado antes; corpos sem tamanho são cortados na leitura.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			dto.Abort(c, dto.PayloadTooLargeErrorResponseI18n(c, limit))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
