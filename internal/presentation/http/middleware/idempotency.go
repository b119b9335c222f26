package middleware

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// storedResponse is the cached outcome replayed on a retried key.
type storedResponse struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired guards checkout: a retried submission with the same
// Idempotency-Key replays the original response instead of billing twice.
// Keys are scoped per operator.
func IdempotencyRequired(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.JSON(400, gin.H{
				"success": false,
				"message": "Idempotency-Key header is required for this request",
			})
			c.Abort()
			return
		}

		operatorID := c.GetString("operator_id")
		if operatorID == "" {
			c.JSON(401, gin.H{
				"success": false,
				"message": "Operator not authenticated",
			})
			c.Abort()
			return
		}

		scopedKey := operatorID + ":" + idempotencyKey

		cached, found, err := repo.Get(c.Request.Context(), scopedKey)
		if err != nil {
			// Fail open: a cache outage must not block the till.
			c.Next()
			return
		}
		if found {
			var stored storedResponse
			if err := json.Unmarshal(cached, &stored); err == nil {
				c.Header("X-Idempotency-Replayed", "true")
				c.Data(stored.Code, "application/json", []byte(stored.Body))
				c.Abort()
				return
			}
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only store successful responses (2xx status codes)
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			data, err := json.Marshal(storedResponse{
				Code: c.Writer.Status(),
				Body: blw.body.String(),
			})
			if err != nil {
				return
			}
			_ = repo.Set(c.Request.Context(), scopedKey, data, IdempotencyKeyTTL)
		}
	}
}
