package middleware

import (
	"bytes"
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
)

const idempotencyTTL = 24 * time.Hour

// bodyRecorder captures the response body so it can be replayed
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request carries an
// Idempotency-Key already seen for the same endpoint. Requests without
// the header pass through untouched.
func Idempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		endpoint := c.Request.Method + " " + c.FullPath()
		record, err := repo.GetByKey(c.Request.Context(), key, endpoint)
		if err == nil && !record.IsExpired() {
			c.Data(record.ResponseCode, "application/json; charset=utf-8", []byte(record.ResponseBody))
			c.Abort()
			return
		}
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			log.Printf("idempotency lookup failed: %v", err)
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		// Only successful outcomes are worth replaying
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		createErr := repo.Create(c.Request.Context(), &entity.IdempotencyKey{
			Key:          key,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: recorder.body.String(),
			ExpiresAt:    time.Now().Add(idempotencyTTL),
		})
		if createErr != nil {
			log.Printf("failed to store idempotency key: %v", createErr)
		}
	}
}
