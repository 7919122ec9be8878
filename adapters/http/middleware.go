package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	limit "github.com/yangxikun/gin-limit-by-key"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

const (
	GinContextKeyRequestID = "requestID"
	HeaderRequestID        = "X-Request-ID"
)

// ErrorMiddleware renders the last error attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}

		status := apperror.ToHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("request_id", c.GetString(GinContextKeyRequestID)),
				zap.String("path", c.FullPath()),
				zap.String("details", appErr.Details),
			)
		}
		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}

// RequestID tags every request with an id, reusing the caller's X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(GinContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("HTTP request",
			zap.String("request_id", c.GetString(GinContextKeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// RateLimitByIP allows perMinute requests per client IP with a small burst.
func RateLimitByIP(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	burst := max(perMinute/4, 1)

	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst), time.Hour
		},
		func(c *gin.Context) {
			err := apperror.NewRateLimited("client " + c.ClientIP() + " exceeded the request rate")
			c.AbortWithStatusJSON(apperror.ToHTTPStatus(err), err.ToJSON())
		},
	)
}

func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, HeaderRequestID)
	cfg.ExposeHeaders = []string{HeaderRequestID}
	return cors.New(cfg)
}
