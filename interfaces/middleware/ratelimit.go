package middleware

import (
	"net/http"

	"ig-dashboard/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewAuthLimiter builds an in-process limiter from a rate such as "30-M".
func NewAuthLimiter(rate string) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), r), nil
}

// RateLimit throttles per client IP.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()
		res, err := l.Get(ctx.Request.Context(), ip)
		if err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{"ip": ip, "error": err}).Error("Rate limit check failed")
			ctx.Next()
			return
		}
		if res.Reached {
			logger.GetLogger().WithFields(map[string]interface{}{"ip": ip, "limit": res.Limit}).Warn("Rate limit exceeded")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests. Please try again later."})
			return
		}
		ctx.Next()
	}
}
