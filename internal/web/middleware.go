package web

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/Veraticus/the-profit-must-flow/internal/metrics"
	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// logRequests logs one entry per request once the handler chain completes.
func logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}

		slog.Log(c.Request.Context(), level, "Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_size", c.Request.ContentLength,
			"response_size", c.Writer.Size())
	}
}

// observeRequests records request counts and latency per route.
func observeRequests(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.ObserveRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
