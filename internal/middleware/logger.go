package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	appLogger = slog.Default()
)

// InitLogger initializes structured logging to stdout and a rotating file in logDir.
// An empty logDir logs to stdout only. The returned closer flushes the file.
func InitLogger(logDir string, level slog.Level) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
	)

	if logDir != "" {
		// Get absolute path for log directory
		absLogDir, err := filepath.Abs(logDir)
		if err != nil {
			absLogDir = logDir
		}

		// Create logs directory if not exists
		if err := os.MkdirAll(absLogDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", absLogDir, err)
		}

		appLogFile := &lumberjack.Logger{
			Filename:   filepath.Join(absLogDir, "app.log"),
			MaxSize:    10, // MB
			MaxBackups: 30,
			MaxAge:     30, // days
			Compress:   true,
			LocalTime:  true,
		}
		out = io.MultiWriter(os.Stdout, appLogFile)
		closer = appLogFile
	}

	SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	appLogger.Info("logger initialized", "dir", logDir)

	return closer, nil
}

// SetLogger replaces the logger used by the middleware and slog's default
func SetLogger(l *slog.Logger) {
	appLogger = l
	slog.SetDefault(l)
}

// LogInfo logs info level messages
func LogInfo(msg string, args ...any) {
	appLogger.Info(msg, args...)
}

// LogWarn logs warn level messages
func LogWarn(msg string, args ...any) {
	appLogger.Warn(msg, args...)
}

// LogError logs error level messages
func LogError(msg string, args ...any) {
	appLogger.Error(msg, args...)
}

// RequestLoggerMiddleware logs method, URL, status and latency of every request.
// Responses with status >= 400 are logged at error level, with any errors
// handlers attached through c.Error.
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// Build full URL
		fullURL := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			fullURL = fullURL + "?" + c.Request.URL.RawQuery
		}

		// Process request
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"url", fullURL,
			"status", c.Writer.Status(),
			"latency", time.Since(startTime),
			"client_ip", c.ClientIP(),
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				attrs = append(attrs, "errors", c.Errors.String())
			}
			LogError("request", attrs...)
			return
		}
		LogInfo("request", attrs...)
	}
}
