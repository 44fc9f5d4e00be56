package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"easyshop/internal/config"
)

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	return l
}

// Setup configures level, format and sinks. When cfg.File is set, entries go
// to stdout and the file; the returned closer releases the file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	std.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "text":
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	default:
		std.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	var closer io.Closer = io.NopCloser(nil)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			std.Warnf("could not open log file %s: %v", cfg.File, err)
		} else {
			std.SetOutput(io.MultiWriter(os.Stdout, f))
			closer = f
		}
	}
	return closer, nil
}

// SetOutput redirects all entries; tests use it to capture logs.
func SetOutput(w io.Writer) { std.SetOutput(w) }

func Logger() *logrus.Logger { return std }

func entry(c *fiber.Ctx, action string, fields map[string]any) *logrus.Entry {
	f := logrus.Fields{}
	if action != "" {
		f["action"] = action
	}
	for k, v := range fields {
		f[k] = v
	}
	if c != nil {
		f["ip"] = c.IP()
		f["method"] = c.Method()
		f["path"] = c.Path()
		if st := c.Response().StatusCode(); st != 0 {
			f["status"] = st
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			f["req_id"] = rid
		}
		if uid, ok := c.Locals("user_id").(int); ok && uid != 0 {
			f["user_id"] = uid
		}
	}
	return std.WithFields(f)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, action, fields).Info(action)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, action, fields).WithField("audit", true).Info(action)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, action, fields).Warn(action)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	entry(c, action, fields).WithError(err).Error(action)
}

// AccessLog writes one entry per request, levelled by response status.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		// Resolve the error here so the logged status is the one the client sees.
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		e := entry(c, "http.access", map[string]any{
			"latency_ms": time.Since(start).Milliseconds(),
			"bytes_sent": len(c.Response().Body()),
		})
		switch st := c.Response().StatusCode(); {
		case st >= 500:
			e.Error("request completed")
		case st >= 400:
			e.Warn("request completed")
		default:
			e.Info("request completed")
		}
		return nil
	}
}
