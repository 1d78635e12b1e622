package main

import (
	"github.com/dmitrymomot/mailkit/internal/server"
	"github.com/dmitrymomot/mailkit/pkg/logger"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
	"github.com/dmitrymomot/mailkit/pkg/mailer/brevo"
	"github.com/dmitrymomot/mailkit/pkg/mailer/devsender"
	"github.com/dmitrymomot/mailkit/pkg/mailer/postmark"
	"github.com/dmitrymomot/mailkit/pkg/mailer/resend"
	"github.com/dmitrymomot/mailkit/pkg/redis"
	"github.com/dmitrymomot/mailkit/pkg/storage"
)

// Document source kinds.
const (
	SourceFS    = "fs"
	SourceS3    = "s3"
	SourceRedis = "redis"
)

// Provider names.
const (
	ProviderDev      = devsender.ProviderName
	ProviderResend   = resend.ProviderName
	ProviderPostmark = postmark.ProviderName
	ProviderBrevo    = brevo.ProviderName
)

// SourceConfig selects where templates and content documents live.
// For fs Dir is a local directory; for s3 and redis the sub-paths are
// appended to the bucket prefix or key prefix.
type SourceConfig struct {
	Kind          string                `env:"SOURCE_KIND" envDefault:"fs"`
	Dir           string                `env:"SOURCE_DIR" envDefault:"./assets"`
	TemplatesPath string                `env:"SOURCE_TEMPLATES_PATH" envDefault:"templates"`
	ContentPath   string                `env:"SOURCE_CONTENT_PATH" envDefault:"content"`
	ContentFormat mailer.DocumentFormat `env:"SOURCE_CONTENT_FORMAT" envDefault:"json"`
}

// AppConfig is the full service configuration, parsed from the environment.
type AppConfig struct {
	Provider string `env:"MAIL_PROVIDER" envDefault:"dev"`

	Server   server.Config
	Mailer   mailer.Config
	Source   SourceConfig
	Logger   logger.Config
	Sentry   logger.SentryConfig
	S3       storage.Config
	Redis    redis.Config
	Resend   resend.Config
	Postmark postmark.Config
	Brevo    brevo.Config
	Dev      devsender.Config
}
