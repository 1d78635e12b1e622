package main

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mailkit/pkg/health"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
	"github.com/dmitrymomot/mailkit/pkg/mailer/brevo"
	"github.com/dmitrymomot/mailkit/pkg/mailer/devsender"
	"github.com/dmitrymomot/mailkit/pkg/mailer/postmark"
	"github.com/dmitrymomot/mailkit/pkg/mailer/resend"
	"github.com/dmitrymomot/mailkit/pkg/redis"
	"github.com/dmitrymomot/mailkit/pkg/storage"
)

// store is a writable document backend used by publish.
type store interface {
	mailer.Source
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Names(ctx context.Context) ([]string, error)
}

// app holds everything built from AppConfig.
type app struct {
	mailer    *mailer.Mailer
	contents  *mailer.ContentRepository
	templates mailer.Source
	documents mailer.Source
	store     store
	checks    health.Checks
	hooks     []func(context.Context) error
	cfg       AppConfig
}

// newApp wires sources, the provider sender and the mailer.
// withSender is false for commands that never deliver.
func newApp(ctx context.Context, cfg AppConfig, log *slog.Logger, withSender bool) (*app, error) {
	a := &app{cfg: cfg, checks: health.Checks{}}

	if err := a.openSources(ctx, log); err != nil {
		return nil, err
	}

	var sender mailer.Sender
	if withSender {
		var err error
		if sender, err = newSender(cfg, log); err != nil {
			return nil, err
		}
	}

	a.contents = mailer.NewContentRepositoryWithConfig(a.documents, mailer.ContentRepositoryConfig{
		DefaultName: cfg.Mailer.ContentName,
		Format:      cfg.Source.ContentFormat,
	})
	composer := mailer.NewComposer(
		mailer.NewTemplateRepository(a.templates, cfg.Mailer.TemplateName),
		a.contents,
		cfg.Mailer,
		mailer.WithComposerLogger(log),
	)
	a.mailer = mailer.New(sender, composer, cfg.Mailer, mailer.WithLogger(log))

	templateName := cfg.Mailer.TemplateName
	if templateName == "" {
		templateName = mailer.DefaultTemplateName
	}
	a.checks["templates"] = health.SourceCheck(a.templates, templateName+".html")
	return a, nil
}

func (a *app) openSources(ctx context.Context, log *slog.Logger) error {
	src := a.cfg.Source

	switch src.Kind {
	case SourceFS, "":
		a.templates = mailer.NewDirSource(path.Join(src.Dir, src.TemplatesPath))
		a.documents = mailer.NewDirSource(path.Join(src.Dir, src.ContentPath))
		return nil

	case SourceS3:
		s, err := storage.New(a.cfg.S3)
		if err != nil {
			return fmt.Errorf("s3 source: %w", err)
		}
		a.store = s
		a.checks["s3"] = s.Healthcheck

	case SourceRedis:
		client, err := redis.Open(ctx, a.cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis source: %w", err)
		}
		a.store = redis.NewSource(client, a.cfg.Redis.KeyPrefix)
		a.checks["redis"] = redis.Healthcheck(client)
		a.hooks = append(a.hooks, redis.Shutdown(client))
		log.InfoContext(ctx, "redis connected", slog.String("addr", redisAddr(client)))

	default:
		return fmt.Errorf("unknown document source %q", src.Kind)
	}

	a.templates = subSource(a.store, src.TemplatesPath)
	a.documents = subSource(a.store, src.ContentPath)
	return nil
}

// close runs the shutdown hooks for commands that do not start the server.
func (a *app) close(ctx context.Context) {
	for _, hook := range a.hooks {
		_ = hook(ctx)
	}
}

// subSource reads names relative to dir inside src.
func subSource(src mailer.Source, dir string) mailer.Source {
	return mailer.SourceFunc(func(ctx context.Context, name string) ([]byte, error) {
		return src.Read(ctx, path.Join(dir, name))
	})
}

func redisAddr(client goredis.UniversalClient) string {
	if c, ok := client.(*goredis.Client); ok {
		return c.Options().Addr
	}
	return ""
}

// newSender builds the provider adapter named by cfg.Provider.
func newSender(cfg AppConfig, log *slog.Logger) (mailer.Sender, error) {
	switch cfg.Provider {
	case ProviderDev, "":
		return devsender.New(cfg.Dev, devsender.WithLogger(log)), nil
	case ProviderResend:
		return resend.New(cfg.Resend)
	case ProviderPostmark:
		return postmark.New(cfg.Postmark)
	case ProviderBrevo:
		return brevo.New(cfg.Brevo)
	default:
		return nil, fmt.Errorf("%w: %q", mailer.ErrUnknownProvider, cfg.Provider)
	}
}
