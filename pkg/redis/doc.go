// Package redis connects to Redis and exposes it as an email document source.
//
// Open parses a redis:// or rediss:// URL, applies pool settings from Config
// and pings the server, retrying with linear backoff:
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Source stores templates and content documents as string values under a key
// prefix and satisfies mailer.Source:
//
//	src := redis.NewSource(client, "mailkit:")
//	templates := mailer.NewTemplateRepository(src, "")
//
// Healthcheck and Shutdown plug the client into readiness probes and the
// server's shutdown hooks.
package redis
