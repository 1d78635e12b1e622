// Package health provides liveness and readiness HTTP handlers.
//
// LivenessHandler always answers OK while the process runs. ReadinessHandler
// runs a set of named Checks in parallel under a shared timeout and answers
// 503 when any of them fails:
//
//	r.Get("/healthz", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(health.Checks{
//		"templates": health.SourceCheck(templates, "template.html"),
//		"redis":     redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json, in which case every check is
// reported:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
