// Package httpserver runs an http.Handler with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is done, on SIGINT or SIGTERM, or after Shutdown. In
// each case in-flight requests are drained for at most the shutdown timeout.
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
