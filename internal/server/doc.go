// Package server runs the HTTP listener of the back office.
//
// A request passes through the middlewares in registration order before it
// reaches a handler of the /api/v1 group:
//
//	client ──► RequestID ──► Logger ──► RecoveryWithZap ──► /api/v1/... handler
//	             │              │              │
//	             │              │              └─ panic: stack logged, 500
//	             │              └─ "http" logger: start at debug, end at info
//	             │                 (error level when the handler set errors)
//	             └─ X-Request-Id: client ULID kept, otherwise a new one
//
// Unknown routes answer 404 with {"error": "no route for <METHOD> <path>"}.
//
// Gin runs in debug mode for server mode "dev" and release mode for "prod".
// Any other mode is rejected by NewServer.
//
// # Lifecycle
//
// Start blocks until the listener fails or Stop is called, in which case it
// returns nil. Request contexts derive from the context given to Start, so
// cancelling it reaches handlers and the queries they run.
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, h)
//	})
//	errCh := make(chan error, 1)
//	go func() { errCh <- srv.Start(ctx) }()
//
//	select {
//	case err := <-errCh:
//	    return err
//	case <-ctx.Done():
//	}
//	return srv.Stop(shutdownCtx)
//
// Stop waits for in-flight requests until shutdownCtx is done.
//
// Handler exposes the engine without a listener, for httptest.
package server
