// Package server wraps http.Server with graceful shutdown and functional options.
//
// Basic usage:
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	if err := g.Wait(); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Configuration can also be loaded from the environment:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg)
//
// Stop lets in-flight requests finish within the shutdown timeout. Request
// contexts are canceled once the timeout expires, so handlers still waiting on
// asynchronous work observe the shutdown instead of holding it open.
package server
