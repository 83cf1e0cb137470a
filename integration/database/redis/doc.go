// Package redis provides Redis client initialization and health checking.
//
// Connect parses a redis:// or rediss:// URL, retries the initial ping with
// exponential backoff and returns a ready client:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck returns a check suitable for readiness endpoints:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//		// errors.Is(err, redis.ErrHealthcheckFailed)
//	}
//
// Errors returned by this package wrap one of ErrFailedToParseRedisConnString,
// ErrRedisNotReady, ErrEmptyConnectionURL or ErrHealthcheckFailed.
package redis
