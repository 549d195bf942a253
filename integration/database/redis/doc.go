// Package redis provides Redis client initialization with connection
// verification and retry, used by the backoffice for replicated session
// snapshot storage.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0"}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := session.NewRedisStore(client)
//
// Both redis:// and rediss:// (TLS) URL schemes are supported. Connect
// pings the server before returning, so a returned client is known good.
package redis
