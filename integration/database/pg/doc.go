// Package pg provides PostgreSQL connection pool initialization with
// retry and health checking, used by the backoffice for the Postgres
// session snapshot store.
//
//	cfg := pg.Config{ConnectionString: os.Getenv("PG_CONN_URL")}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store, err := session.NewPGStore(ctx, pool)
package pg
