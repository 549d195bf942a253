// Package session holds the authentication credential and profile snapshot
// for the backoffice operator.
//
// The Manager is the single owner of the in-memory session. Its lifecycle
// is deliberately small: seeded once from durable storage at startup,
// replaced wholesale on successful login, cleared wholesale on logout.
// There are no partial updates, and no code outside the two mutation
// operations may change session state.
//
//	store := session.NewFileStore("/var/lib/backoffice/session.json")
//	sessions, err := session.NewManager(ctx, store)
//	if err != nil {
//		return err
//	}
//
//	// after a successful login upstream:
//	err = sessions.SetCredentials(ctx, session.Session{
//		Token: res.AccessToken,
//		User:  &session.User{ID: res.User.ID, Email: res.User.Email},
//	})
//
//	// wire the credential into outgoing requests:
//	api := apiclient.New(baseURL, apiclient.WithTokenSource(sessions.Token))
//
// Both mutations persist to the Store before updating memory; if the write
// fails, memory is untouched. Durable storage is therefore the source of
// truth at cold start, and a crash between persist and memory update costs
// at most one in-memory step.
//
// Store implementations: MemoryStore (tests), FileStore (JSON file with
// atomic rename, the default), RedisStore, and PGStore for replicated
// deployments.
package session
