package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists the session snapshot in a single-row Postgres table,
// for deployments that already operate Postgres and want the snapshot
// under the same backup regime as everything else.
type PGStore struct {
	pool  *pgxpool.Pool
	table string
}

// PGStoreOption configures a PGStore.
type PGStoreOption func(*PGStore)

// WithPGTable overrides the table name.
func WithPGTable(table string) PGStoreOption {
	return func(s *PGStore) {
		if table != "" {
			s.table = table
		}
	}
}

// NewPGStore creates a store backed by the pool and ensures the snapshot
// table exists.
func NewPGStore(ctx context.Context, pool *pgxpool.Pool, opts ...PGStoreOption) (*PGStore, error) {
	s := &PGStore{pool: pool, table: "backoffice_session"}
	for _, opt := range opts {
		opt(s)
	}

	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+s.table+` (
		id smallint PRIMARY KEY,
		snapshot jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PGStore) Load(ctx context.Context) (Session, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT snapshot FROM `+s.table+` WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, errors.Join(ErrCorruptSnapshot, err)
	}
	return sess, nil
}

func (s *PGStore) Save(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO `+s.table+` (id, snapshot, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`, raw)
	return err
}

func (s *PGStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM `+s.table+` WHERE id = 1`)
	return err
}
