package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// NewPool creates a new PostgreSQL connection pool
func NewPool(connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	config.MaxConns = int32(maxConns)
	config.MinConns = DefaultMinConnections
	config.MaxConnLifetime = maxLife
	config.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase)
	return pool, nil
}

// Store implements the document store over per-collection JSONB tables.
// Each table holds (id TEXT PRIMARY KEY, data JSONB); filters compare
// against extracted JSON fields.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given connection pool
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var (
	tables = func() map[string]struct{} {
		m := make(map[string]struct{}, len(store.Collections))
		for _, c := range store.Collections {
			m[c] = struct{}{}
		}
		return m
	}()

	fieldPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

	sqlOps = map[string]string{
		store.OpEqual:          "=",
		store.OpNotEqual:       "<>",
		store.OpGreaterThan:    ">",
		store.OpGreaterOrEqual: ">=",
		store.OpLessThan:       "<",
		store.OpLessOrEqual:    "<=",
	}
)

// tableFor validates the collection name before it is spliced into SQL
func tableFor(collection string) (string, error) {
	if _, ok := tables[collection]; !ok {
		return "", fmt.Errorf("%s: %q", ErrMsgUnknownCollection, collection)
	}
	return collection, nil
}

// Create writes a document, generating a UUID when id is empty
func (s *Store) Create(ctx context.Context, collection string, data map[string]any, id string) (string, error) {
	table, err := tableFor(collection)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	if id == "" {
		id = uuid.NewString()
	}

	_, err = s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2::jsonb)
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, table),
		id, string(raw),
	)
	if err != nil {
		return "", fmt.Errorf("failed to write document %s/%s: %w", collection, id, err)
	}
	return id, nil
}

// Get returns the document data or domain.ErrNotFound
func (s *Store) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, table), id,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s/%s: %w", collection, id, err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s/%s: %w", collection, id, err)
	}
	return data, nil
}

// Update merges partial into an existing document via jsonb concatenation
func (s *Store) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to marshal partial document: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET data = data || $2::jsonb WHERE id = $1`, table),
		id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a document
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Query returns all documents where field op value holds
func (s *Store) Query(ctx context.Context, collection, field, op string, value any) ([]store.Document, error) {
	return s.QueryMulti(ctx, collection, []store.Filter{{Field: field, Op: op, Value: value}})
}

// QueryMulti returns all documents matching every filter, sorted by ID
func (s *Store) QueryMulti(ctx context.Context, collection string, filters []store.Filter) ([]store.Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	var (
		clauses []string
		args    []any
	)
	for _, f := range filters {
		clause, arg, err := buildClause(f, len(args)+1)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, arg)
	}

	query := fmt.Sprintf(`SELECT id, data FROM %s`, table)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var results []store.Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document %s/%s: %w", collection, id, err)
		}
		results = append(results, store.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", collection, err)
	}
	return results, nil
}

// buildClause turns one filter into a SQL predicate. The JSON value is
// extracted as text and cast according to the filter value's Go type, so
// numbers compare numerically and timestamps (RFC3339 strings) compare
// chronologically.
func buildClause(f store.Filter, argIdx int) (string, any, error) {
	if !fieldPattern.MatchString(f.Field) {
		return "", nil, fmt.Errorf("%s: %q", ErrMsgInvalidField, f.Field)
	}
	sqlOp, ok := sqlOps[f.Op]
	if !ok {
		return "", nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedOperator, f.Op)
	}

	switch v := f.Value.(type) {
	case int, int32, int64, float32, float64:
		return fmt.Sprintf("(data->>'%s')::numeric %s $%d", f.Field, sqlOp, argIdx), v, nil
	case bool:
		return fmt.Sprintf("(data->>'%s')::boolean %s $%d", f.Field, sqlOp, argIdx), v, nil
	case string:
		return fmt.Sprintf("data->>'%s' %s $%d", f.Field, sqlOp, argIdx), v, nil
	case time.Time:
		return fmt.Sprintf("data->>'%s' %s $%d", f.Field, sqlOp, argIdx), v.UTC().Format(time.RFC3339Nano), nil
	default:
		return "", nil, fmt.Errorf("%s: %T", ErrMsgUnsupportedValue, f.Value)
	}
}

// Ping reports whether the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Ensure Store implements the contract at compile time
var _ store.Store = (*Store)(nil)
