package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/mtlprog/taskboard/internal/domain"
)

// Storage keys for the four logical records.
const (
	KeyUser     = "taskboard_user"
	KeyTasks    = "taskboard_tasks"
	KeyActivity = "taskboard_activity"
	KeyRemember = "taskboard_remember"
)

// qb is the shared Squirrel statement builder; SQLite uses question
// mark placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Gateway is the key-value persistence layer for the board's logical
// records. Reads tolerate missing or corrupt data by returning empty
// defaults; callers treat write failures as best-effort because the
// in-memory state stays authoritative for the session.
type Gateway struct {
	db *sql.DB
}

// NewGateway creates a Gateway on top of an open database.
func NewGateway(db *DB) *Gateway {
	return &Gateway{db: db.Handle()}
}

// get returns the raw value for key, reporting absence separately from
// failure.
func (g *Gateway) get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := qb.
		Select("value").
		From("records").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build get query for %s: %w", key, err)
	}

	var value string
	err = g.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read record %s: %w", key, err)
	}
	return value, true, nil
}

// put upserts the value for key.
func (g *Gateway) put(ctx context.Context, key, value string) error {
	query, args, err := qb.
		Insert("records").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put query for %s: %w", key, err)
	}

	if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write record %s: %w", key, err)
	}
	return nil
}

// remove deletes the record for key. A missing record is not an error.
func (g *Gateway) remove(ctx context.Context, key string) error {
	query, args, err := qb.
		Delete("records").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query for %s: %w", key, err)
	}

	if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	return nil
}

// LoadTasks returns the persisted task collection, or an empty
// collection when the record is missing or unreadable.
func (g *Gateway) LoadTasks(ctx context.Context) []domain.Task {
	raw, ok, err := g.get(ctx, KeyTasks)
	if err != nil {
		slog.Warn("task record unreadable, starting empty", "error", err)
		return []domain.Task{}
	}
	if !ok {
		return []domain.Task{}
	}

	var tasks []domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		slog.Warn("task record corrupt, starting empty", "error", err)
		return []domain.Task{}
	}
	return tasks
}

// SaveTasks writes the whole task collection through to storage.
func (g *Gateway) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return g.put(ctx, KeyTasks, string(raw))
}

// LoadActivity returns the persisted activity log (newest first), or
// an empty log when the record is missing or unreadable.
func (g *Gateway) LoadActivity(ctx context.Context) []domain.ActivityEntry {
	raw, ok, err := g.get(ctx, KeyActivity)
	if err != nil {
		slog.Warn("activity record unreadable, starting empty", "error", err)
		return []domain.ActivityEntry{}
	}
	if !ok {
		return []domain.ActivityEntry{}
	}

	var entries []domain.ActivityEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("activity record corrupt, starting empty", "error", err)
		return []domain.ActivityEntry{}
	}
	return entries
}

// SaveActivity writes the whole activity log through to storage.
func (g *Gateway) SaveActivity(ctx context.Context, entries []domain.ActivityEntry) error {
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	return g.put(ctx, KeyActivity, string(raw))
}

// LoadUser returns the saved user, or nil when absent or unreadable.
func (g *Gateway) LoadUser(ctx context.Context) *domain.User {
	raw, ok, err := g.get(ctx, KeyUser)
	if err != nil {
		slog.Warn("user record unreadable", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Warn("user record corrupt", "error", err)
		return nil
	}
	return &user
}

// SaveUser persists the logged-in user.
func (g *Gateway) SaveUser(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return g.put(ctx, KeyUser, string(raw))
}

// RemoveUser deletes the saved user record.
func (g *Gateway) RemoveUser(ctx context.Context) error {
	return g.remove(ctx, KeyUser)
}

// RememberMe returns the persisted remember-me flag, false by default.
func (g *Gateway) RememberMe(ctx context.Context) bool {
	raw, ok, err := g.get(ctx, KeyRemember)
	if err != nil {
		slog.Warn("remember-me record unreadable", "error", err)
		return false
	}
	return ok && raw == "true"
}

// SetRememberMe persists the remember-me flag.
func (g *Gateway) SetRememberMe(ctx context.Context, value bool) error {
	if value {
		return g.put(ctx, KeyRemember, "true")
	}
	return g.put(ctx, KeyRemember, "false")
}

// ClearBoard removes the task and activity records. The user and
// remember-me records survive a board reset.
func (g *Gateway) ClearBoard(ctx context.Context) error {
	if err := g.remove(ctx, KeyTasks); err != nil {
		return err
	}
	return g.remove(ctx, KeyActivity)
}
