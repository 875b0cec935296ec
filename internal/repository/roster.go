package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nobet/nobet/pkg/model"
)

// RosterRecord is one stored roster. A (role, month_key) pair holds at
// most one record; saving again replaces it.
type RosterRecord struct {
	ID          uuid.UUID           `json:"id"`
	Role        string              `json:"role"`
	MonthKey    string              `json:"month_key"`
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	TotalSlots  int                 `json:"total_slots"`
	FilledSlots int                 `json:"filled_slots"`
	IssueCount  int                 `json:"issue_count"`
	Result      *model.RosterResult `json:"result"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// RosterRepository persists generated rosters in PostgreSQL. The full
// result travels as a JSONB payload.
type RosterRepository struct {
	db DB
}

// NewRosterRepository creates a roster repository.
func NewRosterRepository(db DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Save upserts a roster keyed on (role, month_key).
func (r *RosterRepository) Save(ctx context.Context, rec *RosterRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("encode roster payload: %w", err)
	}

	query := `
		INSERT INTO rosters (
			id, role, month_key, year, month,
			total_slots, filled_slots, issue_count, result, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (role, month_key) DO UPDATE SET
			year = EXCLUDED.year, month = EXCLUDED.month,
			total_slots = EXCLUDED.total_slots, filled_slots = EXCLUDED.filled_slots,
			issue_count = EXCLUDED.issue_count, result = EXCLUDED.result,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.Role, rec.MonthKey, rec.Year, rec.Month,
		rec.TotalSlots, rec.FilledSlots, rec.IssueCount, payload,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// Get returns the roster for (role, monthKey), nil when absent.
func (r *RosterRepository) Get(ctx context.Context, role, monthKey string) (*RosterRecord, error) {
	query := `
		SELECT id, role, month_key, year, month,
			total_slots, filled_slots, issue_count, result, created_at, updated_at
		FROM rosters
		WHERE role = $1 AND month_key = $2
	`
	return scanRoster(r.db.QueryRowContext(ctx, query, role, monthKey))
}

// List returns stored rosters matching the filter, newest first, plus
// the total match count.
func (r *RosterRepository) List(ctx context.Context, filter ListFilter) ([]*RosterRecord, int, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argNum))
		args = append(args, filter.Role)
		argNum++
	}
	if filter.MonthKey != "" {
		conditions = append(conditions, fmt.Sprintf("month_key = $%d", argNum))
		args = append(args, filter.MonthKey)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM rosters %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rosters: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, role, month_key, year, month,
			total_slots, filled_slots, issue_count, result, created_at, updated_at
		FROM rosters %s
		ORDER BY month_key DESC, role
		LIMIT $%d OFFSET $%d
	`, whereClause, argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rosters: %w", err)
	}
	defer rows.Close()

	var records []*RosterRecord
	for rows.Next() {
		rec, err := scanRosterRow(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// Delete removes the roster for (role, monthKey).
func (r *RosterRepository) Delete(ctx context.Context, role, monthKey string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM rosters WHERE role = $1 AND month_key = $2", role, monthKey)
	if err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	return nil
}

func scanRoster(row *sql.Row) (*RosterRecord, error) {
	rec := &RosterRecord{}
	var payload []byte

	err := row.Scan(
		&rec.ID, &rec.Role, &rec.MonthKey, &rec.Year, &rec.Month,
		&rec.TotalSlots, &rec.FilledSlots, &rec.IssueCount, &payload,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan roster: %w", err)
	}
	return decodeRoster(rec, payload)
}

func scanRosterRow(rows *sql.Rows) (*RosterRecord, error) {
	rec := &RosterRecord{}
	var payload []byte

	err := rows.Scan(
		&rec.ID, &rec.Role, &rec.MonthKey, &rec.Year, &rec.Month,
		&rec.TotalSlots, &rec.FilledSlots, &rec.IssueCount, &payload,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan roster: %w", err)
	}
	return decodeRoster(rec, payload)
}

func decodeRoster(rec *RosterRecord, payload []byte) (*RosterRecord, error) {
	if len(payload) > 0 {
		rec.Result = &model.RosterResult{}
		if err := json.Unmarshal(payload, rec.Result); err != nil {
			return nil, fmt.Errorf("decode roster payload: %w", err)
		}
	}
	return rec, nil
}
