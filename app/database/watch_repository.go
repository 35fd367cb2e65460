package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type WatchRepository struct {
	db *DB
}

func NewWatchRepository(db *DB) *WatchRepository {
	return &WatchRepository{db: db}
}

func (r *WatchRepository) Add(watch Watch) (string, error) {
	if watch.ID == "" {
		watch.ID = uuid.NewString()
	}

	_, err := r.db.Exec(`
		INSERT INTO watches (id, year, make, model, part, query_text)
		VALUES (?, ?, ?, ?, ?, ?)
	`, watch.ID, watch.Year, watch.Make, watch.Model, watch.Part, watch.QueryText)

	if err != nil {
		return "", fmt.Errorf("failed to add watch: %w", err)
	}

	return watch.ID, nil
}

func (r *WatchRepository) Get(id string) (*Watch, error) {
	row := r.db.QueryRow(`
		SELECT id, year, make, model, part, query_text,
		       best_price, last_price, last_checked_at, created_at
		FROM watches
		WHERE id = ?
	`, id)

	watch, err := scanWatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watch: %w", err)
	}

	return watch, nil
}

func (r *WatchRepository) List() ([]Watch, error) {
	rows, err := r.db.Query(`
		SELECT id, year, make, model, part, query_text,
		       best_price, last_price, last_checked_at, created_at
		FROM watches
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list watches: %w", err)
	}
	defer rows.Close()

	return collectWatches(rows)
}

// ListDue returns watches that were never checked or whose last check is
// older than maxAge.
func (r *WatchRepository) ListDue(maxAge time.Duration) ([]Watch, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	rows, err := r.db.Query(`
		SELECT id, year, make, model, part, query_text,
		       best_price, last_price, last_checked_at, created_at
		FROM watches
		WHERE last_checked_at IS NULL OR last_checked_at < ?
		ORDER BY created_at ASC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list due watches: %w", err)
	}
	defer rows.Close()

	return collectWatches(rows)
}

func (r *WatchRepository) Delete(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM watches WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete watch: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected > 0, nil
}

// UpdateCheckResult records the outcome of a watch refresh.
func (r *WatchRepository) UpdateCheckResult(id string, bestPrice, lastPrice float64, checkedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE watches
		SET best_price = ?, last_price = ?, last_checked_at = ?
		WHERE id = ?
	`, bestPrice, lastPrice, checkedAt.UTC(), id)

	if err != nil {
		return fmt.Errorf("failed to update check result: %w", err)
	}

	return nil
}

func (r *WatchRepository) InsertAlert(alert WatchAlert) (string, error) {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}

	_, err := r.db.Exec(`
		INSERT INTO watch_alerts (id, watch_id, listing_id, title, old_price, new_price, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, alert.ID, alert.WatchID, alert.ListingID, alert.Title,
		alert.OldPrice, alert.NewPrice, alert.Source)

	if err != nil {
		return "", fmt.Errorf("failed to insert alert: %w", err)
	}

	return alert.ID, nil
}

func (r *WatchRepository) ListAlerts(watchID string) ([]WatchAlert, error) {
	rows, err := r.db.Query(`
		SELECT id, watch_id, listing_id, title, old_price, new_price, source, created_at
		FROM watch_alerts
		WHERE watch_id = ?
		ORDER BY created_at DESC
	`, watchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []WatchAlert
	for rows.Next() {
		var alert WatchAlert
		err := rows.Scan(
			&alert.ID, &alert.WatchID, &alert.ListingID, &alert.Title,
			&alert.OldPrice, &alert.NewPrice, &alert.Source, &alert.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert rows: %w", err)
	}

	return alerts, nil
}

func (r *WatchRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM watches`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count watches: %w", err)
	}
	return count, nil
}

func scanWatch(row rowScanner) (*Watch, error) {
	var watch Watch
	err := row.Scan(
		&watch.ID, &watch.Year, &watch.Make, &watch.Model, &watch.Part,
		&watch.QueryText, &watch.BestPrice, &watch.LastPrice,
		&watch.LastCheckedAt, &watch.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

func collectWatches(rows *sql.Rows) ([]Watch, error) {
	var watches []Watch
	for rows.Next() {
		watch, err := scanWatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch row: %w", err)
		}
		watches = append(watches, *watch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watch rows: %w", err)
	}

	return watches, nil
}
