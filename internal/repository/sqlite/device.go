package sqlite

import (
	"context"
	"database/sql"

	"github.com/garnizeh/fallwatch/pkg/models"
)

// EnsureDevice inserts the device row for personID with zeroed counters
// unless one already exists. The conditional insert runs as one statement so
// the existence check and the insert happen inside the engine's write path.
func (r *SQLiteRepo) EnsureDevice(ctx context.Context, personID int64) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO devices (person_id, falls_real, falls_cancelled)
		SELECT ?, 0, 0
		WHERE NOT EXISTS (SELECT 1 FROM devices WHERE person_id = ?)`,
		personID, personID)
	return err
}

// IncrementFallCounts adds to both counters and stamps last_logged with the
// current unix time. Matching zero rows is not an error: the device endpoint
// reports success regardless.
func (r *SQLiteRepo) IncrementFallCounts(ctx context.Context, personID, fallsR, fallsC int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE devices SET falls_real = falls_real + ?, falls_cancelled = falls_cancelled + ?, last_logged = ? WHERE person_id = ?`,
		fallsR, fallsC, now(), personID)
	return err
}

func (r *SQLiteRepo) SetPhoneNumber(ctx context.Context, personID int64, phoneNr string) error {
	_, err := r.conn.Exec(ctx, `UPDATE devices SET phone_nr = ? WHERE person_id = ?`, phoneNr, personID)
	return err
}

func (r *SQLiteRepo) SetTimeout(ctx context.Context, personID, timeout int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE devices SET timeout = ? WHERE person_id = ?`, timeout, personID)
	return err
}

func (r *SQLiteRepo) GetDeviceConfig(ctx context.Context, personID int64) (*models.DeviceConfig, error) {
	row := r.conn.QueryRow(ctx, `SELECT phone_nr, timeout FROM devices WHERE person_id = ?`, personID)
	var c models.DeviceConfig
	if err := row.Scan(&c.PhoneNr, &c.Timeout); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}

// GetDeviceStatus substitutes column defaults for nulls so the web UI always
// gets renderable values.
func (r *SQLiteRepo) GetDeviceStatus(ctx context.Context, personID int64) (*models.DeviceStatus, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT
			IFNULL(phone_nr, '') AS phone_nr,
			IFNULL(timeout, 10) AS timeout,
			IFNULL(falls_real, 0) AS falls_real,
			IFNULL(falls_cancelled, 0) AS falls_cancelled
		FROM devices
		WHERE person_id = ?`, personID)
	var s models.DeviceStatus
	if err := row.Scan(&s.PhoneNr, &s.Timeout, &s.FallsReal, &s.FallsCancelled); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

// GetSyncStatus defaults null counters to 0 but leaves last_logged null when
// the device never logged.
func (r *SQLiteRepo) GetSyncStatus(ctx context.Context, personID int64) (*models.SyncStatus, error) {
	row := r.conn.QueryRow(ctx, `SELECT IFNULL(falls_real, 0), IFNULL(falls_cancelled, 0), last_logged FROM devices WHERE person_id = ?`, personID)
	var s models.SyncStatus
	if err := row.Scan(&s.FallsReal, &s.FallsCancelled, &s.LastLogged); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}
