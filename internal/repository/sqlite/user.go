package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/fallwatch/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (pass, username) VALUES (?, ?)`, u.Pass, u.Username)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT uid, pass, username FROM users WHERE username = ?`, username)
	var u models.User
	if err := row.Scan(&u.UID, &u.Pass, &u.Username); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}
