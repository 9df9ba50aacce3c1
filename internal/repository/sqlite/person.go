package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/fallwatch/pkg/models"
)

func (r *SQLiteRepo) CreatePerson(ctx context.Context, p *models.Person) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("person is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO monitored_people (uid, fullname) VALUES (?, ?)`, p.UID, p.Fullname)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetPersonByID(ctx context.Context, personID int64) (*models.Person, error) {
	row := r.conn.QueryRow(ctx, `SELECT person_id, uid, fullname FROM monitored_people WHERE person_id = ?`, personID)
	var p models.Person
	if err := row.Scan(&p.PersonID, &p.UID, &p.Fullname); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &p, nil
}

// FindPersonByFullname takes the lowest person_id when several people share
// a fullname; the schema does not declare fullname unique.
func (r *SQLiteRepo) FindPersonByFullname(ctx context.Context, fullname string) (*models.Person, error) {
	row := r.conn.QueryRow(ctx, `SELECT person_id, uid, fullname FROM monitored_people WHERE fullname = ? ORDER BY person_id LIMIT 1`, fullname)
	var p models.Person
	if err := row.Scan(&p.PersonID, &p.UID, &p.Fullname); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &p, nil
}
