package store

import (
	"database/sql"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

func (s *Store) GetAdminByEmail(email string) (*models.Admin, error) {
	query := `SELECT id, email, password_hash, name FROM admins WHERE email = ?`
	row := s.DB.QueryRow(query, email)

	var admin models.Admin
	if err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (s *Store) GetAdminByID(id string) (*models.Admin, error) {
	query := `SELECT id, email, password_hash, name FROM admins WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var admin models.Admin
	if err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// CreateAdmin expects PasswordHash to already be a bcrypt hash. Hashing
// happens at the call site so the contract is visible there, never inside
// the store.
func (s *Store) CreateAdmin(admin *models.Admin) error {
	query := `INSERT INTO admins (id, email, password_hash, name) VALUES (?, ?, ?, ?)`
	_, err := s.DB.Exec(query, admin.ID, admin.Email, admin.PasswordHash, admin.Name)
	return err
}

// UpdateAdminPassword replaces the stored hash. Callers only invoke this
// when the password actually changed; an unchanged hash is never re-hashed.
func (s *Store) UpdateAdminPassword(id, passwordHash string) (bool, error) {
	res, err := s.DB.Exec(`UPDATE admins SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
