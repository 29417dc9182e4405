package store

import (
	"database/sql"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

func (s *Store) CreateClient(c *models.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone, company, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.DB.Exec(query, c.ID, c.Name, c.Email, c.Phone, c.Company, c.Notes, c.CreatedAt)
	return err
}

func (s *Store) GetClientByID(id string) (*models.Client, error) {
	query := `SELECT id, name, email, phone, company, notes, created_at FROM clients WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var c models.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetAllClients() ([]models.Client, error) {
	query := `SELECT id, name, email, phone, company, notes, created_at FROM clients ORDER BY created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) UpdateClient(c *models.Client) (bool, error) {
	query := `UPDATE clients SET name = ?, email = ?, phone = ?, company = ?, notes = ? WHERE id = ?`
	res, err := s.DB.Exec(query, c.Name, c.Email, c.Phone, c.Company, c.Notes, c.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) DeleteClient(id string) (bool, error) {
	res, err := s.DB.Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
