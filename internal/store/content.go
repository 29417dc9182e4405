package store

import (
	"database/sql"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

// ContentReader is the read surface the public site needs. The sqlite
// Store implements it against the database; Fallback implements it with
// canned data for when the database is unreachable. Invoice and client
// writes deliberately have no equivalent interface — they depend on the
// concrete *Store so the fallback can never be injected there.
type ContentReader interface {
	GetAllPerformances() ([]models.Performance, error)
	GetAllTestimonials() ([]models.Testimonial, error)
}

func (s *Store) GetAllPerformances() ([]models.Performance, error) {
	query := `SELECT id, title, venue, date, description, status, created_at FROM performances ORDER BY date DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performances []models.Performance
	for rows.Next() {
		var p models.Performance
		if err := rows.Scan(&p.ID, &p.Title, &p.Venue, &p.Date, &p.Description, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		performances = append(performances, p)
	}
	return performances, rows.Err()
}

func (s *Store) CreatePerformance(p *models.Performance) error {
	query := `
		INSERT INTO performances (id, title, venue, date, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.DB.Exec(query, p.ID, p.Title, p.Venue, p.Date, p.Description, p.Status, p.CreatedAt)
	return err
}

func (s *Store) GetPerformanceByID(id string) (*models.Performance, error) {
	query := `SELECT id, title, venue, date, description, status, created_at FROM performances WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var p models.Performance
	if err := row.Scan(&p.ID, &p.Title, &p.Venue, &p.Date, &p.Description, &p.Status, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdatePerformance(p *models.Performance) (bool, error) {
	query := `UPDATE performances SET title = ?, venue = ?, date = ?, description = ?, status = ? WHERE id = ?`
	res, err := s.DB.Exec(query, p.Title, p.Venue, p.Date, p.Description, p.Status, p.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) DeletePerformance(id string) (bool, error) {
	res, err := s.DB.Exec(`DELETE FROM performances WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetAllTestimonials() ([]models.Testimonial, error) {
	query := `SELECT id, author, quote, event, created_at FROM testimonials ORDER BY created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Quote, &t.Event, &t.CreatedAt); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (s *Store) CreateContactLead(l *models.ContactLead) error {
	query := `INSERT INTO contact_leads (id, name, email, message, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := s.DB.Exec(query, l.ID, l.Name, l.Email, l.Message, l.CreatedAt)
	return err
}

func (s *Store) CreateMedia(m *models.Media) error {
	query := `INSERT INTO media (id, filename, url, created_at) VALUES (?, ?, ?, ?)`
	_, err := s.DB.Exec(query, m.ID, m.Filename, m.URL, m.CreatedAt)
	return err
}
