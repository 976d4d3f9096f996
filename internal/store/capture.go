package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Capture represents one saved makeover photo and the selections behind it.
type Capture struct {
	ID               string
	FilePath         string
	BackgroundID     string
	ClothingCategory string
	ClothingItem     int
	AccessoryType    string
	AccessoryItem    int
	CreatedAt        time.Time
}

// CaptureRepository provides CRUD operations for captures.
type CaptureRepository struct {
	db *sql.DB
}

// Captures returns the capture repository for this store.
func (s *Store) Captures() *CaptureRepository {
	return &CaptureRepository{db: s.db}
}

// Create inserts a new capture record into the database.
func (r *CaptureRepository) Create(c *Capture) error {
	c.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO captures (id, file_path, background_id, clothing_category,
		 clothing_item, accessory_type, accessory_item, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FilePath, c.BackgroundID, c.ClothingCategory,
		c.ClothingItem, c.AccessoryType, c.AccessoryItem, c.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a capture by its ID.
func (r *CaptureRepository) GetByID(id string) (*Capture, error) {
	c := &Capture{}

	err := r.db.QueryRow(
		`SELECT id, file_path, background_id, clothing_category,
		 clothing_item, accessory_type, accessory_item, created_at
		 FROM captures WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.FilePath, &c.BackgroundID, &c.ClothingCategory,
		&c.ClothingItem, &c.AccessoryType, &c.AccessoryItem, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// List retrieves all captures, newest first.
func (r *CaptureRepository) List() ([]*Capture, error) {
	rows, err := r.db.Query(
		`SELECT id, file_path, background_id, clothing_category,
		 clothing_item, accessory_type, accessory_item, created_at
		 FROM captures ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*Capture
	for rows.Next() {
		c := &Capture{}

		err := rows.Scan(&c.ID, &c.FilePath, &c.BackgroundID, &c.ClothingCategory,
			&c.ClothingItem, &c.AccessoryType, &c.AccessoryItem, &c.CreatedAt)
		if err != nil {
			return nil, err
		}

		captures = append(captures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return captures, nil
}

// Delete removes a capture record from the database by its ID.
// The photo file itself is left on disk.
func (r *CaptureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM captures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
