package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type FavoriteRepository struct {
	db *DB
}

func NewFavoriteRepository(db *DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add stores a favorite. Saving a listing that is already a favorite
// refreshes its snapshot instead of failing, since the derived listing id is
// shared by design between near-identical listings.
func (r *FavoriteRepository) Add(favorite Favorite) (string, error) {
	if favorite.ID == "" {
		favorite.ID = uuid.NewString()
	}

	_, err := r.db.Exec(`
		INSERT INTO favorites (
			id, listing_id, title, brand, part_type, condition,
			price, shipping, image, link, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (listing_id) DO UPDATE SET
			title = excluded.title,
			brand = excluded.brand,
			part_type = excluded.part_type,
			condition = excluded.condition,
			price = excluded.price,
			shipping = excluded.shipping,
			image = excluded.image,
			link = excluded.link,
			source = excluded.source
	`, favorite.ID, favorite.ListingID, favorite.Title, favorite.Brand,
		favorite.PartType, favorite.Condition, favorite.Price, favorite.Shipping,
		favorite.Image, favorite.Link, favorite.Source)

	if err != nil {
		return "", fmt.Errorf("failed to add favorite: %w", err)
	}

	return favorite.ID, nil
}

func (r *FavoriteRepository) GetByListingID(listingID string) (*Favorite, error) {
	row := r.db.QueryRow(`
		SELECT id, listing_id, title, brand, part_type, condition,
		       price, shipping, image, link, source,
		       description, description_status, created_at
		FROM favorites
		WHERE listing_id = ?
	`, listingID)

	favorite, err := scanFavorite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return favorite, nil
}

func (r *FavoriteRepository) List() ([]Favorite, error) {
	rows, err := r.db.Query(`
		SELECT id, listing_id, title, brand, part_type, condition,
		       price, shipping, image, link, source,
		       description, description_status, created_at
		FROM favorites
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites = append(favorites, *favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	return favorites, nil
}

func (r *FavoriteRepository) Remove(listingID string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM favorites WHERE listing_id = ?`, listingID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *FavoriteRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM favorites`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// GetPendingDescriptions returns favorites whose listing page has not yet
// been fetched for a description.
func (r *FavoriteRepository) GetPendingDescriptions(limit int) ([]Favorite, error) {
	rows, err := r.db.Query(`
		SELECT id, listing_id, title, brand, part_type, condition,
		       price, shipping, image, link, source,
		       description, description_status, created_at
		FROM favorites
		WHERE description_status = 'pending'
		ORDER BY created_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending descriptions: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites = append(favorites, *favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	return favorites, nil
}

func (r *FavoriteRepository) UpdateDescription(id, description, status string) error {
	_, err := r.db.Exec(`
		UPDATE favorites
		SET description = ?, description_status = ?
		WHERE id = ?
	`, description, status, id)

	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFavorite(row rowScanner) (*Favorite, error) {
	var favorite Favorite
	err := row.Scan(
		&favorite.ID, &favorite.ListingID, &favorite.Title, &favorite.Brand,
		&favorite.PartType, &favorite.Condition, &favorite.Price,
		&favorite.Shipping, &favorite.Image, &favorite.Link, &favorite.Source,
		&favorite.Description, &favorite.DescriptionStatus, &favorite.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}
