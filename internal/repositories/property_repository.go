package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayBack/internal/models"
)

type PropertyRepository struct {
	DB *sql.DB
}

const propertySelect = `
        SELECT p.id, p.user_id, p.name, p.description, p.status, p.accommodation_type,
               p.price, p.beds, p.bedroom, p.bathroom, p.guest_max, p.priority, p.rating,
               a.id, a.country, a.state, a.city, a.neighborhood, a.street,
               f.id, f.wifi, f.washing_machine, f.clothes_iron, f.towels,
               f.air_conditioning, f.refrigerator, f.heater,
               p.created_at, p.updated_at
        FROM properties p
        JOIN addresses a ON a.id = p.address_id
        JOIN facilities f ON f.id = p.facility_id
`

func scanProperty(row interface {
	Scan(dest ...interface{}) error
}) (models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status, &p.AccommodationType,
		&p.Price, &p.Beds, &p.Bedroom, &p.Bathroom, &p.GuestMax, &p.Priority, &p.Rating,
		&p.Address.ID, &p.Address.Country, &p.Address.State, &p.Address.City,
		&p.Address.Neighborhood, &p.Address.Street,
		&p.Facility.ID, &p.Facility.Wifi, &p.Facility.WashingMachine, &p.Facility.ClothesIron,
		&p.Facility.Towels, &p.Facility.AirConditioning, &p.Facility.Refrigerator, &p.Facility.Heater,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Property{}, err
	}
	p.RoundRating()
	return p, nil
}

// CreateProperty inserts the property together with its mandatory address and
// facility sub-records in one transaction.
func (r *PropertyRepository) CreateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Property{}, err
	}
	defer tx.Rollback()

	addrResult, err := tx.ExecContext(ctx,
		`INSERT INTO addresses (country, state, city, neighborhood, street) VALUES (?, ?, ?, ?, ?)`,
		p.Address.Country, p.Address.State, p.Address.City, p.Address.Neighborhood, p.Address.Street,
	)
	if err != nil {
		return models.Property{}, err
	}
	addrID, err := addrResult.LastInsertId()
	if err != nil {
		return models.Property{}, err
	}

	facResult, err := tx.ExecContext(ctx,
		`INSERT INTO facilities (wifi, washing_machine, clothes_iron, towels, air_conditioning, refrigerator, heater)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Facility.Wifi, p.Facility.WashingMachine, p.Facility.ClothesIron, p.Facility.Towels,
		p.Facility.AirConditioning, p.Facility.Refrigerator, p.Facility.Heater,
	)
	if err != nil {
		return models.Property{}, err
	}
	facID, err := facResult.LastInsertId()
	if err != nil {
		return models.Property{}, err
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO properties (user_id, address_id, facility_id, name, description, status,
                                 accommodation_type, price, beds, bedroom, bathroom, guest_max,
                                 priority, rating, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		p.UserID, addrID, facID, p.Name, p.Description, p.Status,
		p.AccommodationType, p.Price, p.Beds, p.Bedroom, p.Bathroom, p.GuestMax,
		p.Priority, now,
	)
	if err != nil {
		return models.Property{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Property{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Property{}, err
	}

	p.ID = int(id)
	p.Address.ID = int(addrID)
	p.Facility.ID = int(facID)
	p.Rating = 0
	p.RoundRating()
	p.CreatedAt = now
	return p, nil
}

func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id int) (models.Property, error) {
	row := r.DB.QueryRowContext(ctx, propertySelect+` WHERE p.id = ?`, id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Property{}, models.ErrPropertyNotFound
	}
	if err != nil {
		return models.Property{}, err
	}
	p.Photos, err = r.getPhotos(ctx, p.ID)
	if err != nil {
		return models.Property{}, err
	}
	return p, nil
}

func (r *PropertyRepository) queryProperties(ctx context.Context, query string, args ...interface{}) ([]models.Property, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) GetAllProperties(ctx context.Context) ([]models.Property, error) {
	return r.queryProperties(ctx, propertySelect+` ORDER BY p.created_at DESC`)
}

func (r *PropertyRepository) GetPropertiesByUserID(ctx context.Context, userID int) ([]models.Property, error) {
	return r.queryProperties(ctx, propertySelect+` WHERE p.user_id = ? ORDER BY p.created_at DESC`, userID)
}

// GetPropertiesByIDs loads properties in the order of the given ids, which is
// how search-index relevance ordering is preserved.
func (r *PropertyRepository) GetPropertiesByIDs(ctx context.Context, ids []int) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	properties, err := r.queryProperties(ctx,
		propertySelect+fmt.Sprintf(` WHERE p.id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}
	ordered := make([]models.Property, 0, len(properties))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// GetFeaturedProperties picks up to limit random priority properties and tops
// the list up with random active ones.
func (r *PropertyRepository) GetFeaturedProperties(ctx context.Context, limit int) ([]models.Property, error) {
	featured, err := r.queryProperties(ctx,
		propertySelect+` WHERE p.priority = true AND p.status = 'active' ORDER BY RAND() LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	missing := limit - len(featured)
	if missing <= 0 {
		return featured, nil
	}

	extra, err := r.queryProperties(ctx,
		propertySelect+` WHERE p.priority = false AND p.status = 'active' ORDER BY RAND() LIMIT ?`, missing)
	if err != nil {
		return nil, err
	}
	return append(featured, extra...), nil
}

// GetPropertiesByReservationStatus returns the properties of a user's
// reservations in the given status, feeding the trips buckets.
func (r *PropertyRepository) GetPropertiesByReservationStatus(ctx context.Context, userID int, status models.ReservationStatus) ([]models.Property, error) {
	query := propertySelect + `
        JOIN reservations r ON r.property_id = p.id
        WHERE r.user_id = ? AND r.status = ?
        ORDER BY r.checkin_date ASC`
	return r.queryProperties(ctx, query, userID, status)
}

func (r *PropertyRepository) GetWishlistProperties(ctx context.Context, userID int) ([]models.Property, error) {
	query := propertySelect + `
        JOIN wishlists w ON w.property_id = p.id
        WHERE w.user_id = ?
        ORDER BY w.created_at DESC`
	return r.queryProperties(ctx, query, userID)
}

func (r *PropertyRepository) UpdateProperty(ctx context.Context, p models.Property) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE properties SET name = ?, description = ?, status = ?, accommodation_type = ?,
                price = ?, beds = ?, bedroom = ?, bathroom = ?, guest_max = ?, priority = ?,
                updated_at = NOW()
         WHERE id = ?`,
		p.Name, p.Description, p.Status, p.AccommodationType,
		p.Price, p.Beds, p.Bedroom, p.Bathroom, p.GuestMax, p.Priority, p.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPropertyNotFound
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE addresses a JOIN properties p ON p.address_id = a.id
         SET a.country = ?, a.state = ?, a.city = ?, a.neighborhood = ?, a.street = ?
         WHERE p.id = ?`,
		p.Address.Country, p.Address.State, p.Address.City, p.Address.Neighborhood, p.Address.Street, p.ID,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE facilities f JOIN properties p ON p.facility_id = f.id
         SET f.wifi = ?, f.washing_machine = ?, f.clothes_iron = ?, f.towels = ?,
             f.air_conditioning = ?, f.refrigerator = ?, f.heater = ?
         WHERE p.id = ?`,
		p.Facility.Wifi, p.Facility.WashingMachine, p.Facility.ClothesIron, p.Facility.Towels,
		p.Facility.AirConditioning, p.Facility.Refrigerator, p.Facility.Heater, p.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PropertyRepository) DeleteProperty(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) AddPhoto(ctx context.Context, photo models.Photo) (models.Photo, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO photos (property_id, path, created_at) VALUES (?, ?, NOW())`,
		photo.PropertyID, photo.Path,
	)
	if err != nil {
		return models.Photo{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Photo{}, err
	}
	photo.ID = int(id)
	return photo, nil
}

func (r *PropertyRepository) getPhotos(ctx context.Context, propertyID int) ([]models.Photo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, property_id, path FROM photos WHERE property_id = ? ORDER BY id`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(&photo.ID, &photo.PropertyID, &photo.Path); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}
