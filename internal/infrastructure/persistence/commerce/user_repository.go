package commerce

import (
	"database/sql"
	"fmt"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

const userColumns = "id, name, email, photo, gender, role, dob, created_at, updated_at"

type UserRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewUserRepository(db *sql.DB, logger *logging.ChanneledLogger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row interface{ Scan(...any) error }) (*commerce.User, error) {
	var u commerce.User
	var photo sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &photo, &u.Gender, &u.Role, &u.DOB, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Photo = photo.String
	return &u, nil
}

func (r *UserRepository) FindByID(id string) (*commerce.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) FindAll() ([]*commerce.User, error) {
	rows, err := r.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) FindCreatedBetween(tr repositories.TimeRange) ([]*commerce.User, error) {
	rows, err := r.db.Query("SELECT "+userColumns+" FROM users WHERE created_at >= ? AND created_at <= ?",
		tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by time range: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) CountAll() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) CountByGender(gender string) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE gender = ?", gender).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users by gender: %w", err)
	}
	return count, nil
}

func (r *UserRepository) CountByRole(role string) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = ?", role).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

// Store upserts: the auth provider owns user identity, so a repeat sign-in
// refreshes the profile row in place.
func (r *UserRepository) Store(user *commerce.User) error {
	_, err := r.db.Exec(`INSERT INTO users (id, name, email, photo, gender, role, dob, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			photo = excluded.photo,
			gender = excluded.gender,
			dob = excluded.dob,
			updated_at = excluded.updated_at`,
		user.ID, user.Name, user.Email, user.Photo, user.Gender, user.Role,
		user.DOB, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store user %s: %w", user.ID, err)
	}

	if r.logger != nil {
		r.logger.Database().Debug("User stored", "id", user.ID)
	}
	return nil
}

func (r *UserRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

func collectUsers(rows *sql.Rows) ([]*commerce.User, error) {
	var users []*commerce.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
