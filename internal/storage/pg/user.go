package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
)

func (s *Storage) CreateUser(displayName, email, passHash string) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	INSERT INTO users(id, display_name, email, password_hash, created_at)
	VALUES($1, $2, $3, $4, $5)
	RETURNING id, display_name, email, password_hash, bio, created_at`,
		uuid.New(), displayName, email, passHash, nowTs(),
	).Scan(&user.Id, &user.DisplayName, &user.Email, &user.PassHash, &user.Bio, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			msg := "Email already taken"
			if strings.Contains(pqErr.Constraint, "display_name") {
				msg = "Display name already taken"
			}
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.user("email", email)
}

func (s *Storage) UserByDisplayName(displayName string) (domain.User, error) {
	return s.user("display_name", displayName)
}

func (s *Storage) UserById(id uuid.UUID) (domain.User, error) {
	return s.user("id", id)
}

// UserByDisplayNameFold looks up a user ignoring display name case.
// display_name stays unique case-sensitively, so at most one row folds.
func (s *Storage) UserByDisplayNameFold(displayName string) (domain.User, error) {
	return s.user("lower(display_name)", strings.ToLower(displayName))
}

// user fetches a single user row by one of the unique columns. The column
// expression comes from a fixed call-site set, never from input.
func (s *Storage) user(column string, value interface{}) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(fmt.Sprintf(`
	SELECT id, display_name, email, password_hash, bio, created_at
	FROM users
	WHERE %s = $1`, column), value,
	).Scan(&user.Id, &user.DisplayName, &user.Email, &user.PassHash, &user.Bio, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// SearchUsers matches display names containing q, case-insensitively,
// ordered by display name. ILIKE metacharacters in q are escaped so they
// match literally.
func (s *Storage) SearchUsers(q string, limit int) ([]domain.UserSummary, error) {
	pattern := "%" + escapeLike(q) + "%"
	rows, err := s.db.Query(`
	SELECT id, display_name
	FROM users
	WHERE display_name ILIKE $1
	ORDER BY display_name ASC
	LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := []domain.UserSummary{}
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.Id, &u.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (s *Storage) UpdateUserBio(userId uuid.UUID, bio string) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	UPDATE users
	SET bio = $2
	WHERE id = $1
	RETURNING id, display_name, email, password_hash, bio, created_at`,
		userId, bio,
	).Scan(&user.Id, &user.DisplayName, &user.Email, &user.PassHash, &user.Bio, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to update user bio: %w", err)
	}
	return user, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
