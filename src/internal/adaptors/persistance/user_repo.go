package persistance

import (
	"database/sql"
	"fmt"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/lib/pq"
)

type UserRepo struct {
	db *Database
}

func NewUserRepo(d *Database) UserRepo {
	return UserRepo{db: d}
}

func (ur *UserRepo) CreateUser(user *core.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := ur.db.db.Exec(query, user.ID, user.Username, user.Email, user.Password, user.Role, user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: username or email already taken", core.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %v", err)
	}
	return nil
}

func (ur *UserRepo) GetUserByUsername(username string) (*core.User, error) {
	query := `SELECT id, username, email, password_hash, role, created_at FROM users WHERE username = $1`
	return ur.getUser(query, username)
}

func (ur *UserRepo) GetUserByID(id string) (*core.User, error) {
	query := `SELECT id, username, email, password_hash, role, created_at FROM users WHERE id = $1`
	return ur.getUser(query, id)
}

func (ur *UserRepo) getUser(query string, arg interface{}) (*core.User, error) {
	var user core.User
	err := ur.db.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: user", core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}
