package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cinegate/model"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDuplicateUsername and ErrDuplicateEmail identify which unique
	// constraint a registration collided with.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user *model.User) (int64, error)
	GetUserByID(id int64) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
}

// mysqlUserRepository implements UserRepository for MySQL.
type mysqlUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new mysqlUserRepository.
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

// CreateUser adds a new user to the database. A unique-constraint violation
// is classified as ErrDuplicateUsername or ErrDuplicateEmail by the name of
// the violated constraint.
func (r *mysqlUserRepository) CreateUser(user *model.User) (int64, error) {
	query := "INSERT INTO users (username, email, password_hash, phone) VALUES (?, ?, ?, ?)"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare create user statement: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(user.Username, user.Email, user.PasswordHash, user.Phone)
	if err != nil {
		if dupErr := classifyDuplicate(err); dupErr != nil {
			return 0, dupErr
		}
		return 0, fmt.Errorf("failed to execute create user statement: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// classifyDuplicate maps a MySQL duplicate-entry error (1062) onto the
// violated constraint. The constraints are named in the schema precisely so
// this doesn't have to guess from column values.
func classifyDuplicate(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return nil
	}
	switch {
	case strings.Contains(mysqlErr.Message, "uq_users_username"):
		return ErrDuplicateUsername
	case strings.Contains(mysqlErr.Message, "uq_users_email"):
		return ErrDuplicateEmail
	}
	// 1062 on a constraint this schema doesn't declare; surface as-is.
	return fmt.Errorf("duplicate entry: %w", err)
}

// GetUserByID retrieves a user by their ID. Returns (nil, nil) when absent.
func (r *mysqlUserRepository) GetUserByID(id int64) (*model.User, error) {
	query := "SELECT id, username, email, password_hash, phone, created_at, updated_at FROM users WHERE id = ?"
	row := r.db.QueryRow(query, id)
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Phone, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for ID %d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address. Returns (nil, nil) when absent.
func (r *mysqlUserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := "SELECT id, username, email, password_hash, phone, created_at, updated_at FROM users WHERE email = ?"
	row := r.db.QueryRow(query, email)
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Phone, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for email %s: %w", email, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username. Returns (nil, nil) when absent.
func (r *mysqlUserRepository) GetUserByUsername(username string) (*model.User, error) {
	query := "SELECT id, username, email, password_hash, phone, created_at, updated_at FROM users WHERE username = ?"
	row := r.db.QueryRow(query, username)
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Phone, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for username %s: %w", username, err)
	}
	return user, nil
}
