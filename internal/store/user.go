package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogql/internal/apperr"
	"blogql/internal/models"
)

// PasswordHasher abstracts the password hashing scheme so the store never
// sees plaintext handling details.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// UserStore handles all user-related database operations.
type UserStore struct {
	db     *sql.DB
	hasher PasswordHasher
}

// NewUserStore creates a new UserStore with the given database connection
// and password hasher.
func NewUserStore(db *sql.DB, hasher PasswordHasher) *UserStore {
	return &UserStore{db: db, hasher: hasher}
}

const userColumns = `id, role, name, username, email, password_hash, bio, profile_img, created_at, updated_at`

// scanUser scans a row into a User struct.
func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Role, &u.Name, &u.Username, &u.Email,
		&u.PasswordHash, &u.Bio, &u.ProfileImg, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users visible to the caller, newest first. Anonymous
// callers may not enumerate users at all; a non-admin sees only their own
// record; admins see everyone.
func (s *UserStore) List(ctx context.Context, ident *models.Identity, limit, offset *int32) ([]models.User, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to users data")
	}

	cond := Cond{}
	if !ident.IsAdmin() {
		cond = Eq("id", ident.ID)
	}
	where, args := cond.SQL(1)
	l, o := pageWindow(limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, l, o)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// FindByID retrieves a user by id. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findOne(ctx, `id = $1`, id)
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, `username = $1`, username)
}

// FindByEmail retrieves a user by email. Returns nil if not found.
// The match is exact and case-sensitive.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, `email = $1`, email)
}

func (s *UserStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// ExistsByLogin reports whether any user already holds the given username
// or email (exact match on either).
func (s *UserStore) ExistsByLogin(ctx context.Context, username, email string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = $1 OR email = $2`,
		username, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count users by login: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new user on behalf of an admin. Self-service signup
// goes through the authentication service's Register instead.
func (s *UserStore) Create(ctx context.Context, ident *models.Identity, in CreateUserInput) (*models.User, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to create user")
	}
	if !ident.IsAdmin() {
		return nil, apperr.Forbidden("unauthorized access to create user")
	}
	return s.Insert(ctx, in)
}

// Insert validates the payload, checks login uniqueness, hashes the
// password and persists the user with the default role. Callers are
// responsible for any role gate; Register deliberately has none.
func (s *UserStore) Insert(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if fields := in.Validate(); len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	exists, err := s.ExistsByLogin(ctx, in.Username, in.Email)
	if err != nil {
		return nil, apperr.From(err)
	}
	if exists {
		return nil, apperr.Conflict("user already exists")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internalf("hash password: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, name, bio, profile_img)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		in.Username, in.Email, hash, in.Name, in.Bio, in.ProfileImg,
	)
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		// Lost the race between the count and the insert.
		return nil, apperr.Conflict("user already exists")
	}
	if err != nil {
		return nil, apperr.Internalf("create user: %w", err)
	}
	return u, nil
}

// Update applies a partial user update. A non-admin may only update their
// own record; a supplied password is re-hashed before storage.
func (s *UserStore) Update(ctx context.Context, ident *models.Identity, in UpdateUserInput) (*models.User, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to update user")
	}
	if !ident.Is(in.ID) && !ident.IsAdmin() {
		return nil, apperr.Forbidden("unauthorized access to update user")
	}
	if fields := in.Validate(); len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if in.Name != nil {
		set("name", *in.Name)
	}
	if in.Username != nil {
		set("username", *in.Username)
	}
	if in.Email != nil {
		set("email", *in.Email)
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperr.Internalf("hash password: %w", err)
		}
		set("password_hash", hash)
	}
	if in.Bio != nil {
		set("bio", *in.Bio)
	}
	if in.ProfileImg != nil {
		set("profile_img", *in.ProfileImg)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, in.ID)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user not found")
	}
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("username or email already taken")
	}
	if err != nil {
		return nil, apperr.Internalf("update user: %w", err)
	}
	return u, nil
}

// Delete removes a user permanently. Their posts and comments survive
// with a NULL author. A non-admin may only delete themselves.
func (s *UserStore) Delete(ctx context.Context, ident *models.Identity, id uuid.UUID) (*models.User, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to delete user")
	}
	if !ident.Is(id) && !ident.IsAdmin() {
		return nil, apperr.Forbidden("unauthorized access to delete user")
	}

	row := s.db.QueryRowContext(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Internalf("delete user: %w", err)
	}
	return u, nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return s.hasher.Verify(user.PasswordHash, password)
}

func collectUsers(rows *sql.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
