package domain

import (
	"context"
	"time"
)

// User represents a registered user.
// swagger:model User
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// IsStaff marks site administrators.
	IsStaff bool `json:"is_staff"`

	Bio        string `json:"bio"`
	Pronouns   string `json:"pronouns"`
	PictureURL string `json:"picture_url"`

	PasswordHash string `json:"-"`
	Salt         string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate holds the editable profile fields. Nil fields are unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Pronouns  *string
	// PictureURL is set after a successful picture upload.
	PictureURL *string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, username string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*User, error)
}

// UserService defines registration, login, and profile operations. ActorFor
// rebuilds the request Actor from a verified user ID; it is consulted by the
// auth middleware on every authenticated request.
type UserService interface {
	SignUp(ctx context.Context, username, email, password, firstName, lastName string) (*User, error)
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
	ActorFor(ctx context.Context, userID int64) (Actor, error)
	GetProfile(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, actor Actor, username string, update ProfileUpdate) (*User, error)
}
