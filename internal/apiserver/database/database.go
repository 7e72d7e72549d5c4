package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist or is not visible
// to the caller's enterprise.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateKey is returned when a unique constraint is violated.
var ErrDuplicateKey = errors.New("duplicate key")

// Database defines the methods for database operations.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn inside a database transaction. The transaction
	// is carried in the context; nested calls reuse it.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// CreateUser creates a user. Returns ErrDuplicateKey when the email
	// is already registered.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail returns the user with the given email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID returns the user with the given id.
	GetUserByID(ctx context.Context, id uint) (*User, error)

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, user *User) error

	// ListUsersByEnterprise returns all users owned by the enterprise.
	ListUsersByEnterprise(ctx context.Context, enterpriseID uint) ([]*User, error)

	// CreateEnterprise creates an enterprise. Returns ErrDuplicateKey when
	// the CNPJ is already registered.
	CreateEnterprise(ctx context.Context, enterprise *Enterprise) error

	// GetEnterpriseByCNPJ returns the enterprise with the given CNPJ.
	GetEnterpriseByCNPJ(ctx context.Context, cnpj string) (*Enterprise, error)

	// GetEnterpriseByID returns the enterprise with the given id.
	GetEnterpriseByID(ctx context.Context, id uint) (*Enterprise, error)

	// CreateGroup creates a capability group.
	CreateGroup(ctx context.Context, group *Group) error

	// GetGroup returns the group with the given id.
	GetGroup(ctx context.Context, id uint) (*Group, error)

	// ListGroupsByEnterprise returns all groups owned by the enterprise.
	// Never returns nil: an enterprise without groups gets an empty slice.
	ListGroupsByEnterprise(ctx context.Context, enterpriseID uint) ([]*Group, error)

	// DeleteGroup deletes a group owned by the enterprise and clears the
	// group reference of dependent users in the same transaction.
	// Returns ErrNotFound when the id does not resolve to a group owned
	// by the enterprise.
	DeleteGroup(ctx context.Context, id, enterpriseID uint) error

	// CreateRelease creates a fiscal-note release.
	CreateRelease(ctx context.Context, release *Release) error

	// GetRelease returns the release with the given id scoped to the enterprise.
	GetRelease(ctx context.Context, id, enterpriseID uint) (*Release, error)

	// ListReleasesByPeriod returns releases of one period of the enterprise.
	ListReleasesByPeriod(ctx context.Context, periodID, enterpriseID uint) ([]*Release, error)

	// UpdateRelease persists changes to an existing release.
	UpdateRelease(ctx context.Context, release *Release) error

	// DeleteRelease deletes a release scoped to the enterprise.
	DeleteRelease(ctx context.Context, id, enterpriseID uint) error

	// CreatePeriod creates an accounting period.
	CreatePeriod(ctx context.Context, period *Period) error

	// GetPeriod returns the period with the given id scoped to the enterprise.
	GetPeriod(ctx context.Context, id, enterpriseID uint) (*Period, error)

	// ListPeriodsByEnterprise returns all periods of the enterprise.
	ListPeriodsByEnterprise(ctx context.Context, enterpriseID uint) ([]*Period, error)

	// UpdatePeriod persists changes to an existing period.
	UpdatePeriod(ctx context.Context, period *Period) error

	// DeletePeriod deletes a period scoped to the enterprise.
	DeletePeriod(ctx context.Context, id, enterpriseID uint) error
}
