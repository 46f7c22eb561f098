package repositories

import (
	"context"

	"taskmanager/domain/models"
)

// Filters are exact-match column predicates. A slice value matches with IN.
type Filters map[string]any

// Changes is a column -> value update set.
type Changes map[string]any

// Scope restricts a listing to rows whose Column equals Value.
type Scope struct {
	Column string
	Value  any
}

// ListOptions drives paginated listings. Limit <= 0 and Offset <= 0 mean
// "not supplied": no LIMIT or OFFSET clause is emitted.
type ListOptions struct {
	Limit      int
	Offset     int
	OrderBy    string
	Descending bool
	Filters    Filters
	Scope      *Scope
}

// Repository is the generic persistence contract every entity repository
// implements. FindByID returns (nil, nil) when the row does not exist.
type Repository[T models.Entity] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, opts ListOptions) ([]*T, error)
	Count(ctx context.Context, opts ListOptions) (int64, error)
	FindBy(ctx context.Context, filters Filters) ([]*T, error)
	CountBy(ctx context.Context, filters Filters) (int64, error)
	UpdateColumns(ctx context.Context, id uint, changes Changes) error
	Delete(ctx context.Context, id uint) (bool, error)
	HasColumn(name string) bool
}

// Transactor runs fn inside one transaction. The transaction travels in the
// context handed to fn, and nested calls join it instead of opening another.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
