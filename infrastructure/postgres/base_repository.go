package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmanager/domain/models"
	"taskmanager/domain/repositories"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/logger"
)

// BaseRepository implements repositories.Repository for any gorm model.
// The set of known columns comes from the parsed gorm schema of T.
type BaseRepository[T models.Entity] struct {
	db      *gorm.DB
	table   string
	columns map[string]struct{}
}

func NewBaseRepository[T models.Entity](db *gorm.DB) (*BaseRepository[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	columns := make(map[string]struct{}, len(stmt.Schema.DBNames))
	for _, name := range stmt.Schema.DBNames {
		columns[name] = struct{}{}
	}

	return &BaseRepository[T]{
		db:      db,
		table:   stmt.Schema.Table,
		columns: columns,
	}, nil
}

func (r *BaseRepository[T]) op(name string) string {
	return r.table + "." + name
}

func (r *BaseRepository[T]) HasColumn(name string) bool {
	_, ok := r.columns[name]
	return ok
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return translateError(r.op("create"), conn(ctx, r.db).Create(entity).Error)
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := conn(ctx, r.db).Where("id = ?", id).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(r.op("get_by_id"), err)
	}
	return &entity, nil
}

func (r *BaseRepository[T]) List(ctx context.Context, opts repositories.ListOptions) ([]*T, error) {
	query := r.filtered(ctx, opts)

	if opts.OrderBy != "" && r.HasColumn(opts.OrderBy) {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.OrderBy},
			Desc:   opts.Descending,
		})
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var items []*T
	if err := query.Find(&items).Error; err != nil {
		return nil, translateError(r.op("list"), err)
	}
	return items, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context, opts repositories.ListOptions) (int64, error) {
	var count int64
	if err := r.filtered(ctx, opts).Count(&count).Error; err != nil {
		return 0, translateError(r.op("count"), err)
	}
	return count, nil
}

// filtered applies the scope predicate first, then the known explicit filters.
func (r *BaseRepository[T]) filtered(ctx context.Context, opts repositories.ListOptions) *gorm.DB {
	query := conn(ctx, r.db).Model(new(T))

	if opts.Scope != nil && r.HasColumn(opts.Scope.Column) {
		query = query.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: opts.Scope.Column},
			Value:  opts.Scope.Value,
		})
	}

	if known := r.knownFilters(ctx, opts.Filters); len(known) > 0 {
		query = query.Where(known)
	}
	return query
}

// FindBy matches every known filter; unknown keys are ignored.
func (r *BaseRepository[T]) FindBy(ctx context.Context, filters repositories.Filters) ([]*T, error) {
	query := conn(ctx, r.db).Model(new(T))
	if known := r.knownFilters(ctx, filters); len(known) > 0 {
		query = query.Where(known)
	}

	var items []*T
	if err := query.Find(&items).Error; err != nil {
		return nil, translateError(r.op("get_by_filter"), err)
	}
	return items, nil
}

// CountBy is strict where FindBy is lenient: an unknown key is a validation error.
func (r *BaseRepository[T]) CountBy(ctx context.Context, filters repositories.Filters) (int64, error) {
	for key := range filters {
		if !r.HasColumn(key) {
			return 0, apperror.Validation(fmt.Sprintf("Invalid filter key: '%s' is not a field of %s", key, r.table))
		}
	}

	query := conn(ctx, r.db).Model(new(T))
	if len(filters) > 0 {
		query = query.Where(map[string]interface{}(filters))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(r.op("count_by_filters"), err)
	}
	return count, nil
}

func (r *BaseRepository[T]) UpdateColumns(ctx context.Context, id uint, changes repositories.Changes) error {
	if len(changes) == 0 {
		return nil
	}
	err := conn(ctx, r.db).Model(new(T)).Where("id = ?", id).Updates(map[string]interface{}(changes)).Error
	return translateError(r.op("update_by_id"), err)
}

// Delete reports false when no row had the id.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, translateError(r.op("delete_by_id"), result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *BaseRepository[T]) knownFilters(ctx context.Context, filters repositories.Filters) map[string]interface{} {
	known := make(map[string]interface{}, len(filters))
	for key, value := range filters {
		if !r.HasColumn(key) {
			logger.DebugContext(ctx, "Ignoring unknown filter", "table", r.table, "field", key)
			continue
		}
		known[key] = value
	}
	return known
}
