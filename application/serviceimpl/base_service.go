package serviceimpl

import (
	"context"
	"fmt"
	"log/slog"

	"taskmanager/domain/models"
	"taskmanager/domain/repositories"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

// ValidateHooks are supplied by every domain service embedding BaseService.
// ValidateBeforeUpdate may rewrite the change set it receives.
type ValidateHooks[T models.Entity] interface {
	ValidateBeforeCreate(ctx context.Context, entity *T) error
	ValidateBeforeUpdate(ctx context.Context, current *T, changes repositories.Changes) (repositories.Changes, error)
}

// AfterCreateHook runs in the creating transaction, after the insert.
type AfterCreateHook[T models.Entity] interface {
	AfterCreate(ctx context.Context, entity *T) error
}

// AfterUpdateHook runs in the updating transaction, after the row is reloaded.
type AfterUpdateHook[T models.Entity] interface {
	AfterUpdate(ctx context.Context, entity *T) error
}

// AfterDeleteHook runs in the deleting transaction, after the row is gone.
type AfterDeleteHook[T models.Entity] interface {
	AfterDelete(ctx context.Context, entity *T) error
}

// BaseService is the generic data-access service. Every operation runs in
// one transaction and every failure leaves it as an *apperror.Error.
type BaseService[T models.Entity] struct {
	repo  repositories.Repository[T]
	tx    repositories.Transactor
	hooks ValidateHooks[T]
	name  string
}

func NewBaseService[T models.Entity](repo repositories.Repository[T], tx repositories.Transactor, hooks ValidateHooks[T], name string) *BaseService[T] {
	return &BaseService[T]{
		repo:  repo,
		tx:    tx,
		hooks: hooks,
		name:  name,
	}
}

func (s *BaseService[T]) log(ctx context.Context) *slog.Logger {
	return logger.WithRequestID(ctx).With("service", s.name)
}

// operationKey marks a context already inside a service operation.
type operationKey struct{}

// run executes fn in a transaction and normalises the returned error. Only
// the outermost operation logs a failure; rejections are logged at debug
// since the caller reports them.
func (s *BaseService[T]) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	_, nested := ctx.Value(operationKey{}).(string)
	if !nested {
		ctx = context.WithValue(ctx, operationKey{}, s.name+"."+op)
	}

	err := s.tx.WithinTransaction(ctx, fn)
	if err == nil {
		return nil
	}

	err = apperror.Wrap(s.name+"."+op, err)
	if nested {
		return err
	}
	if appErr, ok := apperror.As(err); ok && appErr.HTTPStatus() >= 500 {
		s.log(ctx).Error("Operation failed", "operation", op, "error", err)
	} else {
		s.log(ctx).Debug("Operation rejected", "operation", op, "error", err)
	}
	return err
}

func (s *BaseService[T]) Create(ctx context.Context, entity *T) (*T, error) {
	err := s.run(ctx, "create_item", func(ctx context.Context) error {
		if s.hooks != nil {
			if err := s.hooks.ValidateBeforeCreate(ctx, entity); err != nil {
				return err
			}
		}
		if err := s.repo.Create(ctx, entity); err != nil {
			return err
		}
		if hook, ok := s.hooks.(AfterCreateHook[T]); ok {
			return hook.AfterCreate(ctx, entity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("Created", "id", (*entity).GetID())
	return entity, nil
}

// GetByID returns (nil, nil) when no row has the id.
func (s *BaseService[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity *T
	err := s.run(ctx, "get_by_id", func(ctx context.Context) error {
		var err error
		entity, err = s.repo.FindByID(ctx, id)
		return err
	})
	return entity, err
}

func (s *BaseService[T]) GetByIDOrFail(ctx context.Context, id uint) (*T, error) {
	entity, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, s.notFound(id)
	}
	return entity, nil
}

// ListPaginated scopes the listing to the context principal when T is owned.
func (s *BaseService[T]) ListPaginated(ctx context.Context, opts repositories.ListOptions) ([]*T, error) {
	opts.Scope = s.scopeFor(ctx, opts.Scope)

	var items []*T
	err := s.run(ctx, "get_all_with_pagination", func(ctx context.Context) error {
		var err error
		items, err = s.repo.List(ctx, opts)
		return err
	})
	return items, err
}

// CountListed counts what ListPaginated would return without limit and offset.
func (s *BaseService[T]) CountListed(ctx context.Context, opts repositories.ListOptions) (int64, error) {
	opts.Scope = s.scopeFor(ctx, opts.Scope)

	var count int64
	err := s.run(ctx, "count", func(ctx context.Context) error {
		var err error
		count, err = s.repo.Count(ctx, opts)
		return err
	})
	return count, err
}

// GetByFilter is never scoped. Unknown filter keys are ignored.
func (s *BaseService[T]) GetByFilter(ctx context.Context, filters repositories.Filters) ([]*T, error) {
	var items []*T
	err := s.run(ctx, "get_by_filter", func(ctx context.Context) error {
		var err error
		items, err = s.repo.FindBy(ctx, filters)
		return err
	})
	return items, err
}

// CountByFilters fails with a validation error on an unknown filter key.
func (s *BaseService[T]) CountByFilters(ctx context.Context, filters repositories.Filters) (int64, error) {
	var count int64
	err := s.run(ctx, "count_by_filters", func(ctx context.Context) error {
		var err error
		count, err = s.repo.CountBy(ctx, filters)
		return err
	})
	return count, err
}

func (s *BaseService[T]) UpdateByID(ctx context.Context, id uint, changes repositories.Changes) (*T, error) {
	var updated *T
	err := s.run(ctx, "update_by_id", func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return s.notFound(id)
		}

		if s.hooks != nil {
			if changes, err = s.hooks.ValidateBeforeUpdate(ctx, current, changes); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateColumns(ctx, id, s.knownChanges(ctx, changes)); err != nil {
			return err
		}

		if updated, err = s.repo.FindByID(ctx, id); err != nil {
			return err
		}
		if updated == nil {
			return s.notFound(id)
		}
		if hook, ok := s.hooks.(AfterUpdateHook[T]); ok {
			return hook.AfterUpdate(ctx, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("Updated", "id", id)
	return updated, nil
}

// DeleteByID returns false, nil when no row has the id.
func (s *BaseService[T]) DeleteByID(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.run(ctx, "delete_by_id", func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}

		if deleted, err = s.repo.Delete(ctx, id); err != nil || !deleted {
			return err
		}
		if hook, ok := s.hooks.(AfterDeleteHook[T]); ok {
			return hook.AfterDelete(ctx, current)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if !deleted {
		s.log(ctx).Warn("Not found for deletion", "id", id)
		return false, nil
	}
	s.log(ctx).Info("Deleted", "id", id)
	return true, nil
}

// WithinTransaction lets embedding services group several steps into the
// same transaction the base operations join.
func (s *BaseService[T]) WithinTransaction(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return s.run(ctx, op, fn)
}

func (s *BaseService[T]) knownChanges(ctx context.Context, changes repositories.Changes) repositories.Changes {
	known := make(repositories.Changes, len(changes))
	for key, value := range changes {
		if !s.repo.HasColumn(key) {
			s.log(ctx).Warn("Field not found in model", "field", key)
			continue
		}
		known[key] = value
	}
	return known
}

func (s *BaseService[T]) scopeFor(ctx context.Context, fallback *repositories.Scope) *repositories.Scope {
	principal := utils.PrincipalFromContext(ctx)
	if principal == nil {
		return fallback
	}
	var zero T
	owned, ok := any(zero).(models.Owned)
	if !ok {
		return fallback
	}
	return &repositories.Scope{Column: owned.OwnerColumn(), Value: principal.ID}
}

func (s *BaseService[T]) notFound(id uint) *apperror.Error {
	return apperror.NotFound(fmt.Sprintf("%s with id %d not found", s.name, id))
}
