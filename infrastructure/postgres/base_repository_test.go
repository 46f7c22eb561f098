package postgres

import (
	"testing"

	"taskmanager/domain/models"
	"taskmanager/domain/repositories"
	"taskmanager/pkg/apperror"
)

func TestBaseRepositoryColumnsComeFromSchema(t *testing.T) {
	repo, err := NewBaseRepository[models.Task](newTestDB(t))
	if err != nil {
		t.Fatalf("NewBaseRepository: %v", err)
	}

	for _, column := range []string{"id", "title", "description", "is_completed", "user_id", "created_at", "updated_at"} {
		if !repo.HasColumn(column) {
			t.Errorf("expected column %s", column)
		}
	}
	for _, column := range []string{"owner", "User", "tasks", ""} {
		if repo.HasColumn(column) {
			t.Errorf("unexpected column %q", column)
		}
	}
}

func TestBaseRepositoryFindByIDMissing(t *testing.T) {
	repo, err := NewBaseRepository[models.Task](newTestDB(t))
	if err != nil {
		t.Fatalf("NewBaseRepository: %v", err)
	}

	task, err := repo.FindByID(bg, 999)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if task != nil {
		t.Fatalf("expected nil task, got %+v", task)
	}
}

func TestBaseRepositoryListScopeFiltersAndPaging(t *testing.T) {
	db := newTestDB(t)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	mustCreateTask(t, db, alice.ID, "a1", false)
	mustCreateTask(t, db, alice.ID, "a2", true)
	mustCreateTask(t, db, alice.ID, "a3", false)
	mustCreateTask(t, db, bob.ID, "b1", false)

	repo, err := NewBaseRepository[models.Task](db)
	if err != nil {
		t.Fatalf("NewBaseRepository: %v", err)
	}
	aliceScope := &repositories.Scope{Column: "user_id", Value: alice.ID}

	tests := []struct {
		name  string
		opts  repositories.ListOptions
		want  []string
		count int64
	}{
		{
			name:  "scope only",
			opts:  repositories.ListOptions{Scope: aliceScope, OrderBy: "id"},
			want:  []string{"a1", "a2", "a3"},
			count: 3,
		},
		{
			name:  "scope and filter",
			opts:  repositories.ListOptions{Scope: aliceScope, Filters: repositories.Filters{"is_completed": false}},
			want:  []string{"a1", "a3"},
			count: 2,
		},
		{
			name:  "unknown filter ignored",
			opts:  repositories.ListOptions{Scope: aliceScope, Filters: repositories.Filters{"color": "red"}},
			want:  []string{"a1", "a2", "a3"},
			count: 3,
		},
		{
			name:  "slice filter is IN",
			opts:  repositories.ListOptions{Filters: repositories.Filters{"title": []string{"a2", "b1"}}},
			want:  []string{"a2", "b1"},
			count: 2,
		},
		{
			name:  "limit and offset",
			opts:  repositories.ListOptions{Scope: aliceScope, OrderBy: "id", Limit: 1, Offset: 1},
			want:  []string{"a2"},
			count: 3,
		},
		{
			name:  "zero limit means no limit",
			opts:  repositories.ListOptions{Scope: aliceScope, Limit: 0},
			want:  []string{"a1", "a2", "a3"},
			count: 3,
		},
		{
			name:  "descending order",
			opts:  repositories.ListOptions{Scope: aliceScope, OrderBy: "id", Descending: true, Limit: 1},
			want:  []string{"a3"},
			count: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repo.List(bg, tt.opts)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			got := titles(items)
			if len(got) != len(tt.want) {
				t.Fatalf("List returned %v, want %v", got, tt.want)
			}
			for _, title := range tt.want {
				if !got[title] {
					t.Fatalf("List returned %v, want %v", got, tt.want)
				}
			}

			count, err := repo.Count(bg, tt.opts)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if count != tt.count {
				t.Fatalf("Count = %d, want %d", count, tt.count)
			}
		})
	}
}

func TestBaseRepositoryFindByLenientCountByStrict(t *testing.T) {
	db := newTestDB(t)
	alice := mustCreateUser(t, db, "alice")
	mustCreateTask(t, db, alice.ID, "a1", true)
	mustCreateTask(t, db, alice.ID, "a2", false)

	repo, err := NewBaseRepository[models.Task](db)
	if err != nil {
		t.Fatalf("NewBaseRepository: %v", err)
	}

	items, err := repo.FindBy(bg, repositories.Filters{"is_completed": true, "nonexistent": 1})
	if err != nil {
		t.Fatalf("FindBy: %v", err)
	}
	if len(items) != 1 || items[0].Title != "a1" {
		t.Fatalf("FindBy = %v", titles(items))
	}

	count, err := repo.CountBy(bg, repositories.Filters{"user_id": alice.ID})
	if err != nil {
		t.Fatalf("CountBy: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountBy = %d, want 2", count)
	}

	_, err = repo.CountBy(bg, repositories.Filters{"nonexistent": 1})
	if !apperror.HasCode(err, apperror.CodeValidation) {
		t.Fatalf("CountBy unknown key: err = %v, want validation error", err)
	}
}

func TestBaseRepositoryUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	alice := mustCreateUser(t, db, "alice")
	task := mustCreateTask(t, db, alice.ID, "a1", false)

	repo, err := NewBaseRepository[models.Task](db)
	if err != nil {
		t.Fatalf("NewBaseRepository: %v", err)
	}

	if err := repo.UpdateColumns(bg, task.ID, repositories.Changes{"title": "renamed", "is_completed": true}); err != nil {
		t.Fatalf("UpdateColumns: %v", err)
	}
	reloaded, err := repo.FindByID(bg, task.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("FindByID: %v %v", reloaded, err)
	}
	if reloaded.Title != "renamed" || !reloaded.IsCompleted {
		t.Fatalf("reloaded = %+v", reloaded)
	}

	deleted, err := repo.Delete(bg, task.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete existing: deleted=%v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(bg, task.ID)
	if err != nil || deleted {
		t.Fatalf("Delete missing: deleted=%v err=%v", deleted, err)
	}
}

func TestBaseRepositoryUniqueViolationIsIntegrityError(t *testing.T) {
	db := newTestDB(t)
	alice := mustCreateUser(t, db, "alice")

	repo, err := NewBaseRepository[models.Task](db)
	if err != nil {
		t.Fatalf("NewBaseRepository: %v", err)
	}

	if err := repo.Create(bg, &models.Task{Title: "same", UserID: alice.ID}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err = repo.Create(bg, &models.Task{Title: "same", UserID: alice.ID})
	if !apperror.HasCode(err, apperror.CodeIntegrity) {
		t.Fatalf("duplicate Create: err = %v, want integrity error", err)
	}
}
