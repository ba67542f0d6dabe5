package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/teamflow/internal/db"
	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/alexanderramin/teamflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite verifies that loads running alongside
// saves always observe a complete collection, never a torn write.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	store := NewKVProjectStore(NewSQLiteKVStore(database))

	require.NoError(t, store.Save(ctx, []*domain.Project{testutil.NewTestProject("Seed")}))

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	wg.Add(1)
	go func() {
		defer wg.Done()
		projects := []*domain.Project{}
		for i := 0; i < 20; i++ {
			projects = append([]*domain.Project{testutil.NewTestProject(fmt.Sprintf("P-%d", i))}, projects...)
			if err := store.Save(ctx, projects); err != nil {
				errs <- err
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				loaded, err := store.Load(ctx)
				if err != nil {
					errs <- err
					return
				}
				for _, p := range loaded {
					if p.ID == "" || !p.Status.Valid() {
						errs <- fmt.Errorf("torn record: %+v", p)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	final, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, final, 20)
}
