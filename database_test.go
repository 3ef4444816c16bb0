package wayfinder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/campuskit/wayfinder/assist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.BuildingRepository())
		assert.NotNil(t, db.CalendarRepository())
		assert.NotNil(t, db.AssistRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.broker)
		assert.NotNil(t, db.logger)
	})

	t.Run("in-memory database ignores path", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemory())
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.BuildingRepository())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)

	// Close the database
	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase("", WithInMemory(),
		WithAssistTimeout(time.Second),
		WithAssistConfig(assist.NewConfig(assist.WithModel("test-model"))))
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create resolver", func(t *testing.T) {
		resolver, err := db.NewResolver()
		require.NoError(t, err)
		require.NotNil(t, resolver)
	})

	t.Run("can create agent with custom completer", func(t *testing.T) {
		agent, err := db.NewAgentWithCompleter(stubCompleter{})
		require.NoError(t, err)
		require.NotNil(t, agent)
	})
}

type stubCompleter struct{}

func (stubCompleter) Complete(_ context.Context, _ string, _ int) (string, error) {
	return "stub", nil
}
