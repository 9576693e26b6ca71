package cart_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eliezer-r/storefront-platform/internal/cart"
	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	t.Run("Missing File Reads As Empty Cart", func(t *testing.T) {
		store := cart.NewFileStore(t.TempDir())

		lines, err := store.Load()

		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("Save Then Load Round-Trips", func(t *testing.T) {
		// Arrange
		store := cart.NewFileStore(t.TempDir())
		lines := []models.CartLine{
			{ProductID: 1, Title: "A", Price: 10.00, Quantity: 1},
			{ProductID: 2, Title: "B", Price: 5.00, Quantity: 2},
		}

		// Act
		require.NoError(t, store.Save(lines))
		loaded, err := store.Load()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, lines, loaded)
	})

	t.Run("Clear Removes The Snapshot", func(t *testing.T) {
		store := cart.NewFileStore(t.TempDir())
		require.NoError(t, store.Save([]models.CartLine{{ProductID: 1, Quantity: 1}}))

		require.NoError(t, store.Clear())

		lines, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		store := cart.NewFileStore(t.TempDir())

		assert.NoError(t, store.Clear())
		assert.NoError(t, store.Clear())
	})

	t.Run("Corrupt Snapshot Surfaces An Error", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{not json"), 0o600))
		store := cart.NewFileStore(dir)

		// Act
		_, err := store.Load()

		// Assert
		assert.Error(t, err)
	})
}
