package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(filepath.Join(t.TempDir(), "alerts.db"))
	require.NoError(t, err, "failed to open store")
	return store
}

func TestStoreSetAlert(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.SetAlert(1, 100, 25))

	alert, err := store.Alert(1)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, 25.0, alert.Threshold)

	// Setting again replaces rather than duplicates.
	require.NoError(t, store.SetAlert(1, 200, 15))

	alerts, err := store.Alerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 15.0, alerts[0].Threshold)

	missing, err := store.Alert(2)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreClearAlert(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.SetAlert(1, 100, 25))

	removed, err := store.ClearAlert(1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.ClearAlert(1)
	require.NoError(t, err)
	assert.False(t, removed, "clearing twice should report nothing removed")
}

func TestStoreTriggered(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.SetAlert(1, 100, 30)) // fires at fast <= 30
	require.NoError(t, store.SetAlert(2, 100, 20))
	require.NoError(t, store.SetAlert(3, 100, 10))

	triggered, err := store.Triggered(20)
	require.NoError(t, err)
	require.Len(t, triggered, 2)
	for _, alert := range triggered {
		assert.GreaterOrEqual(t, alert.Threshold, 20.0)
	}
}

func TestStoreDisarmOnce(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.SetAlert(1, 100, 30))

	triggered, err := store.Triggered(25)
	require.NoError(t, err)
	require.Len(t, triggered, 1)

	armed, err := store.Disarm(triggered[0].ID)
	require.NoError(t, err)
	assert.True(t, armed)

	armed, err = store.Disarm(triggered[0].ID)
	require.NoError(t, err)
	assert.False(t, armed, "an alert must only disarm once")
}
