// ABOUTME: Tests for storage backends and the factory
// ABOUTME: Round-trips snapshots through sqlite and json, checks factory keys
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/abook/models"
	"github.com/harperreed/abook/repo"
)

func sampleSnapshot(t *testing.T) *repo.Snapshot {
	t.Helper()
	r := repo.New()

	ann, err := models.NewContact("Ann")
	require.NoError(t, err)
	require.NoError(t, ann.AddPhone("380501234567"))
	require.NoError(t, ann.AddPhone("0671112233"))
	require.NoError(t, ann.AddEmail("ann@example.com"))
	ann.SetAddress("12 Green St, Kyiv")
	require.NoError(t, ann.SetBirthday("15.03.1990"))
	r.AddContact(ann)

	bob, err := models.NewContact("Bob")
	require.NoError(t, err)
	r.AddContact(bob)

	r.AddNote(models.NewNote("buy milk", []string{"errands", "home"}))

	return r.Snapshot()
}

func assertSnapshotEqual(t *testing.T, want, got *repo.Snapshot) {
	t.Helper()
	require.Len(t, got.Contacts, len(want.Contacts))
	for i, contact := range want.Contacts {
		loaded := got.Contacts[i]
		assert.Equal(t, contact.Name, loaded.Name)
		assert.Equal(t, contact.Phones, loaded.Phones)
		assert.Equal(t, contact.Emails, loaded.Emails)
		assert.Equal(t, contact.Address, loaded.Address)
		if contact.Birthday == nil {
			assert.Nil(t, loaded.Birthday)
		} else {
			require.NotNil(t, loaded.Birthday)
			assert.Equal(t, contact.Birthday.String(), loaded.Birthday.String())
			assert.Equal(t, contact.Birthday.Date(), loaded.Birthday.Date())
		}
	}

	require.Len(t, got.Notes, len(want.Notes))
	for i, note := range want.Notes {
		loaded := got.Notes[i]
		assert.Equal(t, note.ID, loaded.ID)
		assert.Equal(t, note.Text, loaded.Text)
		assert.Equal(t, note.Tags, loaded.Tags)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, storageType := range SupportedTypes() {
		t.Run(storageType, func(t *testing.T) {
			store, err := New(storageType, t.TempDir())
			require.NoError(t, err)

			snapshot := sampleSnapshot(t)
			require.NoError(t, store.Save(snapshot))

			loaded, err := store.Load()
			require.NoError(t, err)
			assertSnapshotEqual(t, snapshot, loaded)
		})
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	for _, storageType := range SupportedTypes() {
		t.Run(storageType, func(t *testing.T) {
			store, err := New(storageType, t.TempDir())
			require.NoError(t, err)

			require.NoError(t, store.Save(sampleSnapshot(t)))

			// Second save with fewer entities must not leave stale rows.
			r := repo.New()
			solo, err := models.NewContact("Solo")
			require.NoError(t, err)
			r.AddContact(solo)
			require.NoError(t, store.Save(r.Snapshot()))

			loaded, err := store.Load()
			require.NoError(t, err)
			require.Len(t, loaded.Contacts, 1)
			assert.Equal(t, "Solo", loaded.Contacts[0].Name)
			assert.Empty(t, loaded.Notes)
		})
	}
}

func TestLoadMissingFileReturnsEmptySnapshot(t *testing.T) {
	for _, storageType := range SupportedTypes() {
		t.Run(storageType, func(t *testing.T) {
			store, err := New(storageType, t.TempDir())
			require.NoError(t, err)

			loaded, err := store.Load()
			require.NoError(t, err)
			assert.Empty(t, loaded.Contacts)
			assert.Empty(t, loaded.Notes)
		})
	}
}

func TestUnsupportedStorageType(t *testing.T) {
	_, err := New("pickle", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTypeKeyIsCaseInsensitive(t *testing.T) {
	store, err := New("JSON", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, store)
}
