// ABOUTME: Tests for the repository
// ABOUTME: Covers contact CRUD, rename rules, note lifecycle, and tag grouping
package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/abook/models"
)

func addContact(t *testing.T, r *Repository, name string) *models.Contact {
	t.Helper()
	contact, err := models.NewContact(name)
	require.NoError(t, err)
	r.AddContact(contact)
	return contact
}

func TestContactCRUD(t *testing.T) {
	r := New()
	assert.Nil(t, r.FindContact("Ann"))

	addContact(t, r, "Ann")
	assert.True(t, r.HasContact("Ann"))
	assert.NotNil(t, r.FindContact("Ann"))

	// Names are case-sensitive keys.
	assert.False(t, r.HasContact("ann"))

	assert.True(t, r.DeleteContact("Ann"))
	assert.False(t, r.DeleteContact("Ann"))
	assert.False(t, r.HasContact("Ann"))
}

func TestContactsInsertionOrder(t *testing.T) {
	r := New()
	addContact(t, r, "Charlie")
	addContact(t, r, "Ann")
	addContact(t, r, "Bob")

	names := make([]string, 0, 3)
	for _, c := range r.Contacts() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Charlie", "Ann", "Bob"}, names)
}

func TestAddContactReplacesInPlace(t *testing.T) {
	r := New()
	addContact(t, r, "Ann")
	addContact(t, r, "Bob")

	replacement, err := models.NewContact("Ann")
	require.NoError(t, err)
	replacement.SetAddress("new address")
	r.AddContact(replacement)

	contacts := r.Contacts()
	require.Len(t, contacts, 2)
	assert.Equal(t, "Ann", contacts[0].Name)
	assert.Equal(t, "new address", contacts[0].Address)
}

func TestRenameContact(t *testing.T) {
	r := New()
	contact := addContact(t, r, "Ann")
	addContact(t, r, "Bob")

	require.NoError(t, r.RenameContact("Ann", "Anna"))
	assert.False(t, r.HasContact("Ann"))
	assert.Same(t, contact, r.FindContact("Anna"))

	// Rename onto an existing name fails and changes nothing.
	err := r.RenameContact("Anna", "Bob")
	require.Error(t, err)
	assert.True(t, r.HasContact("Anna"))

	// Rename of a missing contact reports not found.
	err = r.RenameContact("Ghost", "Spirit")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSearchFallbackFlow(t *testing.T) {
	r := New()
	contact := addContact(t, r, "Alice")
	require.NoError(t, contact.AddEmail("alice@example.com"))

	exact := r.SearchContacts("example.com")
	require.Len(t, exact, 1)

	// No exact hit for a typo; the fuzzy fallback still finds her.
	assert.Empty(t, r.SearchContacts("alicce"))
	fuzzy := r.SearchClosestContacts("alicce")
	require.NotEmpty(t, fuzzy)
	assert.Equal(t, "Alice", fuzzy[0].Name)
}

func TestNoteLifecycle(t *testing.T) {
	r := New()
	first := models.NewNote("buy milk", []string{"errands"})
	second := models.NewNote("buy milk", []string{"errands"})
	r.AddNote(first)
	r.AddNote(second)

	// Equal content, distinct identity.
	require.Len(t, r.Notes(), 2)
	assert.NotEqual(t, first.ID, second.ID)

	deleted, err := r.DeleteNote(first.ID)
	require.NoError(t, err)
	assert.Same(t, first, deleted)
	require.Len(t, r.Notes(), 1)
	assert.Same(t, second, r.Notes()[0])

	_, err = r.DeleteNote(first.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEditNote(t *testing.T) {
	r := New()
	note := models.NewNote("draft", []string{"work"})
	r.AddNote(note)

	updated, err := r.EditNote(note.ID, "final", nil)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Equal(t, []string{"work"}, updated.Tags)

	// Empty text keeps the old text; new tags replace.
	_, err = r.EditNote(note.ID, "", []string{"home"})
	require.NoError(t, err)
	assert.Equal(t, "final", note.Text)
	assert.Equal(t, []string{"home"}, note.Tags)
}

func TestSearchNotes(t *testing.T) {
	r := New()
	r.AddNote(models.NewNote("buy milk", []string{"errands"}))
	r.AddNote(models.NewNote("standup notes", []string{"work"}))

	assert.Len(t, r.SearchNotes(""), 2)
	assert.Len(t, r.SearchNotes("MILK"), 1)
	assert.Len(t, r.SearchNotes("work"), 1) // tag match
	assert.Empty(t, r.SearchNotes("vacation"))
}

func TestNotesByTag(t *testing.T) {
	r := New()
	both := models.NewNote("shared", []string{"b", "a"})
	r.AddNote(both)
	r.AddNote(models.NewNote("untagged", nil))

	groups := r.NotesByTag()
	require.Len(t, groups, 3)
	assert.Equal(t, "a", groups[0].Tag)
	assert.Equal(t, "b", groups[1].Tag)
	assert.Empty(t, groups[2].Tag)
	assert.Same(t, both, groups[0].Notes[0])
	assert.Same(t, both, groups[1].Notes[0])
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := New()
	contact := addContact(t, r, "Ann")
	require.NoError(t, contact.AddPhone("380501234567"))
	addContact(t, r, "Bob")
	r.AddNote(models.NewNote("remember", []string{"misc"}))

	restored := FromSnapshot(r.Snapshot())
	require.Len(t, restored.Contacts(), 2)
	assert.Equal(t, "Ann", restored.Contacts()[0].Name)
	assert.Equal(t, "Bob", restored.Contacts()[1].Name)
	require.Len(t, restored.Notes(), 1)
	assert.Equal(t, "remember", restored.Notes()[0].Text)

	assert.Empty(t, FromSnapshot(nil).Contacts())
}
