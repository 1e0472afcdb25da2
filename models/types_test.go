// ABOUTME: Tests for the Contact and Note models
// ABOUTME: Field mutators, search fields, and note matching
package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContactRequiresName(t *testing.T) {
	_, err := NewContact("  ")
	require.Error(t, err)

	contact, err := NewContact("Ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann", contact.Name)
}

func TestContactPhones(t *testing.T) {
	contact, err := NewContact("Ann")
	require.NoError(t, err)

	require.NoError(t, contact.AddPhone("0671234567"))
	require.NoError(t, contact.AddPhone("0507654321"))
	assert.True(t, contact.FindPhone("380671234567"))
	assert.False(t, contact.FindPhone("380000000000"))

	require.NoError(t, contact.EditPhone("380671234567", "0671111111"))
	assert.Equal(t, Phone("380671111111"), contact.Phones[0], "edit keeps position")

	require.NoError(t, contact.RemovePhone("380671111111"))
	assert.Len(t, contact.Phones, 1)

	err = contact.RemovePhone("380671111111")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestContactEmails(t *testing.T) {
	contact, err := NewContact("Ann")
	require.NoError(t, err)

	require.NoError(t, contact.AddEmail("ann@example.com"))
	assert.True(t, contact.FindEmail("ann@example.com"))

	require.NoError(t, contact.EditEmail("ann@example.com", "ann@work.example.com"))
	assert.True(t, contact.FindEmail("ann@work.example.com"))
	assert.False(t, contact.FindEmail("ann@example.com"))

	err = contact.EditEmail("gone@example.com", "x@example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestContactFieldValues(t *testing.T) {
	contact, err := NewContact("Ann Smith")
	require.NoError(t, err)
	require.NoError(t, contact.AddPhone("0671234567"))
	require.NoError(t, contact.AddEmail("ann@example.com"))
	contact.SetAddress("12 Main St")
	require.NoError(t, contact.SetBirthday("15.03.1990"))

	assert.Equal(t, []string{
		"Ann Smith", "380671234567", "ann@example.com", "12 Main St", "15.03.1990",
	}, contact.FieldValues())
}

func TestContactString(t *testing.T) {
	contact, err := NewContact("Ann")
	require.NoError(t, err)
	assert.Equal(t, "Contact name: Ann", contact.String())

	require.NoError(t, contact.AddPhone("0671234567"))
	require.NoError(t, contact.SetBirthday("15.03.1990"))
	assert.Equal(t, "Contact name: Ann, phones: 380671234567, birthday: 15.03.1990", contact.String())
}

func TestNoteIdentity(t *testing.T) {
	a := NewNote("call mom", []string{"family"})
	b := NewNote("call mom", []string{"family"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNoteMatches(t *testing.T) {
	note := NewNote("Buy groceries for the Weekend", []string{"Shopping", "home"})

	assert.True(t, note.Matches(""))
	assert.True(t, note.Matches("weekend"))
	assert.True(t, note.Matches("shop"))
	assert.True(t, note.Matches("  HOME  "))
	assert.False(t, note.Matches("work"))
}

func TestNoteString(t *testing.T) {
	assert.Equal(t, "plain", NewNote("plain", nil).String())
	assert.Equal(t, "todo [tags: a, b]", NewNote("todo", []string{"a", "b"}).String())
}
