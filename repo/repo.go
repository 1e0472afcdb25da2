// ABOUTME: In-memory repository owning contacts and notes
// ABOUTME: Name-keyed contact CRUD, rename, note management, search delegation
package repo

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/harperreed/abook/models"
	"github.com/harperreed/abook/search"
)

// Repository owns the contact and note collections for one session. Contacts
// are keyed by their exact name; iteration follows insertion order so search
// results and listings stay deterministic.
type Repository struct {
	contacts map[string]*models.Contact
	order    []string
	notes    []*models.Note
}

func New() *Repository {
	return &Repository{contacts: make(map[string]*models.Contact)}
}

// AddContact inserts a contact, or replaces the stored one when the name is
// already taken, keeping its position.
func (r *Repository) AddContact(contact *models.Contact) {
	if _, ok := r.contacts[contact.Name]; !ok {
		r.order = append(r.order, contact.Name)
	}
	r.contacts[contact.Name] = contact
}

// FindContact returns the contact with the exact name, or nil.
func (r *Repository) FindContact(name string) *models.Contact {
	return r.contacts[name]
}

func (r *Repository) HasContact(name string) bool {
	_, ok := r.contacts[name]
	return ok
}

// DeleteContact removes a contact by name and reports whether it existed.
func (r *Repository) DeleteContact(name string) bool {
	if _, ok := r.contacts[name]; !ok {
		return false
	}
	delete(r.contacts, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// RenameContact moves a contact to a new name key. The contact is removed and
// reinserted, so it ends up last in iteration order. Fails when the source is
// missing or the target name is taken.
func (r *Repository) RenameContact(oldName, newName string) error {
	contact := r.FindContact(oldName)
	if contact == nil {
		return fmt.Errorf("contact %q: %w", oldName, models.ErrNotFound)
	}
	if r.HasContact(newName) {
		return fmt.Errorf("contact %q already exists", newName)
	}

	r.DeleteContact(oldName)
	contact.Name = newName
	r.AddContact(contact)
	return nil
}

// Contacts returns all contacts in insertion order. This is the snapshot the
// birthday and search engines operate over.
func (r *Repository) Contacts() []*models.Contact {
	contacts := make([]*models.Contact, 0, len(r.order))
	for _, name := range r.order {
		contacts = append(contacts, r.contacts[name])
	}
	return contacts
}

// SearchContacts runs the exact substring search.
func (r *Repository) SearchContacts(query string) []*models.Contact {
	return search.Exact(r.Contacts(), query)
}

// SearchClosestContacts runs the ranked fuzzy fallback.
func (r *Repository) SearchClosestContacts(query string) []*models.Contact {
	return search.Fuzzy(r.Contacts(), query, search.DefaultLimit)
}

// AddNote appends a note to the collection.
func (r *Repository) AddNote(note *models.Note) {
	r.notes = append(r.notes, note)
}

// Notes returns all notes in insertion order.
func (r *Repository) Notes() []*models.Note {
	return r.notes
}

// FindNote returns the note with the given ID, or nil.
func (r *Repository) FindNote(id uuid.UUID) *models.Note {
	for _, note := range r.notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

// DeleteNote removes the note with the given ID and returns it.
func (r *Repository) DeleteNote(id uuid.UUID) (*models.Note, error) {
	for i, note := range r.notes {
		if note.ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return note, nil
		}
	}
	return nil, fmt.Errorf("note: %w", models.ErrNotFound)
}

// EditNote updates the text and tags of the note with the given ID. Empty
// text or empty tags leave the respective field unchanged.
func (r *Repository) EditNote(id uuid.UUID, newText string, newTags []string) (*models.Note, error) {
	note := r.FindNote(id)
	if note == nil {
		return nil, fmt.Errorf("note: %w", models.ErrNotFound)
	}
	if newText != "" {
		note.Text = newText
	}
	if len(newTags) > 0 {
		note.Tags = newTags
	}
	return note, nil
}

// SearchNotes returns notes whose text or tags contain the query. An empty
// query returns everything.
func (r *Repository) SearchNotes(query string) []*models.Note {
	var results []*models.Note
	for _, note := range r.notes {
		if note.Matches(query) {
			results = append(results, note)
		}
	}
	return results
}

// TagGroup is one tag bucket for the tag listing. Untagged notes go in a
// trailing group with an empty Tag.
type TagGroup struct {
	Tag   string
	Notes []*models.Note
}

// NotesByTag groups notes under each of their tags, tags sorted
// alphabetically. A note with several tags appears in every matching group.
func (r *Repository) NotesByTag() []TagGroup {
	tagged := make(map[string][]*models.Note)
	var untagged []*models.Note

	for _, note := range r.notes {
		if len(note.Tags) == 0 {
			untagged = append(untagged, note)
			continue
		}
		for _, tag := range note.Tags {
			tagged[tag] = append(tagged[tag], note)
		}
	}

	tags := make([]string, 0, len(tagged))
	for tag := range tagged {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	groups := make([]TagGroup, 0, len(tags)+1)
	for _, tag := range tags {
		groups = append(groups, TagGroup{Tag: tag, Notes: tagged[tag]})
	}
	if len(untagged) > 0 {
		groups = append(groups, TagGroup{Notes: untagged})
	}
	return groups
}

// Snapshot is the serializable view of the repository handed to storage
// backends. Both formats reconstruct the repository from exactly this shape.
type Snapshot struct {
	Contacts []*models.Contact `json:"contacts"`
	Notes    []*models.Note    `json:"notes"`
}

// Snapshot captures the current contacts and notes in insertion order.
func (r *Repository) Snapshot() *Snapshot {
	return &Snapshot{Contacts: r.Contacts(), Notes: r.notes}
}

// FromSnapshot rebuilds a repository from persisted state. A nil snapshot
// yields an empty repository.
func FromSnapshot(snapshot *Snapshot) *Repository {
	r := New()
	if snapshot == nil {
		return r
	}
	for _, contact := range snapshot.Contacts {
		r.AddContact(contact)
	}
	for _, note := range snapshot.Notes {
		r.AddNote(note)
	}
	return r
}
