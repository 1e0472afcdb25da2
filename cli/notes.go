// ABOUTME: Interactive note command handlers
// ABOUTME: Add, delete, list, edit, and tag-grouping flows
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/abook/models"
)

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (r *REPL) noteAdd(args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		value, ok := r.askRequired("Enter note text: ", "Note text")
		if !ok {
			return cancelledMessage, nil
		}
		text = value
	}

	raw, _ := r.ask("Enter tags separated by commas (or press Enter to continue): ")
	note := models.NewNote(text, splitTags(raw))
	r.repository.AddNote(note)

	r.presenter.Println(r.presenter.Success("Note added:"))
	return note.String(), nil
}

// narrowNotes repeatedly filters the note list by search strings until the
// user accepts the current result set with an empty input.
func (r *REPL) narrowNotes(query string) []*models.Note {
	for {
		notes := r.repository.SearchNotes(query)
		header := "All notes"
		if query != "" {
			header = "Notes matching filter: " + query
		}
		r.presenter.PrintNotes(notes, header)

		next, ok := r.ask("Enter a search string (or press Enter to continue): ")
		if !ok || next == "" {
			return notes
		}
		query = next
	}
}

// pickNote asks for a 1-based note number, re-prompting on bad input. ok is
// false when the user backs out with an empty input.
func (r *REPL) pickNote(notes []*models.Note, action string) (*models.Note, bool) {
	for {
		value, ok := r.ask(fmt.Sprintf(
			"Enter the number of the note to %s 1-%d (or press Enter to exit): ", action, len(notes)))
		if !ok || value == "" {
			return nil, false
		}

		idx, err := strconv.Atoi(value)
		if err != nil {
			r.presenter.Println(r.presenter.Warning("Please enter a valid number."))
			continue
		}
		if idx < 1 || idx > len(notes) {
			r.presenter.Println(r.presenter.Warning("Invalid number. Try again."))
			continue
		}
		return notes[idx-1], true
	}
}

func (r *REPL) noteDel(args []string) (string, error) {
	notes := r.narrowNotes(strings.Join(args, " "))
	if len(notes) == 0 {
		return "No notes to delete. Deletion cancelled.", nil
	}

	note, ok := r.pickNote(notes, "delete")
	if !ok {
		return cancelledMessage, nil
	}

	deleted, err := r.repository.DeleteNote(note.ID)
	if err != nil {
		return "", err
	}
	r.presenter.Println(r.presenter.Success("Note deleted:"))
	return deleted.String(), nil
}

func (r *REPL) noteList(args []string) (string, error) {
	r.narrowNotes(strings.Join(args, " "))
	return "", nil
}

func (r *REPL) noteEdit(args []string) (string, error) {
	notes := r.narrowNotes(strings.Join(args, " "))
	if len(notes) == 0 {
		return "No notes to edit. Edit cancelled.", nil
	}

	note, ok := r.pickNote(notes, "edit")
	if !ok {
		return "Edit cancelled.", nil
	}

	r.presenter.Println(r.presenter.Info("Editing..."))
	r.presenter.Println(note.String())

	newText, _ := r.ask("Enter a new note text (or press Enter to keep it): ")
	rawTags, _ := r.ask("Enter new tags separated by commas (or press Enter to keep them): ")

	updated, err := r.repository.EditNote(note.ID, newText, splitTags(rawTags))
	if err != nil {
		return "", err
	}
	r.presenter.Println(r.presenter.Success("Note updated:"))
	return updated.String(), nil
}

func (r *REPL) tagNotes(_ []string) (string, error) {
	r.presenter.PrintTagGroups(r.repository.NotesByTag())
	return "", nil
}
