// ABOUTME: SQLite storage backend
// ABOUTME: Persists the repository snapshot in a relational schema with WAL mode
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/abook/models"
	"github.com/harperreed/abook/repo"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	name TEXT PRIMARY KEY,
	address TEXT,
	birthday TEXT,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contact_phones (
	contact_name TEXT NOT NULL,
	value TEXT NOT NULL,
	position INTEGER NOT NULL,
	FOREIGN KEY (contact_name) REFERENCES contacts(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contact_phones_name ON contact_phones(contact_name);

CREATE TABLE IF NOT EXISTS contact_emails (
	contact_name TEXT NOT NULL,
	value TEXT NOT NULL,
	position INTEGER NOT NULL,
	FOREIGN KEY (contact_name) REFERENCES contacts(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contact_emails_name ON contact_emails(contact_name);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS note_tags (
	note_id TEXT NOT NULL,
	value TEXT NOT NULL,
	position INTEGER NOT NULL,
	FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_note_tags_note ON note_tags(note_id);
`

// SQLiteStore snapshots the whole repository into a SQLite file. Each save
// rewrites the full graph in one transaction; there is exactly one session
// per file, so no finer granularity is needed.
type SQLiteStore struct {
	path string
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single connection avoids database locked errors
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteStore) Save(snapshot *repo.Snapshot) error {
	db, err := s.open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	for _, table := range []string{"note_tags", "notes", "contact_emails", "contact_phones", "contacts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, contact := range snapshot.Contacts {
		var birthday *string
		if contact.Birthday != nil {
			v := contact.Birthday.String()
			birthday = &v
		}
		_, err := tx.Exec(`
			INSERT INTO contacts (name, address, birthday, position)
			VALUES (?, ?, ?, ?)
		`, contact.Name, contact.Address, birthday, pos)
		if err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}

		for i, phone := range contact.Phones {
			_, err := tx.Exec(`
				INSERT INTO contact_phones (contact_name, value, position) VALUES (?, ?, ?)
			`, contact.Name, string(phone), i)
			if err != nil {
				return fmt.Errorf("failed to insert phone: %w", err)
			}
		}
		for i, email := range contact.Emails {
			_, err := tx.Exec(`
				INSERT INTO contact_emails (contact_name, value, position) VALUES (?, ?, ?)
			`, contact.Name, string(email), i)
			if err != nil {
				return fmt.Errorf("failed to insert email: %w", err)
			}
		}
	}

	for pos, note := range snapshot.Notes {
		_, err := tx.Exec(`
			INSERT INTO notes (id, text, created_at, position) VALUES (?, ?, ?, ?)
		`, note.ID.String(), note.Text, note.CreatedAt, pos)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}
		for i, tag := range note.Tags {
			_, err := tx.Exec(`
				INSERT INTO note_tags (note_id, value, position) VALUES (?, ?, ?)
			`, note.ID.String(), tag, i)
			if err != nil {
				return fmt.Errorf("failed to insert tag: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Load() (*repo.Snapshot, error) {
	db, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	snapshot := &repo.Snapshot{}

	contacts, err := s.loadContacts(db)
	if err != nil {
		return nil, err
	}
	snapshot.Contacts = contacts

	notes, err := s.loadNotes(db)
	if err != nil {
		return nil, err
	}
	snapshot.Notes = notes

	return snapshot, nil
}

func (s *SQLiteStore) loadContacts(db *sql.DB) ([]*models.Contact, error) {
	rows, err := db.Query(`SELECT name, address, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		var name string
		var address, birthday sql.NullString
		if err := rows.Scan(&name, &address, &birthday); err != nil {
			return nil, err
		}

		contact := &models.Contact{Name: name, Address: address.String}
		if birthday.Valid && birthday.String != "" {
			parsed, err := models.NewBirthday(birthday.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt birthday for %q: %w", name, err)
			}
			contact.Birthday = parsed
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, contact := range contacts {
		phones, err := s.loadValues(db, "contact_phones", contact.Name)
		if err != nil {
			return nil, err
		}
		for _, v := range phones {
			// Stored values are already canonical; they only enter through
			// models.NewPhone.
			contact.Phones = append(contact.Phones, models.Phone(v))
		}

		emails, err := s.loadValues(db, "contact_emails", contact.Name)
		if err != nil {
			return nil, err
		}
		for _, v := range emails {
			contact.Emails = append(contact.Emails, models.Email(v))
		}
	}

	return contacts, nil
}

func (s *SQLiteStore) loadValues(db *sql.DB, table, contactName string) ([]string, error) {
	rows, err := db.Query(
		"SELECT value FROM "+table+" WHERE contact_name = ? ORDER BY position", contactName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *SQLiteStore) loadNotes(db *sql.DB) ([]*models.Note, error) {
	rows, err := db.Query(`SELECT id, text, created_at FROM notes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var id, text string
		var createdAt time.Time
		if err := rows.Scan(&id, &text, &createdAt); err != nil {
			return nil, err
		}
		noteID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("corrupt note id %q: %w", id, err)
		}
		notes = append(notes, &models.Note{ID: noteID, Text: text, CreatedAt: createdAt})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, note := range notes {
		tagRows, err := db.Query(
			`SELECT value FROM note_tags WHERE note_id = ? ORDER BY position`, note.ID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to load tags: %w", err)
		}
		for tagRows.Next() {
			var tag string
			if err := tagRows.Scan(&tag); err != nil {
				tagRows.Close()
				return nil, err
			}
			note.Tags = append(note.Tags, tag)
		}
		if err := tagRows.Err(); err != nil {
			tagRows.Close()
			return nil, err
		}
		tagRows.Close()
	}

	return notes, nil
}
