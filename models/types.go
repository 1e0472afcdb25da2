// ABOUTME: Data models for address book entities
// ABOUTME: Defines Contact and Note structs with field mutators
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is identified by its display name. The name is the case-sensitive
// natural key inside the repository; renaming goes through the repository so
// the key stays consistent.
type Contact struct {
	Name     string    `json:"name"`
	Phones   []Phone   `json:"phones,omitempty"`
	Emails   []Email   `json:"emails,omitempty"`
	Address  string    `json:"address,omitempty"`
	Birthday *Birthday `json:"birthday,omitempty"`
}

func NewContact(name string) (*Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	return &Contact{Name: name}, nil
}

// AddPhone validates and appends a phone number.
func (c *Contact) AddPhone(raw string) error {
	phone, err := NewPhone(raw)
	if err != nil {
		return err
	}
	c.Phones = append(c.Phones, phone)
	return nil
}

// FindPhone reports whether the contact holds the given canonical value.
func (c *Contact) FindPhone(value string) bool {
	for _, p := range c.Phones {
		if string(p) == value {
			return true
		}
	}
	return false
}

// EditPhone replaces an existing phone in place, keeping its position.
func (c *Contact) EditPhone(oldValue, raw string) error {
	phone, err := NewPhone(raw)
	if err != nil {
		return err
	}
	for i, p := range c.Phones {
		if string(p) == oldValue {
			c.Phones[i] = phone
			return nil
		}
	}
	return fmt.Errorf("phone %s: %w", oldValue, ErrNotFound)
}

// RemovePhone deletes a phone by its canonical value.
func (c *Contact) RemovePhone(value string) error {
	for i, p := range c.Phones {
		if string(p) == value {
			c.Phones = append(c.Phones[:i], c.Phones[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("phone %s: %w", value, ErrNotFound)
}

func (c *Contact) AddEmail(raw string) error {
	email, err := NewEmail(raw)
	if err != nil {
		return err
	}
	c.Emails = append(c.Emails, email)
	return nil
}

func (c *Contact) FindEmail(value string) bool {
	for _, e := range c.Emails {
		if string(e) == value {
			return true
		}
	}
	return false
}

func (c *Contact) EditEmail(oldValue, raw string) error {
	email, err := NewEmail(raw)
	if err != nil {
		return err
	}
	for i, e := range c.Emails {
		if string(e) == oldValue {
			c.Emails[i] = email
			return nil
		}
	}
	return fmt.Errorf("email %s: %w", oldValue, ErrNotFound)
}

func (c *Contact) SetAddress(address string) {
	c.Address = address
}

func (c *Contact) SetBirthday(raw string) error {
	birthday, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	c.Birthday = birthday
	return nil
}

// FieldValues returns every textual field of the contact. The search engine
// matches against these, individually for fuzzy scoring and joined for exact
// substring search.
func (c *Contact) FieldValues() []string {
	fields := []string{c.Name}
	for _, p := range c.Phones {
		fields = append(fields, string(p))
	}
	for _, e := range c.Emails {
		fields = append(fields, string(e))
	}
	if c.Address != "" {
		fields = append(fields, c.Address)
	}
	if c.Birthday != nil {
		fields = append(fields, c.Birthday.String())
	}
	return fields
}

func (c *Contact) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Contact name: %s", c.Name)
	if len(c.Phones) > 0 {
		parts := make([]string, len(c.Phones))
		for i, p := range c.Phones {
			parts[i] = string(p)
		}
		fmt.Fprintf(&sb, ", phones: %s", strings.Join(parts, "; "))
	}
	if len(c.Emails) > 0 {
		parts := make([]string, len(c.Emails))
		for i, e := range c.Emails {
			parts[i] = string(e)
		}
		fmt.Fprintf(&sb, ", emails: %s", strings.Join(parts, "; "))
	}
	if c.Address != "" {
		fmt.Fprintf(&sb, ", address: %s", c.Address)
	}
	if c.Birthday != nil {
		fmt.Fprintf(&sb, ", birthday: %s", c.Birthday)
	}
	return sb.String()
}

// Note is free text plus tags. Identity is the generated ID, never the
// content: two notes with the same text and tags are distinct entities.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNote(text string, tags []string) *Note {
	return &Note{
		ID:        uuid.New(),
		Text:      text,
		Tags:      tags,
		CreatedAt: time.Now(),
	}
}

// Matches reports whether the lower-cased query appears in the note text or
// any tag. An empty query matches everything.
func (n *Note) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Text), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (n *Note) String() string {
	if len(n.Tags) == 0 {
		return n.Text
	}
	return fmt.Sprintf("%s [tags: %s]", n.Text, strings.Join(n.Tags, ", "))
}
