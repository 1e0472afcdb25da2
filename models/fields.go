// ABOUTME: Validated field value types for contacts
// ABOUTME: Smart constructors for phone, email, and birthday values
package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the display and wire format for birthdays.
const DateLayout = "02.01.2006"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Phone is a canonical 12-digit number with the "38" country code.
// Values only come out of NewPhone.
type Phone string

// NewPhone normalizes a raw phone string: non-digit characters are dropped,
// and "38" is prepended unless the number already starts with "3". The result
// must be exactly 12 digits.
func NewPhone(raw string) (Phone, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Field: "phone", Message: "phone number is empty"}
	}

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	cleaned := digits.String()
	if !strings.HasPrefix(cleaned, "3") {
		cleaned = "38" + cleaned
	}

	if len(cleaned) != 12 {
		return "", &ValidationError{Field: "phone", Message: "invalid phone number, format: 380XXXXXXXXX"}
	}
	return Phone(cleaned), nil
}

// Email is a validated address of the local@domain.tld shape.
type Email string

func NewEmail(raw string) (Email, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Field: "email", Message: "please enter email"}
	}
	if !emailPattern.MatchString(raw) {
		return "", &ValidationError{Field: "email", Message: "email is not valid"}
	}
	return Email(raw), nil
}

// Birthday is a day-precision calendar date. Both storage formats round-trip
// it through the DD.MM.YYYY string form, so a reload always hands the
// birthday engine the same type it saw during the session.
type Birthday struct {
	date time.Time
}

func NewBirthday(raw string) (*Birthday, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, &ValidationError{Field: "birthday", Message: "invalid date format, use DD.MM.YYYY"}
	}
	return &Birthday{date: t}, nil
}

// Date returns the birth date at midnight UTC.
func (b *Birthday) Date() time.Time {
	return b.date
}

func (b *Birthday) String() string {
	return b.date.Format(DateLayout)
}

func (b *Birthday) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Birthday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewBirthday(s)
	if err != nil {
		return err
	}
	b.date = parsed.date
	return nil
}
