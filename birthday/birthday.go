// ABOUTME: Birthday engine computing occurrences, shifts, and jubilees
// ABOUTME: Implements FindNear, FindOnDate, and FindToday queries
package birthday

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/abook/models"
)

// Jubilee classification labels.
const (
	JubileeNone    = ""
	JubileeRegular = "jubilee"
	JubileeBig     = "big jubilee"
)

// ErrInvalidArgument marks bad numeric or date arguments to a query.
var ErrInvalidArgument = errors.New("invalid argument")

// Source is the repository boundary the engine reads contacts through.
type Source interface {
	Contacts() []*models.Contact
}

// Record is the display-ready projection of one contact's birthday. Date and
// Weekday describe the congratulation day; ActualDate and ActualWeekday the
// occurrence itself.
type Record struct {
	Date          string
	Weekday       string
	ActualDate    string
	ActualWeekday string
	IsShifted     bool
	ShiftReason   string
	Name          string
	Age           int
	IsJubilee     bool
	JubileeType   string
	Phone         string
	Email         string
	Phones        []string
	Emails        []string
}

// Engine answers birthday queries over a contact source. It is stateless
// apart from its clock and owns no contact data.
type Engine struct {
	source Source
	clock  Clock
}

func NewEngine(source Source, clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{source: source, clock: clock}
}

// FindNear returns contacts whose next birthday occurrence falls within
// [today, today+days], sorted by congratulation date then name. A Sunday
// birthday congratulated on Monday sorts with the other Monday
// congratulations, not by its raw occurrence date.
func (e *Engine) FindNear(days int) ([]Record, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be non-negative", ErrInvalidArgument)
	}

	today := e.today()
	var projections []projection

	for _, contact := range e.source.Contacts() {
		if contact.Birthday == nil {
			continue
		}
		p := project(contact, today)
		offset := int(p.occurrence.Sub(today).Hours() / 24)
		if offset >= 0 && offset <= days {
			projections = append(projections, p)
		}
	}

	sort.Slice(projections, func(i, j int) bool {
		ci, cj := projections[i].congratulation(), projections[j].congratulation()
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return strings.ToLower(projections[i].contact.Name) < strings.ToLower(projections[j].contact.Name)
	})

	return flatten(projections), nil
}

// FindOnDate returns contacts whose birthday day and month match the target
// date, ignoring its year, sorted by name.
func (e *Engine) FindOnDate(target time.Time) []Record {
	today := e.today()
	var projections []projection

	for _, contact := range e.source.Contacts() {
		if contact.Birthday == nil {
			continue
		}
		birth := contact.Birthday.Date()
		if birth.Day() == target.Day() && birth.Month() == target.Month() {
			projections = append(projections, project(contact, today))
		}
	}

	sort.Slice(projections, func(i, j int) bool {
		return strings.ToLower(projections[i].contact.Name) < strings.ToLower(projections[j].contact.Name)
	})

	return flatten(projections)
}

// FindOnDateString parses a DD.MM.YYYY target date and delegates to
// FindOnDate.
func (e *Engine) FindOnDateString(value string) ([]Record, error) {
	target, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected DD.MM.YYYY", ErrInvalidArgument, value)
	}
	return e.FindOnDate(target), nil
}

// FindToday returns contacts whose birthday is today.
func (e *Engine) FindToday() []Record {
	return e.FindOnDate(e.today())
}

// today is the current calendar date at midnight UTC; all engine arithmetic
// happens on such normalized dates.
func (e *Engine) today() time.Time {
	now := e.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

type projection struct {
	contact    *models.Contact
	birthDate  time.Time
	occurrence time.Time
}

func project(contact *models.Contact, today time.Time) projection {
	birth := contact.Birthday.Date()
	return projection{
		contact:    contact,
		birthDate:  birth,
		occurrence: nextOccurrence(birth, today),
	}
}

// nextOccurrence projects the birth date onto the earliest year whose
// occurrence is not before today.
func nextOccurrence(birth, today time.Time) time.Time {
	occurrence := replaceYear(birth, today.Year())
	if occurrence.Before(today) {
		occurrence = replaceYear(birth, today.Year()+1)
	}
	return occurrence
}

// replaceYear maps the birth date into the given year. Feb 29 becomes Feb 28
// in non-leap years; time.Date alone would normalize it to Mar 1.
func replaceYear(birth time.Time, year int) time.Time {
	day := birth.Day()
	if birth.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, birth.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func (p projection) congratulation() time.Time {
	switch p.occurrence.Weekday() {
	case time.Saturday:
		return p.occurrence.AddDate(0, 0, 2)
	case time.Sunday:
		return p.occurrence.AddDate(0, 0, 1)
	}
	return p.occurrence
}

func (p projection) isShifted() bool {
	return !p.congratulation().Equal(p.occurrence)
}

// shiftReason names the weekend day the occurrence fell on, empty when no
// shift happened.
func (p projection) shiftReason() string {
	if !p.isShifted() {
		return ""
	}
	return p.occurrence.Weekday().String()
}

// age is a plain year subtraction against the occurrence year, not adjusted
// for month/day precision.
func (p projection) age() int {
	return p.occurrence.Year() - p.birthDate.Year()
}

func (p projection) jubileeType() string {
	age := p.age()
	switch {
	case age <= 0:
		return JubileeNone
	case age%10 == 0:
		return JubileeBig
	case age%5 == 0:
		return JubileeRegular
	}
	return JubileeNone
}

func flatten(projections []projection) []Record {
	records := make([]Record, 0, len(projections))
	for _, p := range projections {
		phones := make([]string, len(p.contact.Phones))
		for i, phone := range p.contact.Phones {
			phones[i] = string(phone)
		}
		emails := make([]string, len(p.contact.Emails))
		for i, email := range p.contact.Emails {
			emails[i] = string(email)
		}

		congratulation := p.congratulation()
		jubilee := p.jubileeType()

		records = append(records, Record{
			Date:          congratulation.Format(models.DateLayout),
			Weekday:       congratulation.Weekday().String(),
			ActualDate:    p.occurrence.Format(models.DateLayout),
			ActualWeekday: p.occurrence.Weekday().String(),
			IsShifted:     p.isShifted(),
			ShiftReason:   p.shiftReason(),
			Name:          p.contact.Name,
			Age:           p.age(),
			IsJubilee:     jubilee != JubileeNone,
			JubileeType:   jubilee,
			Phone:         first(phones),
			Email:         first(emails),
			Phones:        phones,
			Emails:        emails,
		})
	}
	return records
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
