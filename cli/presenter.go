// ABOUTME: User-facing output formatting
// ABOUTME: Lipgloss styles plus contact, birthday, and note rendering
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/abook/birthday"
	"github.com/harperreed/abook/models"
	"github.com/harperreed/abook/repo"
)

var (
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle      = lipgloss.NewStyle().Faint(true)
)

// Presenter renders all user-facing output. Handlers never print directly,
// which keeps the REPL testable against a buffer.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Success(message string) string { return successStyle.Render(message) }
func (p *Presenter) Error(message string) string   { return errorStyle.Render(message) }
func (p *Presenter) Info(message string) string    { return infoStyle.Render(message) }
func (p *Presenter) Warning(message string) string { return warningStyle.Render(message) }
func (p *Presenter) Hint(message string) string    { return hintStyle.Render(message) }

func (p *Presenter) Println(message string) {
	fmt.Fprintln(p.out, message)
}

func (p *Presenter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Presenter) rule(char string) {
	fmt.Fprintln(p.out, headerStyle.Render(strings.Repeat(char, 80)))
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func (p *Presenter) field(label, value string) {
	fmt.Fprintf(p.out, "      %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-14s", label+":")),
		valueStyle.Render(orDash(value)))
}

// PrintContactsTable renders one block per contact with all fields.
func (p *Presenter) PrintContactsTable(contacts []*models.Contact) {
	if len(contacts) == 0 {
		p.Println(p.Info("No contacts stored."))
		return
	}

	p.rule("=")
	for i, contact := range contacts {
		fmt.Fprintf(p.out, "%s %s\n",
			warningStyle.Render(fmt.Sprintf("%-4d", i+1)),
			highlightStyle.Render(contact.Name))

		phones := make([]string, len(contact.Phones))
		for j, phone := range contact.Phones {
			phones[j] = string(phone)
		}
		emails := make([]string, len(contact.Emails))
		for j, email := range contact.Emails {
			emails[j] = string(email)
		}

		p.field("Phones", strings.Join(phones, "; "))
		p.field("Emails", strings.Join(emails, "; "))
		p.field("Address", contact.Address)
		if contact.Birthday != nil {
			p.field("Birthday", contact.Birthday.String())
		} else {
			p.field("Birthday", "")
		}
		p.rule("-")
	}
	p.Println(p.Info(fmt.Sprintf("Total contacts: %d", len(contacts))))
}

// PrintBirthdaysTable renders birthday query results with age, jubilee, and
// weekend-shift annotations, plus summary statistics.
func (p *Presenter) PrintBirthdaysTable(records []birthday.Record, days int) {
	if len(records) == 0 {
		p.Println(p.Warning(fmt.Sprintf("No contacts have birthdays in the next %d days.", days)))
		return
	}

	p.rule("=")
	jubilees, bigJubilees, shifted := 0, 0, 0
	for i, record := range records {
		fmt.Fprintf(p.out, "%s %s\n",
			warningStyle.Render(fmt.Sprintf("%-4d", i+1)),
			highlightStyle.Render(record.Name))

		age := fmt.Sprintf("%d years", record.Age)
		switch record.JubileeType {
		case birthday.JubileeBig:
			age += " (BIG JUBILEE)"
		case birthday.JubileeRegular:
			age += " (Jubilee)"
		}
		p.field("Age", age)
		p.field("Birthday", fmt.Sprintf("%s %s", record.ActualWeekday, record.ActualDate))
		if record.IsShifted {
			p.field("Congratulate", fmt.Sprintf("%s %s (shifted from %s)",
				record.Weekday, record.Date, record.ShiftReason))
			shifted++
		}
		p.field("Phone", record.Phone)
		p.field("Email", record.Email)
		p.rule("-")

		if record.IsJubilee {
			jubilees++
		}
		if record.JubileeType == birthday.JubileeBig {
			bigJubilees++
		}
	}

	stats := fmt.Sprintf("Total: %d birthdays", len(records))
	if jubilees > 0 {
		stats += fmt.Sprintf(" | Jubilees: %d (%d big, %d regular)",
			jubilees, bigJubilees, jubilees-bigJubilees)
	}
	if shifted > 0 {
		stats += fmt.Sprintf(" | Weekend shifts: %d", shifted)
	}
	p.Println(p.Info(stats))
}

// PrintNotes renders a numbered note listing under an optional header.
func (p *Presenter) PrintNotes(notes []*models.Note, header string) {
	if len(notes) == 0 {
		p.Println(p.Warning("No notes to show."))
		return
	}
	if header != "" {
		p.Println(p.Info(header))
	}
	for i, note := range notes {
		fmt.Fprintf(p.out, "%s %s\n",
			warningStyle.Render(fmt.Sprintf("%d.", i+1)), note)
	}
}

// PrintTagGroups renders notes bucketed by tag, untagged notes last.
func (p *Presenter) PrintTagGroups(groups []repo.TagGroup) {
	if len(groups) == 0 {
		p.Println(p.Warning("No notes to show."))
		return
	}
	for _, group := range groups {
		if group.Tag == "" {
			p.Println(p.Info("No tags:"))
		} else {
			p.Println(p.Info("Tag: " + group.Tag))
		}
		for _, note := range group.Notes {
			fmt.Fprintf(p.out, "  %s\n", note)
		}
	}
}

// PrintWelcome shows the banner and the command reference.
func (p *Presenter) PrintWelcome() {
	p.Println(headerStyle.Render("Welcome to the assistant bot!"))
	p.PrintHelp()
}

// PrintHelp lists every command with a short description.
func (p *Presenter) PrintHelp() {
	rows := [][2]string{
		{"add", "Add a contact"},
		{"show", "Show a specific contact"},
		{"all", "Show all contacts"},
		{"search-contacts", "Search contacts"},
		{"change", "Change contact information"},
		{"rename", "Rename a contact"},
		{"delete", "Delete a contact"},
		{"delete-phone", "Delete a phone number"},
		{"birthdays", "List birthdays in N days, on a date, or today"},
		{"note-add, na", "Add note"},
		{"note-del, nd", "Delete note"},
		{"note-list, nl", "List note(s)"},
		{"note-edit, ne", "Edit note"},
		{"tag", "Group notes by tag"},
		{"help", "Show this message"},
		{"exit, quit, close", "Save and exit"},
	}

	p.rule("-")
	for _, row := range rows {
		fmt.Fprintf(p.out, "  %s %s\n",
			highlightStyle.Render(fmt.Sprintf("%-18s", row[0])),
			row[1])
	}
	p.rule("-")
}
