// ABOUTME: Interactive command loop
// ABOUTME: Reads commands, dispatches handlers, and keeps the session alive
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/abook/birthday"
	"github.com/harperreed/abook/models"
	"github.com/harperreed/abook/repo"
)

// REPL drives the interactive session. Every handler error is reduced to a
// one-line message here; only exit commands or end of input stop the loop.
type REPL struct {
	repository *repo.Repository
	engine     *birthday.Engine
	in         *bufio.Reader
	presenter  *Presenter
	commands   map[string]func(args []string) (string, error)
}

func New(repository *repo.Repository, clock birthday.Clock, in io.Reader, out io.Writer) *REPL {
	r := &REPL{
		repository: repository,
		engine:     birthday.NewEngine(repository, clock),
		in:         bufio.NewReader(in),
		presenter:  NewPresenter(out),
	}

	r.commands = map[string]func(args []string) (string, error){
		"add":             r.addContact,
		"show":            r.showContact,
		"all":             r.showAllContacts,
		"change":          r.changeContact,
		"rename":          r.renameContact,
		"delete":          r.deleteContact,
		"delete-phone":    r.deletePhone,
		"note-add":        r.noteAdd,
		"na":              r.noteAdd,
		"note-del":        r.noteDel,
		"nd":              r.noteDel,
		"note-list":       r.noteList,
		"nl":              r.noteList,
		"note-edit":       r.noteEdit,
		"ne":              r.noteEdit,
		"tag":             r.tagNotes,
		"search-contacts": r.searchContacts,
		"birthdays":       r.showBirthdays,
		"help":            r.help,
	}
	return r
}

// Run executes the command loop until an exit command or end of input.
func (r *REPL) Run() {
	r.presenter.PrintWelcome()

	for {
		r.presenter.Printf("%s ", r.presenter.Info("Enter a command:"))

		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			// Ctrl-D: unwind so main can save.
			r.presenter.Println("\n" + r.presenter.Info("Goodbye!"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			r.presenter.Println(`Please enter a command or use "help"`)
			continue
		}

		tokens := strings.Fields(line)
		command := strings.ToLower(tokens[0])
		args := tokens[1:]

		if command == "exit" || command == "quit" || command == "close" {
			r.presenter.Println("Good bye!")
			return
		}

		handler, ok := r.commands[command]
		if !ok {
			r.presenter.Println(r.suggestionMessage(command))
			continue
		}

		output, err := handler(args)
		if err != nil {
			r.presenter.Println(r.presenter.Error(formatError(err)))
			continue
		}
		if output != "" {
			r.presenter.Println(output)
		}
	}
}

func formatError(err error) string {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return "Validation Error: " + validation.Error()
	}
	return "Error: " + err.Error()
}

// ask prompts for one line of input. ok is false when input ended (Ctrl-D),
// which cancels the current interactive flow.
func (r *REPL) ask(label string) (string, bool) {
	r.presenter.Printf("%s", label)
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		r.presenter.Println("")
		return "", false
	}
	return strings.TrimSpace(line), true
}

// askRequired re-prompts until the user enters a non-empty value. Returns
// ok=false only when input ended.
func (r *REPL) askRequired(label, fieldName string) (string, bool) {
	for {
		value, ok := r.ask(label)
		if !ok {
			return "", false
		}
		if value != "" {
			return value, true
		}
		r.presenter.Println(r.presenter.Error(
			fmt.Sprintf("%s is required. Please enter a value.", fieldName)))
	}
}

// cancelled is the message shown when an interactive step is abandoned with
// an empty input.
const cancelledMessage = "Cancelled. Returning to main menu."
