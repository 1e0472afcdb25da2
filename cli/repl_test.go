// ABOUTME: Scripted session tests for the command loop
// ABOUTME: Drives the REPL with canned input and checks the rendered output
package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/abook/repo"
)

// runSession feeds the REPL a scripted set of input lines and returns
// everything it printed.
func runSession(t *testing.T, repository *repo.Repository, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	New(repository, nil, in, &out).Run()
	return out.String()
}

func TestRunExit(t *testing.T) {
	out := runSession(t, repo.New(), "exit")
	assert.Contains(t, out, "Welcome to the assistant bot!")
	assert.Contains(t, out, "Good bye!")
}

func TestRunEOFEndsSession(t *testing.T) {
	var out bytes.Buffer
	New(repo.New(), nil, strings.NewReader(""), &out).Run()
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunEmptyInputPrompt(t *testing.T) {
	out := runSession(t, repo.New(), "", "quit")
	assert.Contains(t, out, `Please enter a command or use "help"`)
}

func TestRunUnknownCommandSuggests(t *testing.T) {
	out := runSession(t, repo.New(), "badcmd", "close")
	assert.Contains(t, out, `Did you mean "add"?`)
}

func TestRunNoteLifecycle(t *testing.T) {
	repository := repo.New()
	out := runSession(t, repository,
		"na remember the milk",
		"shopping", // tags prompt
		"exit",
	)
	assert.Contains(t, out, "Note added:")
	assert.Contains(t, out, "remember the milk [tags: shopping]")
	require.Len(t, repository.Notes(), 1)
}

func TestRunShowMissingContact(t *testing.T) {
	out := runSession(t, repo.New(), "show", "Nobody", "exit")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "not found")
}

func TestRunBirthdaysBadArgument(t *testing.T) {
	out := runSession(t, repo.New(), "birthdays nonsense", "exit")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "invalid argument")
}
