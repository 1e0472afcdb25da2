// ABOUTME: Command suggestion for mistyped input
// ABOUTME: Ranks known commands by fuzzy similarity to what the user typed
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/abook/fuzzy"
)

// AvailableCommands is the full command surface, aliases included, scored by
// the suggester.
var AvailableCommands = []string{
	"add",
	"show",
	"all",
	"change",
	"rename",
	"delete",
	"delete-phone",
	"note-add",
	"na",
	"note-del",
	"nd",
	"note-list",
	"nl",
	"note-edit",
	"ne",
	"tag",
	"search-contacts",
	"birthdays",
	"help",
	"close",
	"exit",
	"quit",
}

// suggestionThreshold drops candidates that are not meaningfully similar;
// confidentThreshold switches to a single "did you mean" suggestion.
const (
	suggestionThreshold = 0.3
	confidentThreshold  = 0.6
	maxSuggestions      = 3
)

// Suggestion pairs a command with its similarity to the user's input.
type Suggestion struct {
	Command string
	Score   float64
}

// SuggestCommands scores every known command against the input, keeps those
// above the threshold, and returns at most three, best first. Empty input
// yields nothing.
func SuggestCommands(input string) []Suggestion {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil
	}

	suggestions := make([]Suggestion, 0, len(AvailableCommands))
	for _, command := range AvailableCommands {
		suggestions = append(suggestions, Suggestion{
			Command: command,
			Score:   fuzzy.Similarity(input, command),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	var kept []Suggestion
	for _, s := range suggestions {
		if s.Score <= suggestionThreshold {
			break
		}
		kept = append(kept, s)
		if len(kept) == maxSuggestions {
			break
		}
	}
	return kept
}

// suggestionMessage builds the unknown-command reply, with a single
// confident suggestion or a short candidate list.
func (r *REPL) suggestionMessage(input string) string {
	suggestions := SuggestCommands(input)
	if len(suggestions) == 0 {
		return fmt.Sprintf("Unknown command: %q. Type 'help' for available commands.", input)
	}

	if suggestions[0].Score > confidentThreshold {
		return fmt.Sprintf("Unknown command: %q. Did you mean %q?", input, suggestions[0].Command)
	}

	commands := make([]string, len(suggestions))
	for i, s := range suggestions {
		commands[i] = s.Command
	}
	return fmt.Sprintf("Unknown command: %q. Did you mean one of: %s?",
		input, strings.Join(commands, ", "))
}
