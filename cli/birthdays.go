// ABOUTME: Birthday command handler
// ABOUTME: Dispatches to the window, fixed-date, and today queries
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/abook/birthday"
)

// showBirthdays handles `birthdays` with no argument (today), a day count,
// or a DD.MM.YYYY date.
func (r *REPL) showBirthdays(args []string) (string, error) {
	if len(args) == 0 {
		records := r.engine.FindToday()
		if len(records) == 0 {
			return r.presenter.Warning("No contacts have birthdays today."), nil
		}
		r.presenter.PrintBirthdaysTable(records, 0)
		return "", nil
	}

	arg := args[0]
	if days, err := strconv.Atoi(arg); err == nil {
		records, err := r.engine.FindNear(days)
		if err != nil {
			return "", err
		}
		r.presenter.PrintBirthdaysTable(records, days)
		return "", nil
	}

	if strings.Count(arg, ".") == 2 {
		records, err := r.engine.FindOnDateString(arg)
		if err != nil {
			return "", err
		}
		if len(records) == 0 {
			return r.presenter.Warning(fmt.Sprintf("No contacts have birthdays on %s.", arg)), nil
		}
		r.presenter.PrintBirthdaysTable(records, 0)
		return "", nil
	}

	return "", fmt.Errorf("%w: %q is neither a number of days nor a DD.MM.YYYY date",
		birthday.ErrInvalidArgument, arg)
}

func (r *REPL) help(_ []string) (string, error) {
	r.presenter.PrintHelp()
	return "", nil
}
