package label

import (
	"strings"

	"lablink/pkg/taskboard"
)

// Separators for the two label renditions. The display form goes on screen
// and into the trailing CSV label column; the identifier form is used for the
// printable label file where spaces are unwelcome.
const (
	displaySeparator    = " - "
	identifierSeparator = "-"
)

// Compose renders the human-readable label for a task: template fields joined
// with " - ", missing values as "N/A", and a leading "#" when the template
// asks for one. Deterministic and side-effect free; the on-screen preview and
// CSV generation share this one code path.
func Compose(t taskboard.Task, tpl Template) string {
	return compose(t, tpl, displaySeparator)
}

// ComposeID renders the CSV-identifier form of the label: the same resolved
// values joined with "-".
func ComposeID(t taskboard.Task, tpl Template) string {
	return compose(t, tpl, identifierSeparator)
}

func compose(t taskboard.Task, tpl Template, sep string) string {
	parts := make([]string, len(tpl.Fields))
	for i, f := range tpl.Fields {
		parts[i] = resolveField(t, f)
	}
	s := strings.Join(parts, sep)
	if tpl.HashPrefix {
		return "#" + s
	}
	return s
}
