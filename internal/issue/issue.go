// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	// ConfigLoadFailedId is reported when a configuration file cannot be read or parsed.
	ConfigLoadFailedId Id = iota + 1
	// ConfigInvalidId is reported when configuration values are rejected.
	ConfigInvalidId
)

// StyleNoTTY renders markdown without colors, for pipes and tests.
const StyleNoTTY = "notty"

type (
	// Id identifies a catalog issue.
	Id int

	// MarkdownMsg is the markdown body of an issue guide.
	MarkdownMsg string

	// Issue is a user guide for one class of failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []string
	}
)

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# The configuration could not be loaded

gotopts reads ` + "`$GOTOPTS_CONFIG`" + ` when it is set, otherwise ` + "`config.cue`" + ` or
` + "`config.toml`" + ` from its configuration directory.

## Things you can try
- Check the file for syntax errors
- Unset ` + "`GOTOPTS_CONFIG`" + ` to fall back to the defaults
- Remove the file to use the built-in defaults`,
		docLinks: []string{"https://cuelang.org/docs/", "https://toml.io/en/v1.0.0"},
	}

	configInvalidIssue = &Issue{
		id: ConfigInvalidId,
		mdMsg: `
# A configuration value is not valid

## Accepted keys
- ` + "`delimiter`" + `: default token delimiter of the argument blob
- ` + "`help_option`" + `: help option template such as ` + "`-h|--help`" + `
- ` + "`show_help_on_no_arguments`" + `, ` + "`options_and_arguments_option`" + `, ` + "`badges`" + `, ` + "`colors`" + `: booleans
- ` + "`log_level`" + `: one of debug, info, warn, error, fatal`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.id: configLoadFailedIssue,
		configInvalidIssue.id:    configInvalidIssue,
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// DocLinks returns the reference links shown under the guide.
func (i *Issue) DocLinks() []string { return slices.Clone(i.docLinks) }

// Render renders the guide with the glamour style at stylePath.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + link + ">\n"
		}
	}
	return render(md, stylePath)
}

// Values returns every catalog issue ordered by id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

// Get returns the issue with id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// Explain writes err and, when it is an ActionableError linked to a catalog issue,
// the rendered guide for it.
func Explain(w io.Writer, err error, verbose bool, stylePath string) {
	var ae *ActionableError
	if !errors.As(err, &ae) {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, ae.Format(verbose))

	i := Get(ae.Issue)
	if i == nil {
		return
	}
	if guide, renderErr := i.Render(stylePath); renderErr == nil {
		fmt.Fprint(w, guide)
	}
}
