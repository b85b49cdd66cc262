// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	FormulaParseErrorId
	UnknownElementId
	MismatchedParenthesesId
	EmptyFormulaId
	ConfigLoadFailedId
	PermissionDeniedId
	FormulaTooLongId
	InvalidOutputFormatId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation pages about this issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The file with molecular formulas could not be opened.

## Things you can try:
- Check the path for typos
- Pass the formulas through standard input instead:
~~~
$ cat formulas.txt | chemikaze batch -
~~~`,
	}

	formulaParseErrorIssue = &Issue{
		id: FormulaParseErrorId,
		mdMsg: `
# Failed to parse molecular formula!

The formula contains characters or a structure that cannot be read.

## What a formula may contain:
- Element symbols: an uppercase letter, optionally followed by a lowercase one (` + "`Na`" + `, ` + "`Cl`" + `)
- Coefficients after a symbol or a group: ` + "`H2O`" + `, ` + "`(CH3)2`" + `
- A coefficient in front of a component: ` + "`CuSO4.5H2O`" + `
- Groups in ` + "`()`" + ` or ` + "`[]`" + `, components separated by ` + "`.`" + `
- A trailing charge, which is ignored: ` + "`[NH4]+`" + `, ` + "`[SO4]2-`" + `

## Things you can try:
- Remove spaces inside the formula; only leading and trailing spaces are allowed
- Replace characters such as ` + "`=`" + ` or ` + "`#`" + ` that describe bonds rather than composition`,
		extLinks: []HttpLink{"https://en.wikipedia.org/wiki/Chemical_formula"},
	}

	unknownElementIssue = &Issue{
		id: UnknownElementId,
		mdMsg: `
# Unknown chemical symbol!

An element symbol in the formula is not in the element table.

## Things you can try:
- Check capitalization: ` + "`CO`" + ` is carbon and oxygen, ` + "`Co`" + ` is cobalt
- List the supported symbols:
~~~
$ chemikaze elements
~~~`,
		extLinks: []HttpLink{"https://en.wikipedia.org/wiki/List_of_chemical_elements"},
	}

	mismatchedParenthesesIssue = &Issue{
		id: MismatchedParenthesesId,
		mdMsg: `
# Mismatched parentheses!

Every ` + "`(`" + ` or ` + "`[`" + ` needs a matching closing bracket after it, and no
bracket may close before it was opened.

## Things you can try:
- Count the opening and closing brackets
- Look at the position marked under the formula`,
	}

	emptyFormulaIssue = &Issue{
		id: EmptyFormulaId,
		mdMsg: `
# Empty molecular formula!

The formula is empty or consists of spaces only.

## Things you can try:
- Pass at least one element symbol, e.g. ` + "`H2O`" + `
- In batch mode, enable skipping of blank lines:
~~~cue
batch: {
	skip_blank: true
}
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show the configuration that is in effect:
~~~
$ chemikaze config show
~~~

- Write a fresh configuration file with the defaults:
~~~
$ chemikaze config init
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read or write a file needed for this operation.

## Things you can try:
- Check file/directory permissions
- Write reports to a directory you own`,
	}

	formulaTooLongIssue = &Issue{
		id: FormulaTooLongId,
		mdMsg: `
# Formula too long!

Scratch space for a formula is limited, and this formula exceeds the limit.
Processing stopped.

## Things you can try:
- Check that lines are separated by newlines; a file without line breaks is read as a single formula
- Raise the limit:
~~~cue
batch: {
	max_formula_length: 4194304
}
~~~`,
	}

	invalidOutputFormatIssue = &Issue{
		id: InvalidOutputFormatId,
		mdMsg: `
# Invalid output format!

## Supported formats:
- ` + "`text`" + `: the canonical formula, e.g. ` + "`H2O`" + `
- ` + "`json`" + `, ` + "`yaml`" + `, ` + "`toml`" + `: element counts in catalogue order

~~~
$ chemikaze parse --format json H2O
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():          fileNotFoundIssue,
		formulaParseErrorIssue.Id():     formulaParseErrorIssue,
		unknownElementIssue.Id():        unknownElementIssue,
		mismatchedParenthesesIssue.Id(): mismatchedParenthesesIssue,
		emptyFormulaIssue.Id():          emptyFormulaIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
		formulaTooLongIssue.Id():        formulaTooLongIssue,
		invalidOutputFormatIssue.Id():   invalidOutputFormatIssue,
	}
)

// Values returns every issue in the catalog sorted by id.
func Values() []*Issue {
	values := slices.Collect(maps.Values(issues))
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id - b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
