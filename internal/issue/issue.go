// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	LockfileNotFoundId Id = iota + 1
	RecipesDirNotFoundId
	ToolFailedId
	ConfigLoadFailedId
	AnalyzerWarningsId
)

// MarkdownMsg is markdown help text rendered for the terminal.
type MarkdownMsg string

// Issue is a known failure mode with rendered guidance.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue text rendered with glamour for the given style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	lockfileNotFoundIssue = &Issue{
		id: LockfileNotFoundId,
		mdMsg: `
# No lockfile found!

stoker reads the dependency lockfile to learn the resolved version of every
third-party package.

## Things you can try:
- Run stoker from the repository root (the lockfile path is relative)
- Generate the lockfile with your dependency resolver
- Point stoker at the right file:
~~~
$ stoker uprev --lockfile path/to/deps.lock
~~~
- Or set it permanently in your config:
~~~cue
lockfile: "third_party/deps.lock"
~~~`,
	}

	recipesDirNotFoundIssue = &Issue{
		id: RecipesDirNotFoundId,
		mdMsg: `
# Recipes directory not found!

Recipes live one directory per package, one file per version:
~~~
recipes/zlib/zlib-1.3.1.recipe
~~~

## Things you can try:
- Run stoker from the repository root
- Pass the directory explicitly:
~~~
$ stoker uprev --recipes path/to/recipes
~~~
- Or configure it:
~~~cue
recipes_dir: "third_party/recipes"
~~~`,
	}

	toolFailedIssue = &Issue{
		id: ToolFailedId,
		mdMsg: `
# External tool failed!

A recipe mutation succeeded but the follow-up tool (manifest regeneration or
lock update) exited non-zero, so the tree may be partially updated.

## Things you can try:
- Re-run the printed command by hand to see its full output
- Check that the tool is installed and on PATH
- Adjust the configured command:
~~~cue
tools: {
	manifest: "forge manifest"
	lock:     "forge pin"
}
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Configuration file locations:
- Linux: ~/.config/stoker/config.cue
- macOS: ~/Library/Application Support/stoker/config.cue
- Windows: %APPDATA%\stoker\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ stoker config init
~~~
- Check the file against the schema with:
~~~
$ stoker config show
~~~
- Remove the config file to fall back to defaults`,
	}

	analyzerWarningsIssue = &Issue{
		id: AnalyzerWarningsId,
		mdMsg: `
# Analyzer reported warnings!

The lint run fails when the analyzer emits any warning that is not on the
built-in suppression list.

## Things you can try:
- Fix the reported warnings (preferred)
- Re-run with extra analyzer arguments after ` + "`--`" + `:
~~~
$ stoker lint -- --cap-lints warn
~~~`,
	}

	issues = map[Id]*Issue{
		lockfileNotFoundIssue.Id():   lockfileNotFoundIssue,
		recipesDirNotFoundIssue.Id(): recipesDirNotFoundIssue,
		toolFailedIssue.Id():         toolFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		analyzerWarningsIssue.Id():   analyzerWarningsIssue,
	}
)

// Values returns all catalog entries, sorted by id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
