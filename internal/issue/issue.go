// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	VersionFileMissingId Id = iota + 1
	BuildToolNotFoundId
	PackagingToolNotFoundId
	HookScriptMissingId
	HookScriptInvalidId
	SourceArchiveMissingId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

// Issue is a known environment or configuration problem with canned markdown
// guidance. The 'check' command renders these for every failed probe.
type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links, may be empty
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

	versionFileMissingIssue = &Issue{
		id: VersionFileMissingId,
		mdMsg: `
# Version file not found!

The VERSION file could not be read, so there is nothing to stamp the
package with. Packaging never starts without it.

## Things you can try:
- Create a VERSION file next to where you run dreadfort-pkg:
~~~
$ echo "1.2.3" > VERSION
~~~
- Point at a different file via config:
~~~cue
version_file: "path/to/VERSION"
~~~`,
	}

	buildToolNotFoundIssue = &Issue{
		id: BuildToolNotFoundId,
		mdMsg: `
# Build tool not found!

The configured build tool could not be resolved on your PATH (or at its
configured path), so the source tarball cannot be produced.

## Things you can try:
- Check that the build script exists and is executable:
~~~
$ ls -l ./build.sh && chmod +x ./build.sh
~~~
- Override the tool via config:
~~~cue
build: tool: "./scripts/build.sh"
~~~`,
	}

	packagingToolNotFoundIssue = &Issue{
		id: PackagingToolNotFoundId,
		mdMsg: `
# Packaging tool not found!

fpm (or your configured packaging tool) is not on the PATH. It is the
external tool that turns the source tarball into a .deb.

## Things you can try:
- Install fpm:
~~~
$ gem install fpm
~~~
- Point at an alternative binary via config:
~~~cue
pkg: tool: "/opt/fpm/bin/fpm"
~~~`,
		extLinks: []HttpLink{"https://fpm.readthedocs.io/"},
	}

	hookScriptMissingIssue = &Issue{
		id: HookScriptMissingId,
		mdMsg: `
# Hook script missing!

One of the install hooks passed to the packaging tool does not exist.
fpm would bake a dangling reference into the package.

## Expected locations:
- pkg/post_install.deb.sh (run after install)
- pkg/post_remove.deb.sh (run after removal)

## Things you can try:
- Restore the script from version control
- Point at different scripts via the pkg.post_install and
  pkg.post_remove config options`,
	}

	hookScriptInvalidIssue = &Issue{
		id: HookScriptInvalidId,
		mdMsg: `
# Hook script has a syntax error!

A hook script does not parse as POSIX shell. dpkg would run it at
install time and fail the whole installation on the target machine.

## Things you can try:
- Check the reported line with a shell in no-exec mode:
~~~
$ sh -n pkg/post_install.deb.sh
~~~
- Fix the syntax and re-run 'dreadfort-pkg check'`,
	}

	sourceArchiveMissingIssue = &Issue{
		id: SourceArchiveMissingId,
		mdMsg: `
# Source archive not found!

The expected tarball (<name>_<version>.tar.gz) is not present yet. This
is only a problem if you skip the build step, which is what produces it.

## Things you can try:
- Run the full pipeline so the build step creates it:
~~~
$ dreadfort-pkg package
~~~
- Drop --skip-build if you passed it`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded!

Your config.cue file exists but failed to parse or validate.

## Things you can try:
- Check the file for CUE syntax errors
- Compare against the defaults:
~~~
$ dreadfort-pkg config show
~~~
- Regenerate a commented default file:
~~~
$ dreadfort-pkg config init --force
~~~`,
	}

	issues = map[Id]*Issue{
		versionFileMissingIssue.Id():    versionFileMissingIssue,
		buildToolNotFoundIssue.Id():     buildToolNotFoundIssue,
		packagingToolNotFoundIssue.Id(): packagingToolNotFoundIssue,
		hookScriptMissingIssue.Id():     hookScriptMissingIssue,
		hookScriptInvalidIssue.Id():     hookScriptInvalidIssue,
		sourceArchiveMissingIssue.Id():  sourceArchiveMissingIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
