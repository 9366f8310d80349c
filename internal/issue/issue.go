// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

const (
	ProjectDirectoryInvalidId Id = iota + 1
	ManifestInvalidId
	CompilerUnsupportedId
	CompilerNotFoundId
	CompilerFailedId
	ArtifactNotExecutableId
	ProjectPathInvalidId
	ProjectPathNotEmptyId
	VCSInitFailedId
	ConfigLoadFailedId
	PermissionDeniedId
	BuildTimedOutId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

var (
	render = glamour.Render

	projectDirectoryInvalidIssue = &Issue{
		id: ProjectDirectoryInvalidId,
		mdMsg: `
# This is not a cedar project!

A cedar project needs all of these next to each other:

- ` + "`cedar.toml`" + `
- ` + "`src/`" + `
- ` + "`include/`" + `
- ` + "`build/`" + `

## Things you can try:
- Run the command from the project root
- Create a project in an empty directory:
~~~
$ cedar init
~~~
- Or create a new one from scratch:
~~~
$ cedar new my-project
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# cedar.toml could not be read!

The manifest must be valid TOML with a ` + "`[meta]`" + ` table holding
` + "`name`" + ` and a ` + "`[build]`" + ` table holding ` + "`compiler`" + ` and ` + "`cflags`" + `.

## Example cedar.toml:
~~~toml
[meta]
name = "hello"
version = "0.1.0"

[build]
compiler = "GCC"
cflags = ["-Wall", "-Wextra"]
~~~`,
	}

	compilerUnsupportedIssue = &Issue{
		id: CompilerUnsupportedId,
		mdMsg: `
# Unsupported compiler!

cedar knows how to drive these compilers:

| build.compiler           | executable |
|--------------------------|------------|
| GCC, gcc                 | gcc        |
| CLANG, clang, Clang      | clang      |

## Things you can try:
- Set ` + "`build.compiler`" + ` in cedar.toml to one of the values above`,
	}

	compilerNotFoundIssue = &Issue{
		id: CompilerNotFoundId,
		mdMsg: `
# The compiler is not installed!

cedar could not start the compiler named in cedar.toml.

## Things you can try:
- Install it with your package manager, e.g.:
~~~
$ sudo apt install gcc
~~~
- Make sure it is on your PATH:
~~~
$ gcc --version
~~~
- Switch ` + "`build.compiler`" + ` to a compiler you have`,
		extLinks: []HttpLink{"https://gcc.gnu.org/install/", "https://clang.llvm.org/get_started.html"},
	}

	compilerFailedIssue = &Issue{
		id: CompilerFailedId,
		mdMsg: `
# The compiler reported errors!

Strict mode is on, so a failing compiler fails the build.

## Things you can try:
- Fix the diagnostics printed above and build again
- Turn strict mode off to keep going after compiler errors:
~~~
$ cedar config show
$ export CEDAR_BUILD_STRICT=false
~~~`,
	}

	artifactNotExecutableIssue = &Issue{
		id: ArtifactNotExecutableId,
		mdMsg: `
# Nothing to run!

The build did not leave an executable in ` + "`build/`" + `. This usually
means the compiler failed.

## Things you can try:
- Read the compiler output above and fix the errors
- Make sure one of the sources defines ` + "`main`" + `
- Run the build on its own to see what happens:
~~~
$ cedar build
~~~`,
	}

	projectPathInvalidIssue = &Issue{
		id: ProjectPathInvalidId,
		mdMsg: `
# That path cannot hold a project!

The target must be a directory cedar can create or write to.

## Things you can try:
- Check that no file already uses that name
- Check the permissions of the parent directory`,
	}

	projectPathNotEmptyIssue = &Issue{
		id: ProjectPathNotEmptyId,
		mdMsg: `
# The directory is not empty!

cedar only creates projects in empty directories and never overwrites files.

## Things you can try:
- Create the project somewhere new:
~~~
$ cedar new my-project
~~~
- Or empty the directory first and run ` + "`cedar init`" + ` again`,
	}

	vcsInitFailedIssue = &Issue{
		id: VCSInitFailedId,
		mdMsg: `
# The project was created, but git was not initialized!

All project files are in place; only the repository is missing.

## Things you can try:
- Install git and run it yourself:
~~~
$ git init -b main
~~~
- Or let cedar create repositories without the git executable:
~~~
$ export CEDAR_VCS_BACKEND=builtin
~~~`,
		extLinks: []HttpLink{"https://git-scm.com/downloads"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Check the TOML syntax of your config file
- See where cedar looks for it:
~~~
$ cedar config path
~~~
- Write a fresh file with the defaults:
~~~
$ cedar config init
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

cedar was not allowed to read, write or execute a file it needed.

## Things you can try:
- Check the ownership and permissions of the project directory
- Make sure ` + "`build/`" + ` is writable`,
	}

	buildTimedOutIssue = &Issue{
		id: BuildTimedOutId,
		mdMsg: `
# The build took too long!

` + "`build.timeout`" + ` stopped the compiler or the program before it finished.

## Things you can try:
- Raise the limit, or set it to 0 to disable it:
~~~
$ export CEDAR_BUILD_TIMEOUT=5m
~~~`,
	}

	issues = map[Id]*Issue{
		projectDirectoryInvalidIssue.Id(): projectDirectoryInvalidIssue,
		manifestInvalidIssue.Id():         manifestInvalidIssue,
		compilerUnsupportedIssue.Id():     compilerUnsupportedIssue,
		compilerNotFoundIssue.Id():        compilerNotFoundIssue,
		compilerFailedIssue.Id():          compilerFailedIssue,
		artifactNotExecutableIssue.Id():   artifactNotExecutableIssue,
		projectPathInvalidIssue.Id():      projectPathInvalidIssue,
		projectPathNotEmptyIssue.Id():     projectPathNotEmptyIssue,
		vcsInitFailedIssue.Id():           vcsInitFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		permissionDeniedIssue.Id():        permissionDeniedIssue,
		buildTimedOutIssue.Id():           buildTimedOutIssue,
	}
)

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

// Render returns the issue as terminal markdown using the glamour style
// at stylePath ("dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	values := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		values = append(values, issues[id])
	}
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
