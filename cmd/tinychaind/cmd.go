package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/c-bata/go-prompt"
)

// The types below are a small command-tree matcher for the REPL's tab
// completion, adapted from the teacher's own main/cmd.go (Cmd/Sub/Value/File)
// — there it built nested subcommand matching for contract-debugging verbs;
// here it drives file-argument completion for `deploy`/`debug <*.hex>`.

type cmd interface {
	Match(args []string) Matches
}

type Match struct {
	cmd
	isPartial bool
	suggest   *prompt.Suggest
}
type Matches []Match

// File matches a single filesystem-path argument against files with ext in
// the current (or named) directory, offering partial-name completions.
type File struct {
	fn  string
	ext string
}

func (n *File) Match(args []string) (matches Matches) {
	if len(args) != 1 || args[0] == "" {
		return
	}
	dir, inputFn := filepath.Split(args[0])
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if n.ext != "" && filepath.Ext(name) != n.ext {
			continue
		}
		if name == inputFn {
			matches = append(matches, Match{n, false, nil})
		} else if strings.Contains(name, inputFn) {
			matches = append(matches, Match{n, true, &prompt.Suggest{Text: filepath.Join(dir, name)}})
		}
	}
	return
}

// fileCompletions returns tab-completion suggestions for a `<verb> <path>`
// line whose verb expects a file with the given extension.
func fileCompletions(arg string, ext string) []prompt.Suggest {
	f := &File{ext: ext}
	var out []prompt.Suggest
	for _, m := range f.Match([]string{arg}) {
		if m.suggest != nil {
			out = append(out, *m.suggest)
		}
	}
	return out
}
