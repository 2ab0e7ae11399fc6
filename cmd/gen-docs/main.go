package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/stigoleg/mouse-keepalive/internal/cli"
)

// This small tool generates shell completions and a man page from the root
// command, so both always match --help.

const appName = "mouse-keepalive"

func main() {
	root := cli.NewRootCommand(cli.Options{})

	if err := writeCompletions(root, filepath.Join("docs", "completions")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeMan(root, "man"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeCompletions(root *cobra.Command, base string) error {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	gens := []struct {
		file string
		gen  func(path string) error
	}{
		{appName + ".bash", func(p string) error { return root.GenBashCompletionFileV2(p, true) }},
		{"_" + appName, root.GenZshCompletionFile},
		{appName + ".fish", func(p string) error { return root.GenFishCompletionFile(p, true) }},
		{appName + ".ps1", root.GenPowerShellCompletionFileWithDesc},
	}
	for _, g := range gens {
		if err := g.gen(filepath.Join(base, g.file)); err != nil {
			return fmt.Errorf("generate %s: %w", g.file, err)
		}
	}
	return nil
}

func writeMan(root *cobra.Command, dir string) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, appName+".1"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeManPage(root, f)
}

// writeManPage renders the cobra man page and appends the environment section,
// which cobra does not generate.
func writeManPage(root *cobra.Command, w io.Writer) error {
	root.DisableAutoGenTag = true
	header := &doc.GenManHeader{
		Title:   strings.ToUpper(appName),
		Section: "1",
		Source:  appName,
		Manual:  "User Commands",
	}
	if err := doc.GenMan(root, header, w); err != nil {
		return fmt.Errorf("generate man page: %w", err)
	}
	_, err := io.WriteString(w, ".SH ENVIRONMENT\n"+
		"Every option can be set as MOUSE_KEEPALIVE_<NAME>, e.g. MOUSE_KEEPALIVE_INTERVAL=30.\n"+
		"Nested keys use underscores, e.g. MOUSE_KEEPALIVE_LOG_LEVEL=debug.\n")
	return err
}
