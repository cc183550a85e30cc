// Package topics adds a topic-based help system to a Cobra CLI. Topics
// are documentation files served from an fs.FS, usually an embed.FS
// compiled into the binary, and become reachable through `help <name>`
// alongside the regular command help.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one loaded documentation page.
type Topic struct {
	// Name is what the user types: the file name without extension.
	Name string
	// Path is the file's location inside the source filesystem.
	Path string
	// Content is the raw file content.
	Content string
}

// Options configures topic loading and rendering.
type Options struct {
	// Extensions lists the file extensions treated as topics.
	// Defaults to ".md" and ".txt".
	Extensions []string

	// Renderer formats topic content for the terminal. Defaults to
	// PlainRenderer.
	Renderer Renderer
}

// Manager holds the loaded topics and the help hooks.
type Manager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	extensions   []string
	renderer     Renderer
	originalHelp func(*cobra.Command, []string)
}

// New loads every topic file found in fsys.
func New(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// load walks the filesystem and indexes every file with a supported
// extension under its bare name. Later files win on name collisions.
func (m *Manager) load() error {
	return fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{
			Name:    name,
			Path:    p,
			Content: string(content),
		}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Get retrieves a topic by name. Leading dashes are stripped so that
// `help --some-flag` can resolve a topic written for a flag.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	t, ok := m.topics[name]
	return t, ok
}

// List returns the topic names, sorted.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic for terminal display.
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, path.Ext(t.Path))
}

// Initialize wires the topic system into rootCmd: it replaces the help
// command with one that also resolves topics and knows the special
// argument `topics`, and overrides the help function so `--help` style
// lookups see topics too.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) error {
	m, err := New(fsys, opts)
	if err != nil {
		return fmt.Errorf("loading help topics: %w", err)
	}

	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: "Help shows the documentation for any command or topic.\n" +
			"Run `" + rootCmd.Name() + " help topics` to list the available topics.",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				printTopicList(cmd, rootCmd.Name(), m.List())
				return
			}

			if topic, ok := m.Get(args[0]); ok {
				// cobra's Print helpers default to stderr.
				fmt.Fprint(cmd.OutOrStdout(), m.Render(topic))
				return
			}

			// Not a topic. Resolve the command and show its help; the
			// captured help function renders whichever command it is
			// handed, so the root would be wrong here.
			if target, _, err := rootCmd.Find(args); err == nil && target != nil {
				target.InitDefaultHelpFlag()
				_ = target.Help()
				return
			}
			m.originalHelp(rootCmd, args)
		},
	}

	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			rootCmd.RemoveCommand(c)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := m.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(topic))
				return
			}
		}
		m.originalHelp(cmd, args)
	})

	return nil
}

func printTopicList(cmd *cobra.Command, appName string, names []string) {
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No help topics available.")
		return
	}

	fmt.Fprintln(out, "Available help topics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintf(out, "\nUse %q to read one.\n", appName+" help <topic>")
}
