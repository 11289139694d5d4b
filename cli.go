package hunkgrep

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type CLIConfig struct {
	Mode       string
	Added      string
	Removed    string
	Engine     string
	IgnoreCase bool
	Clipboard  bool
	Markdown   bool
	Stats      bool
	LogLevel   string
	LogFormat  string
	ConfigFile string
	Completion string
}

var cfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "hunkgrep [flags] [file]",
	Short: "Print the diff hunks whose added or removed lines match a pattern.",
	Long: `Read a unified diff from a file or stdin and print only the hunks whose
added or removed lines match the given patterns.

Example: git log -p | hunkgrep --removed=oldName`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Completion != "" {
			return handleCompletion(cmd)
		}

		appCfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}

		app, err := NewApp(appCfg, os.Stdout, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		_, err = app.Execute()
		return err
	},
}

// buildConfig layers flags that were set explicitly over the config file,
// which itself sits on top of the defaults.
func buildConfig(cmd *cobra.Command, args []string) (*Config, error) {
	c := NewDefaultConfig()
	if cfg.ConfigFile != "" {
		loaded, err := LoadConfigFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	for _, name := range []string{"mode", "all", "one"} {
		set(name, func() {
			if cfg.Mode != "" {
				c.Mode = cfg.Mode
			}
		})
	}
	set("added", func() { c.Added = cfg.Added })
	set("removed", func() { c.Removed = cfg.Removed })
	set("engine", func() { c.Engine = cfg.Engine })
	set("ignore-case", func() { c.IgnoreCase = cfg.IgnoreCase })
	set("clipboard", func() { c.Clipboard = cfg.Clipboard })
	set("markdown", func() { c.Markdown = cfg.Markdown })
	set("stats", func() { c.Stats = cfg.Stats })
	set("log-level", func() { c.LogLevel = cfg.LogLevel })
	set("log-format", func() { c.LogFormat = cfg.LogFormat })

	if len(args) > 0 {
		c.InputPath = args[0]
	}
	return c, nil
}

// modeSwitch is a boolean flag that writes its mode into a shared target,
// so among --mode, --all and --one the last one given wins.
type modeSwitch struct {
	target *string
	mode   SelectionMode
}

func (m *modeSwitch) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*m.target = m.mode.String()
	}
	return nil
}

func (m *modeSwitch) String() string {
	if m.target == nil {
		return "false"
	}
	return strconv.FormatBool(*m.target == m.mode.String())
}

func (m *modeSwitch) Type() string { return "bool" }

func (m *modeSwitch) IsBoolFlag() bool { return true }

func handleCompletion(cmd *cobra.Command) error {
	switch cfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cfg.Completion)
	}
}

// rewriteArgs turns the compact "-+=PAT" and "--=PAT" forms into
// --added=PAT and --removed=PAT.
func rewriteArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case len(arg) > 3 && strings.HasPrefix(arg, "-+="):
			arg = "--added=" + arg[3:]
		case len(arg) > 3 && strings.HasPrefix(arg, "--="):
			arg = "--removed=" + arg[3:]
		}
		out = append(out, arg)
	}
	return out
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Completion, "completion", "", "Generate completion script")
	rootCmd.Flags().VarPF(&modeSwitch{target: &cfg.Mode, mode: ModeAll}, "all", "a",
		"Print a hunk unless an applicable line fails to match").NoOptDefVal = "true"
	rootCmd.Flags().VarPF(&modeSwitch{target: &cfg.Mode, mode: ModeOne}, "one", "1",
		"Print a hunk as soon as one applicable line matches (default)").NoOptDefVal = "true"
	rootCmd.Flags().StringVarP(&cfg.Mode, "mode", "m", "", "Selection mode: one or all")
	rootCmd.Flags().StringVarP(&cfg.Added, "added", "A", "", "Pattern tested against added lines")
	rootCmd.Flags().StringVarP(&cfg.Removed, "removed", "R", "", "Pattern tested against removed lines")
	rootCmd.Flags().StringVar(&cfg.Engine, "engine", string(EngineRE2), "Regular expression engine: re2 or backtrack")
	rootCmd.Flags().BoolVarP(&cfg.IgnoreCase, "ignore-case", "i", false, "Match patterns case-insensitively")
	rootCmd.Flags().BoolVar(&cfg.Clipboard, "clipboard", false, "Read the diff from the clipboard")
	rootCmd.Flags().BoolVar(&cfg.Markdown, "markdown", false, "Read diff code blocks out of a markdown document")
	rootCmd.Flags().BoolVar(&cfg.Stats, "stats", false, "Print a summary to stderr")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", "warn", "Diagnostics level: debug, info, warn, error or disabled")
	rootCmd.Flags().StringVar(&cfg.LogFormat, "log-format", "console", "Diagnostics format: console or json")
	rootCmd.Flags().StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML file with default settings")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	rootCmd.SetArgs(rewriteArgs(os.Args[1:]))
	return rootCmd.Execute()
}
