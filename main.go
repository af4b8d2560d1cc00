// rustc-ja — a transparent rustc wrapper that translates JSON
// diagnostics into Japanese.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustc-ja/rustc-ja/config"
	"github.com/rustc-ja/rustc-ja/debuglog"
	"github.com/rustc-ja/rustc-ja/diagnostic"
	"github.com/rustc-ja/rustc-ja/i18n"
	"github.com/rustc-ja/rustc-ja/phrase"
	"github.com/rustc-ja/rustc-ja/wrapper"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
)

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Configuration (loaded once, shared by all commands)
// ---------------------------------------------------------------------------

var (
	cfg    *config.Config
	cfgErr error
)

// warnConfig reports a broken config file once a command actually runs,
// so a bad file never blocks the wrapped compilation.
func warnConfig() {
	if cfgErr != nil {
		logWarning(i18n.T("config: %v"), cfgErr)
		cfgErr = nil
	}
}

// resolveTable returns the phrase table to use: an explicit file if
// given, the configured file otherwise, the embedded table as fallback.
func resolveTable(file string) *phrase.Table {
	if file == "" {
		file = cfg.PhraseFile
	}
	if file == "" {
		return phrase.Default()
	}
	table, err := phrase.LoadFile(file)
	if err != nil {
		logWarning(i18n.T("phrase file %s: %v; falling back to the embedded table"), file, err)
		return phrase.Default()
	}
	return table
}

// ---------------------------------------------------------------------------
// Root command (the wrapper itself)
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rustc-ja <command> [args...]",
		Short: "Translate rustc JSON diagnostics into Japanese",
		Long: `rustc-ja — a transparent rustc wrapper that translates JSON diagnostics
into Japanese.

rustc-ja runs the given command, passes stdout and the exit code through
untouched, and rewrites stderr when the invocation contains
--error-format=json: each JSONL diagnostic record has its message, span
labels, child messages, and rendered text translated using a table of
known rustc phrases. Everything the table does not recognize passes
through unchanged.

Typical use with cargo:

  RUSTC_WRAPPER=rustc-ja cargo build --message-format=json

Configuration (optional): ~/.config/rustc-ja/config.yaml
  phrase_file:  path to an external translate.json
  debug_log:    file to append raw compiler output to
  disable:      turn translation off

If the wrapped command happens to be named like one of the subcommands
below, invoke it by absolute path.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
				return cmd.Help()
			}
			if len(args) == 0 {
				fmt.Fprintln(os.Stderr, i18n.T("Usage: rustc-ja <command> [args...]"))
				os.Exit(1)
			}
			runWrapper(args[0], args[1:])
			return nil
		},
	}

	root.AddCommand(
		newTranslateCmd(),
		newPhrasesCmd(),
		newVersionCmd(),
	)

	return root
}

// runWrapper executes the wrapped command and exits with its code.
func runWrapper(command string, args []string) {
	warnConfig()

	code, err := wrapper.Run(command, args, wrapper.Options{
		Table:    resolveTable(""),
		Disabled: cfg.Disable,
		Log:      debuglog.New(cfg.DebugLog),
	})
	if err != nil {
		logError("%v", err)
	}
	os.Exit(code)
}

func main() {
	cfg, cfgErr = config.Load()
	i18n.Init(cfg.Language)

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// translate (stdin → stdout JSONL filter)
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate rustc JSON diagnostics from stdin to stdout",
		Long: `Read rustc --error-format=json output line by line from standard input
and write the translated stream to standard output.

Lines that are not diagnostic records pass through byte-for-byte, so the
command is safe to splice into any pipeline:

  rustc --error-format=json main.rs 2>&1 | rustc-ja translate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnConfig()
			return runTranslate(resolveTable(file))
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Phrase file overriding the embedded table")

	return cmd
}

func runTranslate(table *phrase.Table) error {
	scanner := bufio.NewScanner(os.Stdin)
	// Rendered diagnostics for long source lines can be large.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for scanner.Scan() {
		if _, err := out.Write(diagnostic.TranslateLine(scanner.Bytes(), table)); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ---------------------------------------------------------------------------
// phrases (inspect the phrase table)
// ---------------------------------------------------------------------------

func newPhrasesCmd() *cobra.Command {
	var file string
	var all bool

	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "Show the loaded phrase table",
		Long: `Show how many phrase pairs are loaded and, with --all, list every
source/target pair in match order (longest source template first).`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			warnConfig()
			table := resolveTable(file)

			fmt.Printf(i18n.N("%d phrase entry loaded", "%d phrase entries loaded", table.Len())+"\n", table.Len())
			if cfg.Disable {
				fmt.Println(i18n.T("translation disabled; passing output through"))
			}
			if all {
				for _, e := range table.Entries() {
					fmt.Printf("%s\n    %s\n", e.Source, e.Target)
				}
			}
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Phrase file overriding the embedded table")
	cmd.Flags().BoolVar(&all, "all", false, "List every source/target pair")

	return cmd
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rustc-ja version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}
