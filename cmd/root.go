package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maxvaer/classver/internal/config"
	"github.com/maxvaer/classver/internal/disposition"
	"github.com/maxvaer/classver/internal/logx"
	"github.com/maxvaer/classver/internal/runner"
	"github.com/maxvaer/classver/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	opts     config.Options
	exitCode = disposition.ExitOK
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"INPUT", []string{"paths-file", "exclude", "include-versioned", "skip-module-info"}},
	{"POLICY", []string{"max", "strict"}},
	{"PERFORMANCE", []string{"threads"}},
	{"OUTPUT", []string{"output", "format", "sort", "quiet", "no-color", "verbose"}},
}

var rootCmd = &cobra.Command{
	Use:     "classver [flags] <path|glob>...",
	Short:   "Report the minimum Java runtime required by classfiles and jars",
	Version: version.Version,
	Long: `classver reads the version header of Java classfiles, directly or inside
jar/war/ear/zip archives, and reports the minimum Java runtime each input
needs. With --max it fails when any input requires a newer runtime.`,
	Example: `  classver Foo.class
  classver app.jar lib/*.jar
  classver --max 8 build/libs/app.jar
  classver --max "Java 17" --format json -o report.json 'target/**/*.jar'
  classver -l jars.txt --exclude 'com/example/test/**' -v`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && opts.PathsFile == "" {
			_ = cmd.Help()
			fmt.Fprintln(os.Stderr)
			return config.Usagef("at least one path required (or --paths-file)")
		}
		return nil
	},
	// Validation happens in runner.Run so every caller gets the same checks.
	PreRun: func(cmd *cobra.Command, args []string) {
		opts.Paths = args
		opts.OutputFormat = strings.ToLower(opts.OutputFormat)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		log := logx.New(opts.Verbose, opts.Quiet)
		disp, err := runner.Run(ctx, &opts, log)
		if err != nil {
			return err
		}
		exitCode = disp.ExitCode()
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// registerFlags binds the flags to opts. Defaults come from opts, so
// config.Defaults must have been loaded first.
func registerFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	// Input
	f.StringVarP(&opts.PathsFile, "paths-file", "l", "", "File with one path or glob per line")
	f.StringSliceVar(&opts.Exclude, "exclude", nil, "Skip archive entries matching these globs (e.g. 'com/acme/test/**')")
	f.BoolVar(&opts.IncludeVersioned, "include-versioned", false, "Also scan META-INF/versions/** entries of multi-release jars")
	f.BoolVar(&opts.SkipModuleInfo, "skip-module-info", false, "Ignore module-info.class entries")

	// Policy
	f.StringVarP(&opts.MaxVersion, "max", "m", opts.MaxVersion, "Maximum allowed version: release (8, 1.8, \"Java 17\") or classfile major[.minor] (52, 61.0)")
	f.BoolVar(&opts.Strict, "strict", false, "Fail when any archive entry cannot be decoded")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", opts.Threads, "Number of paths scanned concurrently")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", "", "Output file path")
	f.StringVar(&opts.OutputFormat, "format", opts.OutputFormat, "Output format: text, json, csv")
	f.StringVar(&opts.SortBy, "sort", "", "Sort results: path, version (default: input order)")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print the report and warnings")
	f.BoolVar(&opts.NoColor, "no-color", opts.NoColor, "Disable colored output")
	f.CountVarP(&opts.Verbose, "verbose", "v", "Verbose logging; repeat for more (-vv)")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &config.UsageError{Err: err}
	})

	// Custom help: grouped flags and exit codes.
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintf(w, "\nEnvironment (also read from ./.env):\n")
		fmt.Fprintf(w, "   %s, %s, %s, %s\n", config.EnvMax, config.EnvThreads, config.EnvFormat, config.EnvNoColor)
		fmt.Fprintf(w, "\nExit codes:\n")
		fmt.Fprintf(w, "   %-4d all inputs decoded and within --max\n", disposition.ExitOK)
		fmt.Fprintf(w, "   %-4d an input requires a version above --max\n", disposition.ExitCeilingExceeded)
		fmt.Fprintf(w, "   %-4d an input could not be read or decoded (wins over %d)\n", disposition.ExitScanError, disposition.ExitCeilingExceeded)
		fmt.Fprintf(w, "   %-4d usage error\n", disposition.ExitUsage)
		fmt.Fprintln(w)
	})
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	// Environment and .env are read here rather than at import time.
	opts = config.Defaults()
	registerFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if config.IsUsage(err) {
			return disposition.ExitUsage
		}
		return disposition.ExitScanError
	}
	return exitCode
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" && typ != "count" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 32
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	// Show default for non-zero values.
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}
