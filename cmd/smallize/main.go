package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/flaneur2020/smallize/smallize"
	"github.com/flaneur2020/smallize/smallize/console"
	"github.com/flaneur2020/smallize/smallize/logger"
	"github.com/flaneur2020/smallize/smallize/prompt"
)

var version = "dev"

const longHelp = `Welcome to Smallize
Split your long files into shorter ones.

Interactive:
  1: Run "smallize" with no arguments
  2: Enter a file in the current directory
  3: Enter the split size in megabytes, more than 0 and less than the file size

Or directly:
  smallize <FILE> [SIZE_MB]    (SIZE_MB defaults to 50)

Parts are written to <name>_parts/<name>_part<N><ext> next to the file.`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	out      *console.Console
	errOut   *console.Console
	splitter smallize.Splitter

	noProgress bool
	noColor    bool
	verbose    bool
	debug      bool
}

// reportedError marks an error already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		splitter: smallize.NewSplitter(),
	}

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return smallize.ExitOK
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		errOut := console.New(stderr, a.noColor)
		errOut.Errorf("Error: %v", err)
		fmt.Fprint(stderr, rootCmd.UsageString())
	}
	return smallize.ExitCode(err)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "smallize [FILE] [SIZE_MB]",
		Short:         "Segment large files into smaller ones",
		Long:          longHelp,
		Version:       version,
		Args:          cobra.RangeArgs(0, 2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runRoot,
	}

	rootCmd.Flags().BoolVar(&a.noProgress, "no-progress", false, "Disable progress bar (progress is shown by default on a terminal)")
	rootCmd.Flags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVarP(&a.verbose, "verbose", "v", false, "Log what is being done to stderr")
	rootCmd.Flags().BoolVar(&a.debug, "debug", false, "Log every part written to stderr")

	return rootCmd
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case a.debug:
		logger.SetLogLevel(logger.LogLevelDebug)
	case a.verbose:
		logger.SetLogLevel(logger.LogLevelInfo)
	default:
		logger.SetLogLevel(logger.LogLevelError)
	}
	logger.SetOutput(a.stderr)

	a.out = console.New(a.stdout, a.noColor)
	a.errOut = console.New(a.stderr, a.noColor)

	ctx := cmd.Context()

	switch len(args) {
	case 0:
		return a.runInteractive(ctx)
	case 1:
		return a.split(ctx, args[0], fmt.Sprint(smallize.DefaultSegmentSizeMB))
	default:
		return a.split(ctx, args[0], args[1])
	}
}

func (a *app) runInteractive(ctx context.Context) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	session := prompt.NewSession(a.stdin, a.out, dir, a.split)
	return session.Run(ctx)
}

// split validates the inputs in order (file first, then size), runs the
// splitter and reports every outcome to the user.
func (a *app) split(ctx context.Context, path string, sizeInput string) error {
	if _, err := smallize.OpenSource(path); err != nil {
		return a.report(path, err)
	}

	spec, err := smallize.ParseSegmentSize(sizeInput)
	if err != nil {
		return a.report(path, err)
	}

	var bar *progressbar.ProgressBar
	opts := &smallize.SplitOptions{
		OnPlan: func(plan *smallize.OutputPlan) {
			a.out.Infof("Splitting %s into [underline]%d[reset][blue] parts", path, plan.NumParts())
			a.out.Println("")
		},
		OnPart: func(part smallize.Part) {
			if bar != nil {
				bar.Clear()
			}
			a.out.Successf("File %d: [underline]%s", part.Index+1, part.Path)
		},
	}

	if !a.noProgress && console.IsTerminal(a.stderr) {
		opts.Progress = func(current, total int64) {
			if bar == nil && total > 0 {
				bar = newProgressBar(a.stderr, total, fmt.Sprintf("Splitting %s", path))
			}
			if bar != nil {
				bar.Set64(current)
			}
		}
	}

	result, err := a.splitter.Split(ctx, path, spec, opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return a.report(path, err)
	}

	a.out.Successf("[bold]Successfully wrote %d parts (%d bytes) to %s", len(result.Paths), result.WrittenBytes, result.Plan.Dir)
	return nil
}

func newProgressBar(w io.Writer, total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(10),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// report prints err in the form matching its kind and marks it as shown.
func (a *app) report(path string, err error) error {
	switch {
	case smallize.IsNoSplitNeeded(err):
		a.out.Warnf("File size is smaller than the segment size. No need to split.")
	case errors.Is(err, smallize.ErrNotFound):
		a.errOut.Errorf("File not found: [underline]%s", path)
	case errors.Is(err, smallize.ErrNotAFile):
		a.errOut.Errorf("Not a file: [underline]%s", path)
	case errors.Is(err, smallize.ErrInvalidSize):
		message, input := sizeProblem(err)
		a.errOut.Errorf("Invalid segment size %q: %s", input, message)
	default:
		// Unexpected failures: short message for the user, full chain in the log.
		logger.Error("split %s: %v", path, err)
		a.errOut.Errorf("Error: %s", userMessage(err))
		return &reportedError{err: err}
	}
	logger.Debug("split %s: %v", path, err)
	return &reportedError{err: err}
}

// sizeProblem returns the message and raw input of an InvalidSize error.
func sizeProblem(err error) (string, string) {
	var smallizeErr *smallize.SmallizeError
	if !errors.As(err, &smallizeErr) {
		return err.Error(), ""
	}
	input, _ := smallizeErr.Details["input"].(string)
	return smallizeErr.Message, input
}

// userMessage strips codes and causes from a SmallizeError.
func userMessage(err error) string {
	var smallizeErr *smallize.SmallizeError
	if errors.As(err, &smallizeErr) {
		return smallizeErr.Message
	}
	return err.Error()
}
