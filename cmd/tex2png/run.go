package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/eea/tex2png"
	"github.com/eea/tex2png/internal/config"
	"github.com/eea/tex2png/internal/fileutil"
	"github.com/eea/tex2png/internal/hints"
)

// runMain executes one conversion and returns the process exit code.
// Stdout receives the PNG only after every stage has succeeded.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	flags, err := parseFlags(args, env.Stderr)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "tex2png %s\n", Version)
		return ExitSuccess
	}

	setMaxProcs(flags.verbose, env.Stderr)
	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var markup string
	err = run(ctx, flags, env, &markup)
	if err != nil {
		report(env.Stderr, err, markup, flags)
	}
	return exitCodeFor(err)
}

// setMaxProcs configures GOMAXPROCS, logging the decision in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	logger := func(string, ...interface{}) {}
	if verbose {
		logger = func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logger))
}

// run resolves configuration, reads stdin and converts it. The markup read
// is stored in *markup so diagnostics can quote it.
func run(ctx context.Context, flags *cliFlags, env *Environment, markup *string) error {
	envCfg := loadEnvConfig()

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	timeout, _ := cfg.Render.TimeoutDuration() // validated by resolveConfig
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conv, err := tex2png.NewConverter(converterOptions(cfg, timeout)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	if env.StdinIsTerminal != nil && env.StdinIsTerminal() {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForTerminalInput(), "\n  "))
	}

	start := env.Now()
	*markup, err = readInput(env.Stdin, cfg.Input.MaxBytes)
	if err != nil {
		return err
	}
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "read %d bytes in %v\n", len(*markup), env.Now().Sub(start).Round(time.Microsecond))
	}

	start = env.Now()
	result, err := conv.Convert(ctx, tex2png.Input{Markup: *markup, Display: flags.display})
	if err != nil {
		return err
	}
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "converted in %v (%s engine, %dx%d)\n",
			env.Now().Sub(start).Round(time.Millisecond), cfg.Render.Engine, result.Width, result.Height)
	}

	if flags.svgPath != "" {
		if err := fileutil.WriteAtomic(flags.svgPath, result.SVG); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	if _, err := env.Stdout.Write(result.PNG); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// resolveConfig builds the effective configuration.
// Priority: flags > env vars > config file > defaults.
func resolveConfig(flags *cliFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.Render.Engine == "" {
			cfg.Render.Engine = tex2png.EngineVector
		}
	}

	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// converterOptions maps a validated config onto library options.
func converterOptions(cfg *config.Config, timeout time.Duration) []tex2png.Option {
	r := cfg.Render
	opts := []tex2png.Option{tex2png.WithEngine(r.Engine)}
	if r.FontSize != 0 {
		opts = append(opts, tex2png.WithFontSize(r.FontSize))
	}
	if r.Color != "" {
		opts = append(opts, tex2png.WithColor(r.Color))
	}
	if r.Background != "" {
		opts = append(opts, tex2png.WithBackground(r.Background))
	}
	if r.Padding != nil {
		opts = append(opts, tex2png.WithPadding(*r.Padding))
	}
	if timeout > 0 {
		opts = append(opts, tex2png.WithTimeout(timeout))
	}
	return opts
}

// report writes a one-line diagnostic plus any hint for err.
func report(w io.Writer, err error, markup string, flags *cliFlags) {
	var hint string
	switch {
	case errors.Is(err, tex2png.ErrEmptyMarkup):
		hint = hints.ForEmptyInput()
	case errors.Is(err, tex2png.ErrMarkup):
		if pos, ok := tex2png.MarkupPosition(err); ok {
			hint = hints.ForMarkup(strings.TrimSpace(markup), pos)
		}
	case errors.Is(err, config.ErrConfigNotFound):
		name := flags.config
		if name == "" {
			name = loadEnvConfig().ConfigPath
		}
		var searched []string
		if !fileutil.IsFilePath(name) {
			searched = config.SearchPaths(name)
		}
		hint = hints.ForConfigNotFound(searched, config.AppDirName)
	case errors.Is(err, tex2png.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, tex2png.ErrPageLoad):
		hint = hints.ForTimeout()
	}
	fmt.Fprintf(w, "error: %v%s\n", err, hint)
}
