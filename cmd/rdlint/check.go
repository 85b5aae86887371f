package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rdlint/internal/config"
	"rdlint/internal/diagfmt"
	"rdlint/internal/driver"
	"rdlint/internal/observ"
	"rdlint/internal/ui"
	"rdlint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rdoc|directory>...",
	Short: "Check documentation blocks against the conformance rules",
	Long:  `Check parses every documentation block under the given paths, segments it into canonical sections and applies the conformance rule set. The exit code is 1 when any violation is found; suggestions and infos never fail the check.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|short|json|sarif|msgpack)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("progress", "off", "interactive progress (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include finding notes in output")
	checkCmd.Flags().Bool("rationale", false, "include rule rationale in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-suggestions", false, "report violations only")
	checkCmd.Flags().Bool("suggestions-as-violations", false, "treat suggestions as violations (affects exit status)")
	checkCmd.Flags().String("config", "", "explicit rdlint.toml path (default: walk up from the first root)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cfg, err := loadConfig(cmd, roots[0])
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = cfg.Output.Format
	}
	if format == "" {
		format = "pretty"
	}
	switch format {
	case "pretty", "short", "json", "sarif", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag, cfg.Output.Color)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxFindings, err := cmd.Root().PersistentFlags().GetInt("max-findings")
	if err != nil {
		return fmt.Errorf("failed to get max-findings flag: %w", err)
	}
	if maxFindings == 0 {
		maxFindings = cfg.Lint.MaxFindings
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = cfg.Lint.Jobs
	}

	progressFlag, err := cmd.Flags().GetString("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	progMode, err := readProgressMode(progressFlag)
	if err != nil {
		return err
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	showRationale, err := cmd.Flags().GetBool("rationale")
	if err != nil {
		return fmt.Errorf("failed to get rationale flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	noSuggestions, err := cmd.Flags().GetBool("no-suggestions")
	if err != nil {
		return fmt.Errorf("failed to get no-suggestions flag: %w", err)
	}
	strictSuggestions, err := cmd.Flags().GetBool("suggestions-as-violations")
	if err != nil {
		return fmt.Errorf("failed to get suggestions-as-violations flag: %w", err)
	}
	if noSuggestions && strictSuggestions {
		return fmt.Errorf("--no-suggestions and --suggestions-as-violations are mutually exclusive")
	}

	ruleCfg, err := cfg.RuleConfig()
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxFindings: maxFindings,
		Jobs:        jobs,
		Rules:       ruleCfg,
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	var events chan driver.ProgressEvent
	var progDone chan struct{}
	if shouldShowProgress(progMode, format) {
		events = make(chan driver.ProgressEvent, 64)
		opts.Progress = func(e driver.ProgressEvent) { events <- e }
		progDone = make(chan struct{})
		go func() {
			defer close(progDone)
			model := ui.NewProgressModel("checking documentation", 0, events)
			// Ошибки интерактивного рендера не фатальны для проверки.
			_, _ = tea.NewProgram(model).Run()
		}()
	}

	fileSet, report, err := driver.CheckPaths(cmd.Context(), roots, opts)
	if events != nil {
		close(events)
		<-progDone
	}
	if err != nil {
		return err
	}

	merged := report.MergedBag(0)
	if noSuggestions {
		merged.DropSuggestions()
	}
	if strictSuggestions {
		merged.PromoteSuggestions()
		merged.Sort()
	}
	violations, suggestions, infos := merged.CountBySeverity()
	pathMode := pathModeFor(fullPath)

	switch format {
	case "short":
		if err := diagfmt.Short(os.Stdout, merged, fileSet, withNotes); err != nil {
			return err
		}
	case "pretty":
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:         useColor,
			PathMode:      pathMode,
			ShowContext:   true,
			ShowNotes:     withNotes,
			ShowRationale: showRationale,
		})
		if !quiet {
			fmt.Fprintf(os.Stdout, "checked %d files, %d blocks: %d violations, %d suggestions, %d infos\n",
				report.Files, report.Blocks, violations, suggestions, infos)
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, jsonOpts(pathMode, withNotes, showRationale)); err != nil {
			return err
		}
	case "msgpack":
		if err := diagfmt.Msgpack(os.Stdout, merged, fileSet, jsonOpts(pathMode, withNotes, showRationale)); err != nil {
			return err
		}
	case "sarif":
		if err := diagfmt.Sarif(os.Stdout, merged, fileSet, diagfmt.SarifRunMeta{
			ToolName:       "rdlint",
			ToolVersion:    version.Version,
			InvocationArgs: args,
		}); err != nil {
			return err
		}
	}

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if merged.HasViolations() {
		// Находки уже напечатаны; cobra не должна дописывать usage.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func jsonOpts(pathMode diagfmt.PathMode, withNotes, withRationale bool) diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
		IncludeRationale: withRationale,
	}
}

// loadConfig resolves the manifest: an explicit --config path wins, then
// the upward search from the first root.
func loadConfig(cmd *cobra.Command, firstRoot string) (*config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return config.Load(explicit)
	}
	startDir := firstRoot
	if info, err := os.Stat(firstRoot); err != nil || !info.IsDir() {
		startDir = filepath.Dir(firstRoot)
	}
	return config.LoadFromDir(startDir)
}
