package homebuild

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/homebuild/internal/version"
	"github.com/arthur-debert/homebuild/pkg/builder"
	"github.com/arthur-debert/homebuild/pkg/cobrax/topics"
	"github.com/arthur-debert/homebuild/pkg/config"
	"github.com/arthur-debert/homebuild/pkg/executor"
	"github.com/arthur-debert/homebuild/pkg/filesystem"
	"github.com/arthur-debert/homebuild/pkg/logging"
	"github.com/arthur-debert/homebuild/pkg/manifest"
	"github.com/arthur-debert/homebuild/pkg/paths"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/arthur-debert/homebuild/pkg/ui"
	"github.com/arthur-debert/homebuild/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

//go:embed topics
var topicsFS embed.FS

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity    int
	settingsFile string
	manifestPath string
	format       string
}

// session is everything a command needs after flags are parsed
type session struct {
	settings *config.Settings
	fs       types.FS
	manifest string
	root     *types.ConfigEntity
	// jsonOutput keeps script output off stdout so the JSON document stays parseable
	jsonOutput bool
}

// Execute runs the CLI with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &globalOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(opts, stdout, stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&globalOptions{})
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "homebuild",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			_, err := ui.ParseFormat(opts.format)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgNoCommandGiven)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.settingsFile, "settings", "", MsgFlagSettings)
	rootCmd.PersistentFlags().StringVarP(&opts.manifestPath, "manifest", "m", paths.DefaultManifest, MsgFlagManifest)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", ui.FormatAuto.String(), MsgFlagFormat)

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	sub, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, sub, topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// open loads settings and the manifest graph named by the flags
func (o *globalOptions) open() (*session, error) {
	file, required := o.settingsFile, o.settingsFile != ""
	if !required {
		file = paths.SettingsFile()
	}

	settings, err := config.Load(config.LoadOptions{File: file, Required: required})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadSettings, err)
	}

	manifestPath, err := paths.Abs(o.manifestPath)
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()
	root, err := manifest.Load(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadManifest, err)
	}

	log.Info().
		Str("manifest", manifestPath).
		Str("settings", file).
		Msg("Manifest loaded")

	format, _ := ui.ParseFormat(o.format)
	return &session{
		settings:   settings,
		fs:         fsys,
		manifest:   manifestPath,
		root:       root,
		jsonOutput: format == ui.FormatJSON,
	}, nil
}

func (o *globalOptions) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

func (s *session) builder(cmd *cobra.Command) *builder.Builder {
	stdout := cmd.OutOrStdout()
	if s.jsonOutput {
		stdout = cmd.ErrOrStderr()
	}
	return builder.New(builder.Options{
		Settings: s.settings,
		FS:       s.fs,
		Runner: executor.New(executor.Options{
			Shell:   s.settings.Shell(),
			Timeout: s.settings.ScriptTimeout(),
			Stdin:   cmd.InOrStdin(),
			Stdout:  stdout,
			Stderr:  cmd.ErrOrStderr(),
		}),
	})
}

// reportError renders a failed command. JSON goes to stdout so it stays parseable.
func reportError(opts *globalOptions, stdout, stderr io.Writer, err error) {
	format, parseErr := ui.ParseFormat(opts.format)
	if parseErr != nil {
		format = ui.FormatAuto
	}

	w := stderr
	if format == ui.FormatJSON {
		w = stdout
	}

	r, rErr := ui.NewRenderer(format, w)
	if rErr != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return
	}
	_ = r.RenderError(err)
}

func newBuildCmd(opts *globalOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, err := opts.open()
			if err != nil {
				return err
			}

			b := s.builder(cmd)
			q := b.Plan(s.root)

			if dryRun {
				if err := r.RenderPlan(display.PlanResult{Manifest: s.manifest, Queues: q}); err != nil {
					return err
				}
				return r.RenderMessage(MsgDryRunNotice)
			}

			if err := b.Build(cmd.Context(), s.root); err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgBuildComplete, len(q.Pre), len(q.Build), len(q.Post), len(q.User)))
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newPlanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
		Long:  MsgPlanLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			return r.RenderPlan(display.PlanResult{Manifest: s.manifest, Queues: s.builder(cmd).Plan(s.root)})
		},
	}
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, err := opts.open()
			if err != nil {
				return err
			}

			binDir, err := paths.Abs(s.settings.UserScriptsBin())
			if err != nil {
				return err
			}

			status, err := display.CollectStatus(s.fs, s.manifest, s.builder(cmd).Plan(s.root), binDir)
			if err != nil {
				return err
			}
			return r.RenderStatus(status)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(homebuild completion bash)

Zsh:
  $ homebuild completion zsh > "${fpath[1]}/_homebuild"

Fish:
  $ homebuild completion fish | source

PowerShell:
  PS> homebuild completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "man [dir]",
		Short: MsgManShort,
		Long:  MsgManLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			header := &doc.GenManHeader{
				Title:   "HOMEBUILD",
				Section: "1",
				Source:  "homebuild " + version.Version,
				Manual:  "homebuild manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return nil
		},
	}
}
