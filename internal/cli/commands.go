package cli

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/towboat/internal/version"
	"github.com/arthur-debert/towboat/pkg/core"
	"github.com/arthur-debert/towboat/pkg/manifest"
	"github.com/arthur-debert/towboat/pkg/paths"
	"github.com/arthur-debert/towboat/pkg/types"
	"github.com/arthur-debert/towboat/pkg/ui"
)

// configFromFlags assembles a run configuration from the persistent flags.
// With a positional package name, --dir is the directory containing
// packages; without one, --dir is the package itself.
func configFromFlags(cmd *cobra.Command, args []string) types.Config {
	flags := cmd.Root().PersistentFlags()
	dir, _ := flags.GetString("dir")
	target, _ := flags.GetString("target")
	buildTag, _ := flags.GetString("build")
	dryRun, _ := flags.GetBool("dry-run")
	force, _ := flags.GetBool("force")

	packageDir := dir
	if len(args) == 1 {
		packageDir = filepath.Join(dir, args[0])
	}

	return types.Config{
		PackageDir: packageDir,
		StowDir:    dir,
		TargetDir:  target,
		BuildTag:   buildTag,
		DryRun:     dryRun,
		Force:      force,
	}
}

func runWithReporter(cmd *cobra.Command, cfg types.Config) error {
	format := ui.FormatText
	if out, ok := cmd.OutOrStdout().(*os.File); ok {
		format = ui.FormatAuto.Resolve(out)
	}
	reporter := ui.NewReporter(cmd.OutOrStdout(), format, cfg.DryRun)
	return core.Run(cfg, reporter)
}

func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deploy [package]",
		Short:   MsgDeployShort,
		Long:    MsgDeployLong,
		Example: MsgDeployExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromFlags(cmd, args)
			cfg.Adopt, _ = cmd.Flags().GetBool("adopt")

			log.Info().
				Str("dir", cfg.PackageDir).
				Str("build", cfg.BuildTag).
				Bool("dry_run", cfg.DryRun).
				Bool("adopt", cfg.Adopt).
				Msg("Deploying package")

			return runWithReporter(cmd, cfg)
		},
	}

	cmd.Flags().Bool("adopt", false, MsgFlagAdopt)

	return cmd
}

func newAdoptCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "adopt [package]",
		Short:   MsgAdoptShort,
		Long:    MsgAdoptLong,
		Example: MsgAdoptExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromFlags(cmd, args)
			cfg.Adopt = true

			log.Info().Str("dir", cfg.PackageDir).Msg("Adopting target files")

			return runWithReporter(cmd, cfg)
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [package]",
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		Example: MsgRemoveExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromFlags(cmd, args)
			cfg.Remove = true

			log.Info().Str("dir", cfg.PackageDir).Msg("Removing deployed files")

			return runWithReporter(cmd, cfg)
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init [dir]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Args:    cobra.MaximumNArgs(1),
		Example: MsgInitExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			manifestPath := filepath.Join(dir, paths.ManifestFileName)
			if _, err := os.Stat(manifestPath); err == nil {
				return fmt.Errorf(MsgErrManifestExists, manifestPath)
			}

			starter := manifest.Manifest{
				Default: manifest.DefaultPolicy{
					IncludeAll: true,
					DefaultTag: manifest.DefaultTag,
				},
			}
			data, err := toml.Marshal(starter)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgManifestCreated, manifestPath)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "towboat version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
