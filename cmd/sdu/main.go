package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sdu/internal/bootstrap"
	specsdto "sdu/internal/modules/specs/dto"
	"sdu/internal/platform/config"
	apperrors "sdu/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "sdu",
		Short:         "System Diagnostic Utility",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.sdu)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSignupCmd(&dataDir))
	root.AddCommand(newLoginCmd(&dataDir))
	root.AddCommand(newLogoutCmd(&dataDir))
	root.AddCommand(newWhoamiCmd(&dataDir))
	root.AddCommand(newSpecsCmd(&dataDir))
	root.AddCommand(newBenchmarkCmd(&dataDir))
	root.AddCommand(newReviewCmd(&dataDir))
	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newProbeCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func readPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the diagnostic dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newSignupCmd(dataDir *string) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "signup --username <name> --email <addr>",
		Short: "Create an account on the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				var err error
				if password, err = readPassword("password: "); err != nil {
					return err
				}
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.Signup(context.Background(), username, email, password); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account created: %s — run `sdu login` to sign in\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	return cmd
}

func newLoginCmd(dataDir *string) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login --username <name>",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				var err error
				if password, err = readPassword("password: "); err != nil {
					return err
				}
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			user, err := app.AccountCLI.Login(context.Background(), username, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	return cmd
}

func newLogoutCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			user, err := app.AccountCLI.Whoami(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}

func newSpecsCmd(dataDir *string) *cobra.Command {
	specs := &cobra.Command{Use: "specs", Short: "Hardware specification commands"}

	specs.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cached hardware snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			snap, err := app.SpecsCLI.Get(context.Background())
			if err != nil {
				return err
			}
			printSnapshot(cmd, snap)
			return nil
		},
	})

	specs.AddCommand(&cobra.Command{
		Use:   "scan",
		Short: "Collect fresh hardware data and replace the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			snap, err := app.SpecsCLI.Rescan(context.Background())
			if err != nil {
				return err
			}
			printSnapshot(cmd, snap)
			return nil
		},
	})

	specs.AddCommand(&cobra.Command{
		Use:   "analyze",
		Short: "Report bottlenecks and overall system health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			analysis, err := app.SpecsCLI.Analyze(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "health: %s\n", analysis.OverallHealth)
			for _, issue := range analysis.Issues {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "issue: %s\n", issue)
			}
			for _, rec := range analysis.Recommendations {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recommendation: %s\n", rec)
			}
			return nil
		},
	})

	return specs
}

func newBenchmarkCmd(dataDir *string) *cobra.Command {
	benchmark := &cobra.Command{Use: "benchmark", Short: "Benchmark runner commands"}

	var benchType string
	var local bool
	run := &cobra.Command{
		Use:   "run --type <type>",
		Short: "Run a benchmark and record the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(benchType) == "" {
				return fmt.Errorf("--type is required (cpu|gpu|hybrid|gaming|office|editing|ai-ml)")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			cli := app.BenchCLI
			if local {
				cli = app.BenchLocalCLI
			}
			result, err := cli.Run(context.Background(), benchType)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: overall=%d cpu=%d gpu=%d ram=%d temp=%.1f°C\n",
				result.BenchmarkType, result.OverallScore, result.CPUScore, result.GPUScore, result.RAMScore, result.AvgTemp)
			return nil
		},
	}
	run.Flags().StringVar(&benchType, "type", "", "benchmark type")
	run.Flags().BoolVar(&local, "local", false, "simulate locally even when a backend is configured")

	benchmark.AddCommand(run)

	benchmark.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List results, merging local history with the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.BenchCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no results")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n",
					r.ID, r.BenchmarkType, r.OverallScore, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	})

	benchmark.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "List locally saved results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.BenchCLI.History(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no saved results")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n",
					r.ID, r.BenchmarkType, r.OverallScore, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	})

	benchmark.AddCommand(&cobra.Command{
		Use:   "compare",
		Short: "Compare your hardware against backend averages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			c, err := app.BenchCLI.Compare(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s / %s / %dGB across %d machines:\n",
				c.CPUModel, c.GPUModel, c.RAMGB, c.SampleSize)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "avg cpu=%.0f gpu=%.0f overall=%.0f\n",
				c.AvgCPUScore, c.AvgGPUScore, c.AvgOverallScore)
			return nil
		},
	})

	benchmark.AddCommand(&cobra.Command{
		Use:   "breakdown",
		Short: "Show the bottleneck breakdown of the latest result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			b, err := app.BenchCLI.Breakdown(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cpu=%.1f%% gpu=%.1f%% ram=%.1f%% temp=%.1f%%\n",
				b.CPU, b.GPU, b.RAM, b.Temp)
			return nil
		},
	})

	return benchmark
}

func newReviewCmd(dataDir *string) *cobra.Command {
	review := &cobra.Command{Use: "review", Short: "Community review board commands"}

	review.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Post a review as the signed-in user",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := app.Username(context.Background())
			if err != nil {
				return err
			}
			out, err := app.ReviewCLI.Add(context.Background(), username, strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "posted %s\n", out.ID)
			return nil
		},
	})

	review.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reviews, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, _ := app.Username(context.Background())
			reviews, err := app.ReviewCLI.List(context.Background(), username)
			if err != nil {
				return err
			}
			if len(reviews) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reviews")
				return nil
			}
			for _, r := range reviews {
				marker := " "
				if r.Own {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%s\n",
					marker, r.ID, r.User, r.CreatedAt.Format("2006-01-02 15:04"), r.Comment)
			}
			return nil
		},
	})

	review.AddCommand(&cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of your own review",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := app.Username(context.Background())
			if err != nil {
				return err
			}
			out, err := app.ReviewCLI.Edit(context.Background(), username, args[0], strings.Join(args[1:], " "))
			if errors.Is(err, apperrors.ErrNotFound) {
				// Already gone; nothing to edit.
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no review %s\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", out.ID)
			return nil
		},
	})

	review.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete your own review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := app.Username(context.Background())
			if err != nil {
				return err
			}
			err = app.ReviewCLI.Delete(context.Background(), username, args[0])
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	return review
}

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Account profile commands"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			user, err := app.AccountCLI.Whoami(context.Background())
			if err != nil {
				return err
			}
			avatar := "none"
			if user.Avatar != "" {
				avatar = "set"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "username: %s\nemail: %s\navatar: %s\n", user.Username, user.Email, avatar)
			if !user.JoinedDate.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "joined: %s\n", user.JoinedDate.Format("2006-01-02"))
			}
			return nil
		},
	})

	var username, email, avatarPath string
	update := &cobra.Command{
		Use:   "update [--username <name>] [--email <addr>] [--avatar <path>]",
		Short: "Update username, email or avatar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" && email == "" && avatarPath == "" {
				return fmt.Errorf("nothing to update: pass --username, --email or --avatar")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			user, err := app.AccountCLI.UpdateProfile(context.Background(), username, email, avatarPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
	update.Flags().StringVar(&username, "username", "", "new username")
	update.Flags().StringVar(&email, "email", "", "new email address")
	update.Flags().StringVar(&avatarPath, "avatar", "", "path to an avatar image")
	profile.AddCommand(update)

	var confirmed bool
	del := &cobra.Command{
		Use:   "delete --yes",
		Short: "Delete the account and all server-side data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to delete without --yes")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.DeleteAccount(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "account deleted")
			return nil
		},
	}
	del.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")
	profile.AddCommand(del)

	return profile
}

func newProbeCmd(dataDir *string) *cobra.Command {
	probe := &cobra.Command{Use: "probe", Short: "Hardware probe plugin commands"}

	probe.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed probes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			infos, err := app.ProbeCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no probes installed")
				return nil
			}
			for _, info := range infos {
				state := "disabled"
				if info.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					info.Name, info.Version, state, strings.Join(info.Capabilities, ","))
			}
			return nil
		},
	})

	probe.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check probe checksums, binaries, and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.ProbeCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = r.Error
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tchecksum=%t binary=%t lifecycle=%t\t%s\n",
					r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK, status)
			}
			return nil
		},
	})

	probe.AddCommand(&cobra.Command{
		Use:   "snapshot <name>",
		Short: "Collect a hardware snapshot from a probe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			snap, err := app.ProbeCLI.Snapshot(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "os: %s\ncpu: %s (%dc/%dt) %.0f%%\ngpu: %s %dGB %.0f%%\nram: %dGB %s %.0f%%\nstorage: %s %dGB %.0f%%\n",
				snap.OS,
				snap.CPUModel, snap.CPUCores, snap.CPUThreads, snap.CPUUsagePct,
				snap.GPUModel, snap.GPUVRAMGB, snap.GPUUsagePct,
				snap.RAMTotalGB, snap.RAMSpeed, snap.RAMUsagePct,
				snap.StorageKind, snap.StorageGB, snap.StorageUsagePct)
			return nil
		},
	})

	probe.AddCommand(&cobra.Command{
		Use:   "live <name>",
		Short: "Sample live utilization from a probe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			sample, err := app.ProbeCLI.Live(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cpu=%.1f%% gpu=%.1f%% temp=%.1f°C\n",
				sample.CPU, sample.GPU, sample.Temp)
			return nil
		},
	})

	return probe
}

func printSnapshot(cmd *cobra.Command, snap specsdto.SnapshotOutput) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "os: %s\n", snap.OS)
	_, _ = fmt.Fprintf(out, "cpu: %s (%d cores / %d threads) %.0f%%\n",
		snap.CPU.Model, snap.CPU.Cores, snap.CPU.Threads, snap.CPU.UsagePct)
	_, _ = fmt.Fprintf(out, "gpu: %s %dGB %.0f%%\n", snap.GPU.Model, snap.GPU.VRAMGB, snap.GPU.UsagePct)
	_, _ = fmt.Fprintf(out, "ram: %dGB %s %.0f%%\n", snap.RAM.TotalGB, snap.RAM.Speed, snap.RAM.UsagePct)
	_, _ = fmt.Fprintf(out, "storage: %s %dGB %.0f%%\n", snap.Storage.Kind, snap.Storage.TotalGB, snap.Storage.UsagePct)
	_, _ = fmt.Fprintf(out, "collected: %s\n", snap.CollectedAt.Format("2006-01-02 15:04:05"))
}
