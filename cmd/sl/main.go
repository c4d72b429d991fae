package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shoulu/internal/app"
	"shoulu/internal/config"
	"shoulu/internal/console"
	"shoulu/internal/domain"
	"shoulu/internal/engine"
	"shoulu/internal/render"
	"shoulu/internal/repo"
	"shoulu/internal/server"
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "sl",
	Short: "Shoulu ordination CLI",
	Long: `Shoulu derives ordination certificates from a disciple's birth data.
- Input: republic-calendar year, month, day, birth hour (earthly branch), gender, ordination level, vocation.
- Derive: title, office, altar, marshals, troops and treasury from the fixed tables.
- Report: the reporting text read aloud at the altar, in general or combat form.
- Personnel: a local roster of saved disciples, kept in the .shoulu workspace database.
- Event log: every roster change, view with 'sl log tail'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("SHOULU")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("actor-id", server.LocalActor, "actor identifier")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("actor-id", rootCmd.PersistentFlags().Lookup("actor-id"))
}

func registerCommands() {
	rootCmd.AddCommand(yearCmd())
	rootCmd.AddCommand(deriveCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(personnelCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(serveCmd())
}

func yearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year <n>",
		Short: "Show the stem-branch pair of a republic-calendar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
				return fmt.Errorf("year %q is not a number", args[0])
			}
			sx := engine.ResolveSexagenary(n)
			if viper.GetBool("json") {
				return printJSON(map[string]any{"year": n, "stem": sx.Stem, "branch": sx.Branch, "name": sx.String()})
			}
			fmt.Printf("民國 %d年 %s\n", n, sx)
			return nil
		},
	}
}

// inputFlags are the birth data flags shared by derive, report and personnel add.
type inputFlags struct {
	year, month, day int
	hour, gender     string
	level, vocation  string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "republic-calendar year (1-120)")
	cmd.Flags().IntVar(&f.month, "month", 0, "lunar month (1-12)")
	cmd.Flags().IntVar(&f.day, "day", 0, "lunar day (1-30)")
	cmd.Flags().StringVar(&f.hour, "hour", "", "birth hour as an earthly branch, e.g. 申")
	cmd.Flags().StringVar(&f.gender, "gender", "", "男 or 女")
	cmd.Flags().StringVar(&f.level, "level", "", "初授, 加授 or 晉授")
	cmd.Flags().StringVar(&f.vocation, "vocation", "", "general or exorcism")
}

// resolve overlays the flags that were set on the configured defaults.
func (f *inputFlags) resolve(cmd *cobra.Command, cfg *config.Config) (domain.Input, error) {
	d := cfg.Defaults
	if cmd.Flags().Changed("year") {
		d.Year = f.year
	}
	if cmd.Flags().Changed("month") {
		d.Month = f.month
	}
	if cmd.Flags().Changed("day") {
		d.Day = f.day
	}
	if cmd.Flags().Changed("hour") {
		d.Hour = f.hour
	}
	if cmd.Flags().Changed("gender") {
		d.Gender = f.gender
	}
	if cmd.Flags().Changed("level") {
		d.Level = f.level
	}
	if cmd.Flags().Changed("vocation") {
		d.Vocation = f.vocation
	}
	in, err := d.Input()
	if err != nil {
		return domain.Input{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return in, nil
}

func deriveCmd() *cobra.Command {
	var flags inputFlags
	var name string
	var save bool
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive an ordination certificate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				in, err := flags.resolve(cmd, w.Config)
				if err != nil {
					return err
				}
				if save {
					rec, err := w.Engine.SaveRecord(ctx, name, in, viper.GetString("actor-id"))
					if err != nil {
						return err
					}
					if viper.GetBool("json") {
						return printJSON(rec)
					}
					fmt.Println(render.Certificate(rec.Name, rec.Result))
					fmt.Fprintf(os.Stderr, "已登記 %s (%s)\n", rec.Name, rec.ID)
					return nil
				}
				res, err := w.Engine.Derive(in)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(res)
				}
				fmt.Println(render.Certificate(name, res))
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "disciple name")
	cmd.Flags().BoolVar(&save, "save", false, "save the result to the personnel roster")
	return cmd
}

func reportCmd() *cobra.Command {
	var flags inputFlags
	var name, mode string
	var clean, short, copyText bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble the reporting text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				in, err := flags.resolve(cmd, w.Config)
				if err != nil {
					return err
				}
				res, err := w.Engine.Derive(in)
				if err != nil {
					return err
				}
				opts, err := w.Engine.ReportOptions(name, mode, in.Vocation)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("clean") {
					opts.CleanDuty = clean
				}
				if cmd.Flags().Changed("short") {
					opts.ShortMarshals = short
				}
				text := engine.Report(res, opts)
				if viper.GetBool("json") {
					if err := printJSON(server.ReportResponse{Mode: string(opts.Mode), Text: text}); err != nil {
						return err
					}
				} else {
					fmt.Println(text)
				}
				if copyText {
					return copyToClipboard(console.SystemClipboard{}, text)
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "disciple name")
	cmd.Flags().StringVar(&mode, "mode", "", "general or combat (default follows the vocation)")
	cmd.Flags().BoolVar(&clean, "clean", true, "one-line duty instead of the office lines")
	cmd.Flags().BoolVar(&short, "short", false, "marshal names without honorifics")
	cmd.Flags().BoolVar(&copyText, "copy", false, "copy the text to the clipboard")
	return cmd
}

func copyToClipboard(cb console.Clipboard, text string) error {
	if err := cb.Copy(text); err != nil {
		logger.Warn("clipboard write failed", zap.Error(err))
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintln(os.Stderr, console.CopiedAck)
	return nil
}

func personnelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "personnel",
		Aliases: []string{"roster"},
		Short:   "Manage the personnel roster",
	}
	cmd.AddCommand(personnelListCmd())
	cmd.AddCommand(personnelShowCmd())
	cmd.AddCommand(personnelAddCmd())
	cmd.AddCommand(personnelRemoveCmd())
	return cmd
}

func personnelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved disciples",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				recs, err := w.Engine.ListRecords(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(recs)
				}
				render.PersonnelTable(os.Stdout, recs)
				return nil
			})
		},
	}
}

func personnelShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved disciple's certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				rec, err := w.Engine.GetRecord(ctx, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(rec)
				}
				fmt.Println(render.Certificate(rec.Name, rec.Result))
				fmt.Printf("%s  %s\n", rec.LunarInfo, rec.CreatedAt)
				return nil
			})
		},
	}
}

func personnelAddCmd() *cobra.Command {
	var flags inputFlags
	var name string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Derive and save a disciple",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				in, err := flags.resolve(cmd, w.Config)
				if err != nil {
					return err
				}
				rec, err := w.Engine.SaveRecord(ctx, name, in, viper.GetString("actor-id"))
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(rec)
				}
				fmt.Printf("已登記 %s (%s)：%s\n", rec.Name, rec.ID, rec.Title)
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "disciple name")
	return cmd
}

func personnelRemoveCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved disciple",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer console.Confirmer = console.Prompt{In: os.Stdin, Out: os.Stderr}
			if yes {
				confirmer = console.Assume(true)
			}
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				return removePersonnel(ctx, w.Engine, confirmer, args[0])
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func removePersonnel(ctx context.Context, e engine.Engine, confirmer console.Confirmer, id string) error {
	question := fmt.Sprintf("確定要刪除 %s 的紀錄嗎？", id)
	if rec, err := e.GetRecord(ctx, id); err == nil {
		question = fmt.Sprintf("確定要刪除 %s (%s) 的紀錄嗎？", rec.Name, id)
	}
	ok, err := confirmer.Confirm(question)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "已取消。")
		return nil
	}
	removed, err := e.RemoveRecord(ctx, id, viper.GetString("actor-id"))
	if err != nil {
		return err
	}
	if viper.GetBool("json") {
		return printJSON(map[string]any{"id": id, "removed": removed})
	}
	if removed {
		fmt.Printf("已刪除 %s\n", id)
	} else {
		fmt.Printf("清冊中沒有 %s\n", id)
	}
	return nil
}

func logCmd() *cobra.Command {
	log := &cobra.Command{
		Use:   "log",
		Short: "Event log",
		Long:  "Every roster change with its actor and payload.",
	}
	log.AddCommand(logTailCmd())
	return log
}

func logTailCmd() *cobra.Command {
	var n int
	var evtType, entityKind, entityID string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Tail events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				evts, err := w.Engine.Repo.LatestEvents(ctx, repo.EventFilter{
					Limit:      n,
					Type:       evtType,
					EntityKind: entityKind,
					EntityID:   entityID,
				})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(evts)
				}
				render.EventTable(os.Stdout, evts)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of events")
	cmd.Flags().StringVar(&evtType, "type", "", "event type filter")
	cmd.Flags().StringVar(&entityKind, "entity-kind", "", "entity kind")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "entity id")
	return cmd
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{Use: "config", Short: "Inspect and create shoulu.yml"}
	cfg.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadOptional(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			return printJSON(c)
		},
	})
	cfg.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate shoulu.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(viper.GetString("workspace")); err != nil {
				return err
			}
			fmt.Println("config ok")
			return nil
		},
	})
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default shoulu.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault()), 0o644); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfg.AddCommand(initCmd)
	return cfg
}

func tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API (needs SHOULU_JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				subject = viper.GetString("actor-id")
			}
			token, err := server.SignToken(viper.GetString("jwt-secret"), subject, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (defaults to --actor-id)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for none")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), func(ctx context.Context, w *app.Workspace) error {
				if !cmd.Flags().Changed("addr") && w.Config.Server.Addr != "" {
					addr = w.Config.Server.Addr
				}
				if !cmd.Flags().Changed("base-path") && w.Config.Server.BasePath != "" {
					basePath = w.Config.Server.BasePath
				}
				authCfg := server.AuthConfig{JWTSecret: viper.GetString("jwt-secret"), Logger: logger}
				if authCfg.JWTSecret == "" {
					logger.Warn("SHOULU_JWT_SECRET not set; personnel writes are unauthenticated")
				}
				handler, err := server.New(server.Config{Engine: w.Engine, BasePath: basePath, Auth: authCfg, Logger: logger})
				if err != nil {
					return err
				}
				srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
				go func() {
					<-ctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					srv.Shutdown(shutdownCtx)
				}()
				fmt.Printf("Serving Shoulu API on http://%s%s (OpenAPI at %s/openapi.json, Swagger UI at /docs)\n", addr, basePath, basePath)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "/v0", "API base path")
	return cmd
}

// --- helpers ---

func withWorkspace(ctx context.Context, fn func(context.Context, *app.Workspace) error) error {
	return app.With(ctx, viper.GetString("workspace"), logger, fn)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
