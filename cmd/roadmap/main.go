package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"roadmap/internal/config"
	"roadmap/internal/db"
	"roadmap/internal/domain"
	"roadmap/internal/engine"
	"roadmap/internal/events"
	"roadmap/internal/filter"
	"roadmap/internal/logging"
	"roadmap/internal/migrate"
	"roadmap/internal/server"
	"roadmap/internal/sheets"
	"roadmap/internal/stats"
	"roadmap/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Roadmap CLI",
	Long: `Roadmap tracks a portfolio of software projects with schedules,
milestones, epics and cost/benefit records. The dashboard and team views are
recomputed from the stored collection on every call; nothing is cached.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("ROADMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(teamCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(serveCmd())
}

func projectCmd() *cobra.Command {
	prj := &cobra.Command{Use: "project", Short: "Manage projects"}
	prj.AddCommand(projectListCmd())
	prj.AddCommand(projectCreateCmd())
	prj.AddCommand(projectShowCmd())
	prj.AddCommand(projectUpdateCmd())
	prj.AddCommand(projectDeleteCmd())
	return prj
}

func addFilterFlags(cmd *cobra.Command, q *string, status, softwareType, priority *[]string) {
	cmd.Flags().StringVar(q, "q", "", "search name, description and technologies")
	cmd.Flags().StringArrayVar(status, "status", []string{}, "status filter (repeatable)")
	cmd.Flags().StringArrayVar(softwareType, "type", []string{}, "software type filter (repeatable)")
	cmd.Flags().StringArrayVar(priority, "priority", []string{}, "priority filter (repeatable)")
}

func projectListCmd() *cobra.Command {
	var q string
	var status, softwareType, priority []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				items := filter.Apply(e.Projects(), q, filter.Filters{
					Status:       status,
					SoftwareType: softwareType,
					Priority:     priority,
				})
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Type", "Status", "Priority", "Progress", "End"})
				for _, p := range items {
					tw.AppendRow(table.Row{p.ID, p.Name, p.SoftwareType, p.Status, p.Priority, fmt.Sprintf("%d%%", p.Progress), p.EndDate})
				}
				tw.Render()
				return nil
			})
		},
	}
	addFilterFlags(cmd, &q, &status, &softwareType, &priority)
	return cmd
}

func projectCreateCmd() *cobra.Command {
	var form domain.ProjectFormData
	var filePath string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Long:  "Creates a project from flags, or from a JSON file with the full form (milestones, epics, cost/benefit).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath != "" {
				data, err := os.ReadFile(filePath)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &form); err != nil {
					return fmt.Errorf("invalid project form JSON: %w", err)
				}
			}
			if form.Name == "" {
				return fmt.Errorf("--name required")
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				p := e.Create(ctx, form)
				return printJSONOrTable(p)
			})
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "project name")
	cmd.Flags().StringVar(&form.Description, "description", "", "description")
	cmd.Flags().StringVar(&form.SoftwareType, "type", "web", "software type (web, mobile, desktop, api, database, devops)")
	cmd.Flags().StringVar(&form.Status, "status", "planning", "status (planning, in-progress, testing, completed, on-hold)")
	cmd.Flags().StringVar(&form.Priority, "priority", "medium", "priority (low, medium, high, critical)")
	cmd.Flags().StringVar(&form.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.EndDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&form.Team, "member", []string{}, "team member (repeatable)")
	cmd.Flags().StringArrayVar(&form.Technologies, "tech", []string{}, "technology (repeatable)")
	cmd.Flags().StringVar(&filePath, "file", "", "path to JSON project form")
	return cmd
}

func projectShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				p, err := e.Get(id)
				if err != nil {
					return err
				}
				return printJSONOrTable(p)
			})
		},
	}
	return cmd
}

func projectUpdateCmd() *cobra.Command {
	var name, description, softwareType, status, priority, start, end string
	var team, tech []string
	var progress int
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Long:  "Merges the given flags into the project. Flags not passed leave their fields untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var patch domain.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("type") {
				patch.SoftwareType = &softwareType
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("priority") {
				patch.Priority = &priority
			}
			if cmd.Flags().Changed("start") {
				patch.StartDate = &start
			}
			if cmd.Flags().Changed("end") {
				patch.EndDate = &end
			}
			if cmd.Flags().Changed("member") {
				patch.Team = &team
			}
			if cmd.Flags().Changed("tech") {
				patch.Technologies = &tech
			}
			if cmd.Flags().Changed("progress") {
				patch.Progress = &progress
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				p, found := e.Update(ctx, id, patch)
				if !found {
					return fmt.Errorf("project %s not found", id)
				}
				return printJSONOrTable(p)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&softwareType, "type", "", "software type")
	cmd.Flags().StringVar(&status, "status", "", "status")
	cmd.Flags().StringVar(&priority, "priority", "", "priority")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&team, "member", []string{}, "team member (repeatable, replaces the list)")
	cmd.Flags().StringArrayVar(&tech, "tech", []string{}, "technology (repeatable, replaces the list)")
	cmd.Flags().IntVar(&progress, "progress", 0, "progress percentage")
	return cmd
}

func projectDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes && !confirm(fmt.Sprintf("Delete project %s? [y/N] ", id)) {
				fmt.Println("aborted")
				return nil
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				if e.Delete(ctx, id) {
					fmt.Printf("deleted %s\n", id)
				} else {
					fmt.Printf("project %s not found, nothing deleted\n", id)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}

func dashboardCmd() *cobra.Command {
	var q string
	var status, softwareType, priority []string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard statistics",
		Long:  "Aggregates the collection as of today: counts, average progress, upcoming deadlines and the financial rollup.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				items := filter.Apply(e.Projects(), q, filter.Filters{
					Status:       status,
					SoftwareType: softwareType,
					Priority:     priority,
				})
				s := stats.Aggregate(items, time.Now().UTC())
				if viper.GetBool("json") {
					return printJSON(s)
				}
				fmt.Printf("Projects: %d total, %d active, %d completed, %d delayed\n",
					s.TotalProjects, s.ActiveProjects, s.CompletedProjects, s.DelayedProjects)
				fmt.Printf("Average progress: %d%%\n", s.AverageProgress)
				fmt.Printf("Estimated cost: %.2f, return: %.2f\n", s.TotalEstimatedCost, s.TotalEstimatedReturn)
				if s.EstimatedROI != nil {
					fmt.Printf("Estimated ROI: %.1f%%\n", *s.EstimatedROI)
				} else {
					fmt.Println("Estimated ROI: n/a")
				}
				if len(s.UpcomingDeadlines) > 0 {
					tw := table.NewWriter()
					tw.SetOutputMirror(os.Stdout)
					tw.AppendHeader(table.Row{"ID", "Name", "End", "Status"})
					for _, p := range s.UpcomingDeadlines {
						tw.AppendRow(table.Row{p.ID, p.Name, p.EndDate, p.Status})
					}
					tw.Render()
				}
				return nil
			})
		},
	}
	addFilterFlags(cmd, &q, &status, &softwareType, &priority)
	return cmd
}

func teamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show team member rollups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				members := stats.TeamStats(e.Projects())
				if viper.GetBool("json") {
					return printJSON(members)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Rank", "Name", "Projects", "Active", "Completed", "Technologies"})
				for _, m := range members {
					tw.AppendRow(table.Row{m.Rank, m.Name, m.ProjectCount, m.ActiveProjects, m.CompletedProjects, strings.Join(m.Technologies, ", ")})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func syncCmd() *cobra.Command {
	sync := &cobra.Command{
		Use:   "sync",
		Short: "Spreadsheet sync",
		Long:  "Pushes flattened project rows to the configured spreadsheet endpoint, or pulls what it holds. The remote schema is simpler than the local one; the two are never reconciled.",
	}
	sync.AddCommand(syncPushCmd())
	sync.AddCommand(syncPullCmd())
	return sync
}

func sheetsClient() (*sheets.Client, error) {
	cfg, err := config.Load(viper.GetString("workspace"))
	if err != nil {
		return nil, err
	}
	if cfg.Sheets.URL == "" {
		return nil, fmt.Errorf("no sheets URL configured; set sheets.url in %s", config.Path(cfg.Workspace))
	}
	client := sheets.New(cfg.Sheets.URL)
	if cfg.Sheets.TimeoutSeconds > 0 {
		client.Timeout = time.Duration(cfg.Sheets.TimeoutSeconds) * time.Second
	}
	return client, nil
}

func syncPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <id>",
		Short: "Append one project to the remote sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			client, err := sheetsClient()
			if err != nil {
				return err
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				p, err := e.Get(id)
				if err != nil {
					return err
				}
				row := sheets.RowFromProject(p)
				if err := client.Append(ctx, row); err != nil {
					return err
				}
				return printJSONOrTable(row)
			})
		},
	}
	return cmd
}

func syncPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch all rows from the remote sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sheetsClient()
			if err != nil {
				return err
			}
			rows, err := client.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(rows)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Name", "Status", "Type", "Progress", "End"})
			for _, r := range rows {
				tw.AppendRow(table.Row{r.ID, r.Name, r.Status, r.SoftwareType, fmt.Sprintf("%d%%", r.Progress), r.EndDate})
			}
			tw.Render()
			return nil
		},
	}
	return cmd
}

func logCmd() *cobra.Command {
	log := &cobra.Command{
		Use:   "log",
		Short: "Mutation event log",
	}
	log.AddCommand(logTailCmd())
	return log
}

func logTailCmd() *cobra.Command {
	var n int
	var evtType, projectID string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Tail mutation events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				items, err := events.Tail(ctx, e.Store.DB, n, evtType, projectID)
				if err != nil {
					return err
				}
				return printJSONOrTable(items)
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of events")
	cmd.Flags().StringVar(&evtType, "type", "", "event type filter")
	cmd.Flags().StringVar(&projectID, "project", "", "project id filter")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")
			cfg, err := config.Load(workspace)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if basePath == "" {
				basePath = cfg.Server.BasePath
			}
			log := logging.New(cfg.Log.Dir)

			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			gw := store.New(conn, log)
			e, err := engine.New(cmd.Context(), gw, log)
			if err != nil {
				return err
			}
			var client *sheets.Client
			if cfg.Sheets.URL != "" {
				client = sheets.New(cfg.Sheets.URL)
				if cfg.Sheets.TimeoutSeconds > 0 {
					client.Timeout = time.Duration(cfg.Sheets.TimeoutSeconds) * time.Second
				}
			}
			handler, err := server.New(server.Config{Engine: e, Sheets: client, BasePath: basePath, Log: log})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			fmt.Printf("Serving Roadmap API on http://%s%s (OpenAPI at %s/openapi.json)\n", addr, basePath, basePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "API base path (default from config)")
	return cmd
}

// --- helpers ---

func withEngine(ctx context.Context, fn func(context.Context, *engine.Engine) error) error {
	workspace := viper.GetString("workspace")
	cfg, err := config.Load(workspace)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Dir)
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := migrate.Migrate(conn); err != nil {
		return err
	}
	gw := store.New(conn, log)
	e, err := engine.New(ctx, gw, log)
	if err != nil {
		return err
	}
	return fn(ctx, e)
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
