package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/ancestry"
	"github.com/syssam/ancestry/dialect"
	"github.com/syssam/ancestry/dialect/sql"
	"github.com/syssam/ancestry/dialect/sql/schema"
	"github.com/syssam/ancestry/dialect/sql/sqlgraph"
	"github.com/syssam/ancestry/graph"
)

// app holds the state shared by all commands.
type app struct {
	configFile string
	flags      Config
	cfg        *Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "ancestry",
		Short:         "Find ancestor routes over a relational schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	f := cmd.PersistentFlags()
	f.StringVarP(&a.configFile, "config", "c", "", "path to a YAML config file")
	f.StringVar(&a.flags.Dialect, "dialect", dialect.SQLite, "database dialect (sqlite, postgres, mysql)")
	f.StringVar(&a.flags.DSN, "dsn", "", "database connection string")
	f.StringVar(&a.flags.SchemaName, "schema-name", "", "database schema to inspect")
	f.StringVarP(&a.flags.Schema, "schema", "s", "", "path to a YAML schema file, used instead of inspecting the database")
	f.BoolVar(&a.flags.Debug, "debug", false, "log executed statements")
	f.DurationVar(&a.flags.SlowThreshold, "slow-threshold", 0, "log statements slower than this at warn level")
	cmd.AddCommand(
		a.routeCmd(),
		a.sqlCmd(),
		a.queryCmd(),
		a.routesCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("dialect") {
		cfg.Dialect = a.flags.Dialect
	}
	if f.Changed("dsn") {
		cfg.DSN = a.flags.DSN
	}
	if f.Changed("schema-name") {
		cfg.SchemaName = a.flags.SchemaName
	}
	if f.Changed("schema") {
		cfg.Schema = a.flags.Schema
	}
	if f.Changed("debug") {
		cfg.Debug = a.flags.Debug
	}
	if f.Changed("slow-threshold") {
		cfg.SlowThreshold = a.flags.SlowThreshold
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// open connects to the configured database.
func (a *app) open() (*sql.Driver, error) {
	if a.cfg.DSN == "" {
		return nil, fmt.Errorf("a dsn is required")
	}
	drv, err := sql.Open(a.cfg.Dialect, a.cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return drv, nil
}

// driver wraps drv with statement logging when debugging.
func (a *app) driver(drv *sql.Driver) dialect.Driver {
	if !a.cfg.Debug {
		return drv
	}
	return sql.NewDebugDriver(drv, sql.DebugWithLogger(a.log), sql.DebugWithSlowThreshold(a.cfg.SlowThreshold))
}

// graph loads the schema file, or inspects the database when none is set.
func (a *app) graph(ctx context.Context) (*graph.Graph, error) {
	if a.cfg.Schema != "" {
		return graph.LoadFile(a.cfg.Schema, graph.WithLogger(a.log))
	}
	drv, err := a.open()
	if err != nil {
		return nil, err
	}
	defer drv.Close()
	var opts []schema.InspectOption
	if a.cfg.SchemaName != "" {
		opts = append(opts, schema.WithSchemaName(a.cfg.SchemaName))
	}
	return schema.Inspect(ctx, drv, append(opts, schema.WithLogger(a.log))...)
}

func (a *app) routeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route CHILD PARENT",
		Short: "Print the shortest route from a child type to an ancestor type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}
			r, err := ancestry.New(g, ancestry.WithLogger(a.log)).Route(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d hops)\n", r, r.Hops())
			return nil
		},
	}
}

// parentQuery composes the query over the parents of the child rows
// matching the where flags.
func (a *app) parentQuery(g *graph.Graph, child, parent string, where []string) (*sqlgraph.Query, error) {
	var preds []func(*sql.Selector)
	for _, w := range where {
		column, value, ok := strings.Cut(w, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid --where %q, expect column=value", w)
		}
		preds = append(preds, sql.FieldEQ(column, value))
	}
	q, err := sqlgraph.NewQuery(g, child, preds...)
	if err != nil {
		return nil, err
	}
	out, err := ancestry.New(g, ancestry.WithLogger(a.log)).FindParent(child, parent, q)
	if err != nil {
		return nil, err
	}
	return out.(*sqlgraph.Query), nil
}

func (a *app) sqlCmd() *cobra.Command {
	var where []string
	cmd := &cobra.Command{
		Use:   "sql CHILD PARENT",
		Short: "Print the SQL selecting the ancestors of the child rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}
			q, err := a.parentQuery(g, args[0], args[1], where)
			if err != nil {
				return err
			}
			query, qargs := q.SQL(a.cfg.Dialect)
			fmt.Fprintln(cmd.OutOrStdout(), query)
			if len(qargs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "-- args: %v\n", qargs)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "filter child rows by column=value (repeatable)")
	return cmd
}

func (a *app) queryCmd() *cobra.Command {
	var where []string
	cmd := &cobra.Command{
		Use:   "query CHILD PARENT",
		Short: "Print the ancestor rows of the child rows as JSON lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := a.graph(ctx)
			if err != nil {
				return err
			}
			q, err := a.parentQuery(g, args[0], args[1], where)
			if err != nil {
				return err
			}
			drv, err := a.open()
			if err != nil {
				return err
			}
			defer drv.Close()
			rows, err := q.All(ctx, a.driver(drv))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, r := range rows {
				if err := enc.Encode(r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "filter child rows by column=value (repeatable)")
	return cmd
}

func (a *app) routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the routes between every child type and each of its ancestors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.graph(cmd.Context())
			if err != nil {
				return err
			}
			routes, err := allRoutes(cmd.Context(), ancestry.New(g, ancestry.WithLogger(a.log)), g)
			if err != nil {
				return err
			}
			for _, r := range routes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %s\n", r.First(), r.Last(), r)
			}
			return nil
		},
	}
}

// allRoutes computes the routes of every reachable (child, ancestor) pair
// concurrently. Routes are sorted by child, then by ancestor declaration order.
func allRoutes(ctx context.Context, client *ancestry.Client, g *graph.Graph) ([]*ancestry.Route, error) {
	var (
		mu     sync.Mutex
		routes []*ancestry.Route
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, child := range g.Types {
		if child.CompositeKey() {
			continue
		}
		for _, parent := range g.Types {
			if child == parent {
				continue
			}
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := client.Route(child.Name, parent.Name)
				switch {
				case ancestry.IsNoRoute(err):
					return nil
				case err != nil:
					return err
				}
				mu.Lock()
				routes = append(routes, r)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	slices.SortFunc(routes, func(a, b *ancestry.Route) int {
		if d := a.First().ID() - b.First().ID(); d != 0 {
			return int(d)
		}
		return int(a.Last().ID() - b.Last().ID())
	})
	return routes, nil
}
