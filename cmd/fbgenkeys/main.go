package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"

	"github.com/nakagami/fbgenkeys"
	_ "github.com/nakagami/firebirdsql"
)

var ErrConflictingColumns = errors.New("--index and --name are mutually exclusive")

// Context is passed to every command's Run method.
type Context struct {
	Out    io.Writer
	Logger *slog.Logger
}

// AnalyzeCmd reports how a statement is classified, without a connection.
type AnalyzeCmd struct {
	SQL string `arg:"" name:"sql" help:"SQL statement"`
}

func (cmd *AnalyzeCmd) Run(ctx *Context) error {
	pq := fbgenkeys.AnalyzeQuery(cmd.SQL)
	table := pq.TableName
	if table == "" {
		table = "-"
	}
	fmt.Fprintf(ctx.Out, "kind: %s\n", pq.Kind)
	fmt.Fprintf(ctx.Out, "table: %s\n", table)
	fmt.Fprintf(ctx.Out, "returning: %t\n", pq.HasReturning)
	return nil
}

// RewriteCmd prints the statement as it would be prepared.
type RewriteCmd struct {
	DSN   string   `name:"dsn" help:"Firebird DSN, user:password@host[:port]/database[?options]" required:"" env:"FBGENKEYS_DSN"`
	Keys  string   `help:"Generated keys for the whole row" enum:"all,none" default:"all"`
	Index []int    `help:"1-based column position to return (repeatable)" short:"i"`
	Name  []string `help:"Column name to return (repeatable)" short:"n"`
	SQL   string   `arg:"" name:"sql" help:"SQL statement"`
}

func (cmd *RewriteCmd) directive() (fbgenkeys.Directive, error) {
	switch {
	case len(cmd.Index) > 0 && len(cmd.Name) > 0:
		return fbgenkeys.Directive{}, ErrConflictingColumns
	case len(cmd.Index) > 0:
		return fbgenkeys.ColumnIndexes(cmd.Index...)
	case len(cmd.Name) > 0:
		return fbgenkeys.ColumnNames(cmd.Name...)
	case cmd.Keys == "none":
		return fbgenkeys.NoGeneratedKeys(), nil
	}
	return fbgenkeys.ReturnGeneratedKeys(), nil
}

func (cmd *RewriteCmd) Run(ctx *Context) error {
	d, err := cmd.directive()
	if err != nil {
		return err
	}
	db, err := sql.Open("firebirdsql", cmd.DSN)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer db.Close()
	return cmd.rewrite(context.Background(), ctx, db, d)
}

func (cmd *RewriteCmd) rewrite(c context.Context, ctx *Context, q fbgenkeys.Queryer, d fbgenkeys.Directive) error {
	gk, err := fbgenkeys.NewGeneratedKeysSupportFromDSN(c, q, cmd.DSN, fbgenkeys.WithLogger(ctx.Logger))
	if err != nil {
		return err
	}
	query, err := gk.BuildQuery(c, cmd.SQL, d)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, query.QueryString)
	if !query.GeneratesKeys {
		ctx.Logger.Info("statement does not generate keys")
	}
	return nil
}

var CLI struct {
	Verbose bool       `help:"Enable debug logging" short:"v"`
	Analyze AnalyzeCmd `cmd:"" help:"Classify a statement and find its table"`
	Rewrite RewriteCmd `cmd:"" help:"Add a RETURNING clause for generated keys"`
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fbgenkeys"),
		kong.Description("Generated keys query rewriting for Firebird."))

	err := ctx.Run(&Context{
		Out:    os.Stdout,
		Logger: newLogger(os.Stderr, CLI.Verbose),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
