package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"gopkg.in/yaml.v3"

	dataset "aslevy.com/sqlite-dataset"
	"aslevy.com/sqlite-dataset/internal/flagvar"
	"aslevy.com/sqlite-dataset/internal/frame"
	"aslevy.com/sqlite-dataset/internal/outfmt"
)

func runCreate(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	var (
		schemaPath string
		table      string
		cols       []dataset.Column
	)
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file declaring the tables")
	fs.StringVar(&table, "table", "", "name of a single table to create")
	fs.Var(flagvar.List(&cols, dataset.ParseColumn), "col", "column of -table as name:TYPE[:pk|notnull], repeatable")
	pos, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}
	path := pos[0]

	var tables map[string][]dataset.Column
	switch {
	case schemaPath != "" && table != "":
		return fmt.Errorf("create: -schema and -table are mutually exclusive")
	case schemaPath != "":
		if tables, err = dataset.LoadSchemaFile(schemaPath); err != nil {
			return fmt.Errorf("create: %w", err)
		}
	case table != "":
		tables = map[string][]dataset.Column{table: cols}
	default:
		fs.Usage()
		return errUsage
	}

	ds, err := dataset.Create(ctx, path, tables, e.options()...)
	if err != nil {
		return err
	}
	names := ds.TableNames()
	if err := ds.Dispose(); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "created %s with %d tables\n", path, len(names))
	return nil
}

func runTables(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	pos, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}
	return dataset.With(ctx, pos[0], func(ds *dataset.Dataset) (rerr error) {
		out := outfmt.Output(e.stdout)
		defer closeOutput(out, &rerr)
		for _, name := range ds.TableNames() {
			n, err := ds.Count(ctx, name)
			if err != nil {
				return err
			}
			if outfmt.IsRichMarkdown() {
				fmt.Fprintf(out, "- **%s** (%d rows)\n", name, n)
				continue
			}
			fmt.Fprintf(out, "%s\t%d\n", name, n)
		}
		return nil
	}, e.options()...)
}

func runSchema(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	asYAML := fs.Bool("yaml", false, "print the tables as a YAML schema file")
	pos, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}
	path, names := pos[0], pos[1:]

	return dataset.With(ctx, path, func(ds *dataset.Dataset) (rerr error) {
		if *asYAML && len(names) == 0 {
			return writeYAML(e.stdout, ds)
		}
		if len(names) == 0 {
			names = ds.TableNames()
		}
		tables := make([]*dataset.Table, len(names))
		for i, name := range names {
			if tables[i], err = ds.GetTable(name); err != nil {
				return err
			}
		}

		if *asYAML {
			f := schemaFile{Tables: make(map[string][]dataset.Column, len(tables))}
			for _, t := range tables {
				f.Tables[t.Name] = t.Columns
			}
			return writeYAML(e.stdout, f)
		}

		out := outfmt.RawOutput(e.stdout)
		defer closeOutput(out, &rerr)
		stmts := make([]string, len(tables))
		for i, t := range tables {
			stmts[i] = t.CreateSQL()
		}
		return outfmt.WriteSQL(out, stmts...)
	}, e.options()...)
}

// schemaFile mirrors the format read by dataset.LoadSchema.
type schemaFile struct {
	Tables map[string][]dataset.Column `yaml:"tables"`
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	return enc.Close()
}

func runInsert(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	path, table, files := pos[0], pos[1], pos[2:]
	if len(files) == 0 {
		files = []string{"-"}
	}

	records, err := readRecords(ctx, e.stdin, files...)
	if err != nil {
		return err
	}
	err = dataset.With(ctx, path, func(ds *dataset.Dataset) error {
		return ds.AddMany(ctx, table, records)
	}, e.options()...)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "inserted %d records into %s\n", len(records), table)
	return nil
}

func runHead(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	n := fs.Int("n", dataset.DefaultHeadLimit, "number of rows")
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	path, table := pos[0], pos[1]

	return dataset.With(ctx, path, func(ds *dataset.Dataset) (rerr error) {
		rec, err := ds.Head(ctx, table, *n)
		if err != nil {
			return err
		}
		defer rec.Release()

		out := outfmt.Output(e.stdout)
		defer closeOutput(out, &rerr)
		return outfmt.WriteRecord(out, rec)
	}, e.options()...)
}

func runRead(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	var cols []string
	fs.Var(flagvar.Strings(&cols), "cols", "comma separated columns to read, default all")
	limit := fs.Int("limit", 0, "maximum number of rows, 0 reads all")
	chunk := fs.Int("chunk", dataset.DefaultChunkSize, "rows read per batch")
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	path, table := pos[0], pos[1]

	return dataset.With(ctx, path, func(ds *dataset.Dataset) (rerr error) {
		tbl, err := ds.GetTable(table)
		if err != nil {
			return err
		}
		projected, err := tbl.Project(cols...)
		if err != nil {
			return err
		}

		out := outfmt.Output(e.stdout)
		defer closeOutput(out, &rerr)
		tw := outfmt.NewTableWriter(out, frame.Schema(tbl.Name, projected))
		err = ds.ReadChunks(ctx, table, func(rec arrow.Record) error {
			return tw.Write(rec)
		},
			dataset.WithColumns(cols...),
			dataset.WithLimit(*limit),
			dataset.WithChunkSize(*chunk),
		)
		if err != nil {
			return err
		}
		return tw.Flush()
	}, e.options()...)
}

func closeOutput(out io.Closer, rerr *error) {
	if err := out.Close(); err != nil {
		*rerr = errors.Join(*rerr, err)
	}
}
