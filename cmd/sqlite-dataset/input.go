package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	dataset "aslevy.com/sqlite-dataset"
	"aslevy.com/sqlite-dataset/internal/dlog"
	"aslevy.com/sqlite-dataset/internal/ioutil"
)

var errStdinRepeated = errors.New(`stdin ("-") may be given only once`)

// readRecords decodes the JSON objects in each file concurrently and returns
// all records in the order of files. The name "-" reads stdin.
func readRecords(ctx context.Context, stdin io.Reader, files ...string) ([]dataset.Record, error) {
	var stdins int
	for _, name := range files {
		if name == "-" {
			stdins++
		}
	}
	if stdins > 1 {
		return nil, errStdinRepeated
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([][]dataset.Record, len(files))
	for i, name := range files {
		g.Go(func() error {
			recs, err := readFile(ctx, stdin, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []dataset.Record
	for i, recs := range results {
		dlog.Printf("read %d records from %s", len(recs), files[i])
		records = append(records, recs...)
	}
	return records, nil
}

func readFile(ctx context.Context, stdin io.Reader, name string) (_ []dataset.Record, rerr error) {
	r, err := ioutil.OpenInput(name, stdin)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			rerr = errors.Join(rerr, err)
		}
	}()
	return decodeRecords(ctx, r)
}

// decodeRecords decodes a stream of JSON objects, typically one per line.
func decodeRecords(ctx context.Context, r io.Reader) ([]dataset.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []dataset.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var obj map[string]any
		err := dec.Decode(&obj)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records), err)
		}
		rec := make(dataset.Record, len(obj))
		for k, v := range obj {
			if rec[k], err = sqlValue(v); err != nil {
				return nil, fmt.Errorf("record %d: field %q: %w", len(records), k, err)
			}
		}
		records = append(records, rec)
	}
}

// sqlValue converts a decoded JSON value into a value the driver accepts.
// Objects and arrays are stored as their JSON text.
func sqlValue(v any) (any, error) {
	switch v := v.(type) {
	case nil, bool, string:
		return v, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		return v.Float64()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
}
