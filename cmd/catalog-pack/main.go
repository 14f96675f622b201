// Command catalog-pack merges product feeds into one validated catalog file
// that the server can load with --catalog-file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/oolio-storefront/internal/domain/catalog"
)

func main() {
	var out string
	flag.StringVar(&out, "out", "catalog.json.gz", "output file; gzip-compressed when it ends in .gz")
	flag.Parse()

	if flag.NArg() == 0 {
		slog.Error("usage: catalog-pack [--out file] feed.json [feed.json.gz ...]")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, flag.Args(), out); err != nil {
		slog.Error("catalog pack failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("catalog pack completed successfully", slog.String("out", out))
}

func run(ctx context.Context, feeds []string, out string) error {
	var products []catalog.Product
	for _, path := range feeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := catalog.Load(path)
		if err != nil {
			return errors.Wrapf(err, "load %s", path)
		}
		slog.Info("feed loaded", slog.String("path", path), slog.Int("products", len(c.List())))
		products = append(products, c.List()...)
	}

	// Duplicate ids across feeds are rejected here.
	merged, err := catalog.New(products)
	if err != nil {
		return errors.Wrap(err, "merge feeds")
	}
	return write(out, merged)
}

func write(path string, c *catalog.Catalog) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "close output")
		}
	}()

	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		gz := pgzip.NewWriter(f)
		defer func() {
			if err := gz.Close(); err != nil && rerr == nil {
				rerr = errors.Wrap(err, "flush gzip")
			}
		}()
		w = gz
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.List()); err != nil {
		return errors.Wrap(err, "encode catalog")
	}
	return nil
}
