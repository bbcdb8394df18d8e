package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/lib-x/scel"
	"github.com/lib-x/scel/internal/cache"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "print dictionary metadata",
	ArgsUsage: "FILE...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "cache metadata in the redis server at `ADDR`",
			EnvVars: []string{"SCEL_REDIS_ADDR"},
		},
	},
	Action: func(c *cli.Context) error {
		paths := c.Args().Slice()
		if len(paths) == 0 {
			return fmt.Errorf("%w: no input files", ErrFlagParse)
		}

		lookup, closeLookup := openInfoLookup(c.Context, c.String("redis-addr"))
		defer closeLookup()

		headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
		columnFmt := color.New(color.FgYellow).SprintfFunc()
		tbl := table.New("File", "Name", "Category", "Words", "Example")
		tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
		tbl.WithWriter(c.App.Writer)

		var failed int
		for _, path := range paths {
			info, err := lookup(c.Context, path)
			if err != nil {
				fmt.Fprintln(c.App.ErrWriter, err)
				failed++
				continue
			}
			tbl.AddRow(path, info.Name, info.Category, strconv.FormatUint(uint64(info.WordCount), 10), info.Example)
		}
		tbl.Print()

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d files could not be read", ErrScelutil, failed, len(paths))
		}
		return nil
	},
}

type infoLookup func(ctx context.Context, path string) (*scel.ScelInfo, error)

// openInfoLookup returns a cached lookup when a redis address is given and
// reachable, and a direct file read otherwise. The returned func releases
// the cache connection.
func openInfoLookup(ctx context.Context, redisAddr string) (infoLookup, func()) {
	direct := func(_ context.Context, path string) (*scel.ScelInfo, error) {
		return scel.ReadInfo(path)
	}
	if redisAddr == "" {
		return direct, func() {}
	}

	store, err := cache.NewRedisStore(ctx, redisAddr)
	if err != nil {
		log.Warningf("Metadata cache disabled: %v", err)
		return direct, func() {}
	}
	infoCache := cache.NewInfoCache(store, cache.DefaultTTL)
	lookup := func(ctx context.Context, path string) (*scel.ScelInfo, error) {
		sa, err := infoCache.Accessor(ctx, path)
		if err != nil {
			return nil, err
		}
		return sa.Info, nil
	}
	return lookup, func() {
		if err := store.Close(); err != nil {
			log.Warningf("Closing metadata cache: %v", err)
		}
	}
}
