package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/lib-x/scel"
)

var locators = map[string]scel.SectionLocator{
	"crosscheck": scel.CrossCheckLocator{},
	"pattern":    scel.PatternLocator{},
	"table":      scel.TableEndLocator{},
}

var convertCommand = &cli.Command{
	Name:      "convert",
	Usage:     "convert dictionaries to a Rime word list",
	ArgsUsage: "FILE...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Usage:    "write the word list to `PATH` (- for stdout)",
			Aliases:  []string{"o"},
			Required: true,
		},
		&cli.IntFlag{
			Name:  "min-length",
			Usage: "drop words shorter than `N` characters",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "max-length",
			Usage: "drop words longer than `N` characters",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "min-rank",
			Usage: "drop words ranked below `N`",
			Value: 0,
		},
		&cli.IntFlag{
			Name:  "max-rank",
			Usage: "drop words ranked above `N`",
			Value: math.MaxInt32,
		},
		&cli.IntFlag{
			Name:  "max-entries",
			Usage: "stop decoding a file after `N` records",
			Value: scel.DefaultMaxEntries,
		},
		&cli.BoolFlag{
			Name:  "all-homophones",
			Usage: "keep every word of a homophone group, not only the first",
		},
		&cli.StringFlag{
			Name:  "locator",
			Usage: "dictionary section locator: crosscheck, pattern or table",
			Value: "crosscheck",
		},
	},
	Action: func(c *cli.Context) error {
		paths := c.Args().Slice()
		if len(paths) == 0 {
			return fmt.Errorf("%w: no input files", ErrFlagParse)
		}
		locator, ok := locators[c.String("locator")]
		if !ok {
			return fmt.Errorf("%w: unknown locator %q", ErrFlagParse, c.String("locator"))
		}
		if c.Int("min-rank") < math.MinInt32 || c.Int("max-rank") > math.MaxInt32 {
			return fmt.Errorf("%w: rank bounds must fit in 32 bits", ErrFlagParse)
		}

		importer := &scel.ScelImport{Options: &scel.DecodeOptions{
			MaxEntries:    c.Int("max-entries"),
			AllHomophones: c.Bool("all-homophones"),
			Locator:       locator,
		}}
		filters := []scel.Filter{
			scel.LengthFilter{Min: c.Int("min-length"), Max: c.Int("max-length")},
			scel.RankFilter{Min: int32(c.Int("min-rank")), Max: int32(c.Int("max-rank"))},
		}

		var all []*scel.Record
		for _, path := range paths {
			records, err := importer.Import(c.Context, path)
			if err != nil {
				return err
			}
			kept := scel.ApplyFilters(records, filters...)
			log.Infof("%s: %d records decoded, %d kept", path, len(records), len(kept))
			all = append(all, kept...)
		}

		if err := writeOutput(c.String("output"), c.App.Writer, all); err != nil {
			return err
		}

		fmt.Fprintf(c.App.ErrWriter, "%s %d words from %d file(s)\n",
			color.GreenString("converted"), len(all), len(paths))
		return nil
	},
}

func writeOutput(path string, stdout io.Writer, records []*scel.Record) error {
	exporter := scel.NewRimeExporter()
	if path == "-" {
		return exporter.Export(stdout, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output '%s': %w", path, err)
	}
	if err := exporter.Export(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
