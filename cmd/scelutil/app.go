//
// Copyright (C) 2023 Quan Chen <chenquan_act@163.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// version is set at build time.
var version = "devel"

// ErrScelutil is a parent error for all command errors.
var ErrScelutil = errors.New("scelutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrScelutil)

var log = logging.MustGetLogger("scelutil")

const logFormat = `%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`

// setupLogging sends all loggers to w, at DEBUG when verbose and WARNING
// otherwise.
func setupLogging(w io.Writer, verbose bool) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(logFormat))
	leveled := logging.AddModuleLevel(formatted)
	level := logging.WARNING
	if verbose {
		level = logging.DEBUG
	}
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

func newScelutilApp() *cli.App {
	return &cli.App{
		Name:    filepath.Base(os.Args[0]),
		Usage:   "Inspect and convert Sogou SCEL cell dictionaries.",
		Version: version,
		Description: strings.Join([]string{
			"Reads SCEL cell dictionaries and converts them to text word lists.",
			"http://github.com/lib-x/scel",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "print debug logs to stderr",
				Aliases: []string{"v"},
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.App.ErrWriter, c.Bool("verbose"))
			return nil
		},
		HideHelpCommand: true,
		Commands: []*cli.Command{
			infoCommand,
			convertCommand,
		},
	}
}
