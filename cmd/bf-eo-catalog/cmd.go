// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

// stdout receives all command output
var stdout io.Writer = os.Stdout

var commands = cli.Commands{
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the bf-eo-catalog webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the catalog CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:      "inspect",
		Aliases:   []string{"i"},
		Usage:     "Load an item from a file or URL and print it as an EO item",
		ArgsUsage: "<locator>",
		Flags: []cli.Flag{
			cli.BoolFlag{Name: "summary", Usage: "print the GeoJSON scene summary instead of the item"},
		},
		Action: inspectAction,
	},
	cli.Command{
		Name:    "bands",
		Aliases: []string{"b"},
		Usage:   "Print the band common names and their wavelength ranges",
		Action:  bandsAction,
	},
	cli.Command{
		Name:      "ingest",
		Aliases:   []string{"g"},
		Usage:     "Load an item (or, with --list, every item of a list) and store it in the database",
		ArgsUsage: "<locator>",
		Flags: []cli.Flag{
			cli.BoolFlag{Name: "list", Usage: "the locator is a file with one item locator per line"},
			cli.BoolFlag{Name: "gzip", Usage: "the item list is gzip compressed (implied by a .gz suffix)"},
		},
		Action: ingestAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "bf-eo-catalog"
	app.Usage = "Launch a bf-eo-catalog process"
	app.Version = version
	app.Commands = commands
	return
}

func versionAction(*cli.Context) error {
	_, err := fmt.Fprintf(stdout, "bf-eo-catalog version %s\n", version)
	return err
}
