// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory (default from config)",
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "n",
			Usage: "N-gram size in characters",
		},
		&cli.StringFlag{
			Name:  "script",
			Usage: "Comparable characters: arabic, latin, letters or a Unicode script name",
		},
		&cli.StringFlag{
			Name:  "normalization",
			Usage: "Unicode normalization form applied first (NFC, NFD, NFKC, NFKD)",
		},
		&cli.BoolFlag{
			Name:  "strip-diacritics",
			Usage: "Ignore Arabic harakat and tatweel",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "versesim",
		Usage: "Find verses similar to a text by character n-gram overlap",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import a book of poems",
				ArgsUsage: "[file]",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Book file to import, - for stdin",
						Value:   "-",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of verses written per transaction",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report progress on stderr",
						Value: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find stored verses similar to a text",
				ArgsUsage: "<text>",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.Float64Flag{
						Name:    "min-similarity",
						Aliases: []string{"m"},
						Usage:   "Minimum similarity in percent",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of verses scored concurrently",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results, 0 for all",
					},
				}, searchFlags()...),
			},
			{
				Name:      "similarity",
				Usage:     "Score the second text against the first",
				ArgsUsage: "<text1> <text2>",
				Action:    similarityCommand,
				Flags:     searchFlags(),
			},
			{
				Name:      "ngrams",
				Usage:     "Print the n-grams of a text",
				ArgsUsage: "<text>",
				Action:    ngramsCommand,
				Flags:     searchFlags(),
			},
			{
				Name:   "stats",
				Usage:  "Show database statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
		},
	}
}
