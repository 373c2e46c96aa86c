package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	gdk "github.com/ProtoXCode/Protox-GDK"
	"github.com/ProtoXCode/Protox-GDK/sbf"
	"github.com/ProtoXCode/Protox-GDK/sprite"
)

const defaultDB = "gdkimg.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func readDocument(file string) (*sprite.Document, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var doc sprite.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "gdkimg"
	app.Usage = "GDK sprite asset utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GDKIMG_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode a sprite JSON document to a binary asset",
			ArgsUsage: "FILE.json FILE.gdkimg",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "raw",
					Usage: "never run-length compress frames",
				},
				&cli.BoolFlag{
					Name:  "rle",
					Usage: "always run-length compress frames",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				doc, err := readDocument(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				mode := sbf.ModeAuto
				switch {
				case c.Bool("raw"):
					mode = sbf.ModeRaw
				case c.Bool("rle"):
					mode = sbf.ModeRLE
				}

				b, err := sbf.Encode(doc, mode)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), b, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "decode",
			Usage:     "Decode a binary asset to a sprite JSON document",
			ArgsUsage: "FILE.gdkimg FILE.json",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				doc, err := sbf.Decode(b)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				out, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), append(out, '\n'), 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Print a summary of a binary asset",
			ArgsUsage: "FILE.gdkimg",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				h, err := sbf.DecodeHeader(b)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				doc, err := sbf.Decode(b)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("version:    %d\n", h.Version)
				fmt.Printf("compressed: %t\n", h.RLE())
				fmt.Printf("size:       %dx%d\n", h.Width, h.Height)
				fmt.Printf("frames:     %d\n", h.FrameCount)
				fmt.Printf("palette:    %d entries\n", h.PaletteCount)
				fmt.Printf("name:       %s\n", doc.Name)
				fmt.Printf("author:     %s\n", doc.Author)
				fmt.Printf("tags:       %v\n", doc.Tags)
				fmt.Printf("fps:        %d\n", doc.FPS)
				fmt.Printf("loop:       %t\n", doc.Loop)
				for name, a := range doc.Animations {
					fmt.Printf("animation:  %s %v\n", name, a.Frames)
				}
				if len(doc.Extra) > 0 {
					fmt.Printf("extra:      %d unrecognized entries\n", len(doc.Extra))
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan a directory tree and catalog every sprite asset",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of parallel decode workers",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := log.New(ioutil.Discard, "", 0)
				if c.Bool("verbose") {
					logger.SetOutput(os.Stderr)
				}

				catalog, err := gdk.NewCatalog(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer catalog.Close()

				t := gdk.New(catalog, logger)

				if err := t.Scan(c.Args().First(), c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
