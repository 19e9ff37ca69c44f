// seehuhn.de/go/bevel - bevelled colour fonts from outline fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"seehuhn.de/go/bevel"
	"seehuhn.de/go/bevel/internal/buildinfo"
	"seehuhn.de/go/bevel/internal/profile"
	"seehuhn.de/go/bevel/paint"
	"seehuhn.de/go/bevel/source"
)

var (
	configArg  = flag.String("config", "", "read bevel parameters from TOML `file`")
	verbose    = flag.Bool("v", false, "show debug messages")
	inspect    = flag.Bool("inspect", false, "show the colour information of a font instead of processing it")
	parallel   = flag.Bool("j", false, "build the masters concurrently")
	version    = flag.Bool("version", false, "print the version and exit")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bevel \u2014 turn a font into bevelled colour font masters\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("bevel"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  bevel [options] <font>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font   a YAML font source (.yaml) or a binary font (.ttf, .otf)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bevel MyFont.yaml\n")
		fmt.Fprintf(os.Stderr, "  bevel -config deep.toml MyFont.ttf\n")
		fmt.Fprintf(os.Stderr, "  bevel -inspect MyFont-Normal.yaml\n")
	}
	flag.Parse()

	if *version {
		v := buildinfo.Version()
		if v == "" {
			v = "unknown"
		}
		fmt.Println("bevel", v)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "bevel:", err)
		os.Exit(1)
	}
}

func run(fname string) (err error) {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stop())
	}()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	bevel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *inspect {
		return showColor(os.Stdout, fname)
	}

	cfg := bevel.DefaultConfig()
	if *configArg != "" {
		cfg, err = bevel.LoadConfig(*configArg)
		if err != nil {
			return err
		}
	}
	if *parallel {
		cfg.Parallel = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	res, err := bevel.Run(ctx, fname, cfg)
	if err != nil {
		return err
	}
	for _, m := range res.Masters {
		fmt.Println(m)
	}
	fmt.Println(res.Designspace)
	return nil
}

func showColor(w io.Writer, fname string) error {
	f, err := source.Load(fname)
	if err != nil {
		return err
	}
	r, err := bevel.Inspect(f)
	if err != nil {
		return err
	}

	for i, pal := range r.Palettes {
		fmt.Fprintf(w, "palette %d:\n", i)
		for j, c := range pal {
			fmt.Fprintf(w, "  %d  #%s\n", j, c.Hex())
		}
	}
	for _, name := range r.ColorGlyphs {
		fmt.Fprintf(w, "%s:", name)
		if layers, ok := r.Graph[name].(*paint.Layers); ok {
			for _, l := range layers.Glyphs {
				fmt.Fprintf(w, " %s", l)
			}
		}
		fmt.Fprintln(w)
	}
	if len(r.ColorGlyphs) == 0 {
		fmt.Fprintln(w, "no colour glyphs")
	}
	return nil
}
