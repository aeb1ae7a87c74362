package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"

	"tinybasic-il/il"
	"tinybasic-il/internal/lineio"
	"tinybasic-il/vm"
)

var debug bool

func atExit(inst *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if inst != nil {
		fmt.Fprintf(os.Stderr, "PC: %d, line: %d\n", inst.PC, inst.BasicLine())
		fmt.Fprintln(os.Stderr, inst.Image.Disassemble(inst.PC))
	}
	os.Exit(1)
}

func loadImage(dialect vm.Dialect, imagePath string) (*il.Image, error) {
	if imagePath == "" {
		if dialect == vm.TBX {
			imagePath = "testdata/tbx.il"
		} else {
			imagePath = "testdata/tinybasic.il"
		}
	}
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening IL image %s", imagePath)
	}
	defer f.Close()
	img, err := il.Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading IL image %s", imagePath)
	}
	return img, nil
}

func loadAutoload(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading BASIC program %s", path)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func run(c *cli.Context) (err error) {
	debug = c.Bool("debug")
	dialect := vm.TinyBasic
	if c.Bool("extended") {
		dialect = vm.TBX
	}

	img, err := loadImage(dialect, c.String("image"))
	if err != nil {
		return err
	}
	autoload, err := loadAutoload(c.String("file"))
	if err != nil {
		return err
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	opts := []vm.Option{
		vm.WithOutput(stdout),
		vm.WithAutoload(autoload),
		vm.WithRandSource(rand.NewSource(randSeed())),
	}
	if lineio.IsTerminal(os.Stdin) {
		opts = append(opts, vm.WithLineReader(lineio.NewTTYReader(os.Stdin, stdout)))
	} else {
		opts = append(opts, vm.WithLineReader(lineio.NewScanner(os.Stdin, stdout)))
	}

	inst, err := vm.New(img, dialect, opts...)
	if err != nil {
		return err
	}
	inst.Init()

	printBanner(stdout, dialect)
	stdout.Flush()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		for range sigCh {
			inst.Break()
		}
	}()

	defer func() { atExit(inst, err) }()
	err = inst.Run()
	return err
}

func main() {
	app := &cli.App{
		Name:  "tinybasic",
		Usage: "Interpretive-language virtual machine for Tiny BASIC and TBX",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "extended",
				Aliases: []string{"x"},
				Usage:   "run the TBX dialect instead of classic Tiny BASIC",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "BASIC program to autoload before handing off to the console",
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "IL image to run (defaults to the bundled tinybasic.il/tbx.il)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "print VM state and a full error trace on a fatal invariant violation",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func randSeed() int64 {
	return time.Now().UnixNano()
}
