// aleo-ast — command line driver for serialized program trees
//
// WHAT THIS TOOL DOES
// ===================
// Operates on the JSON documents the ast package reads and writes:
//
//	aleo-ast canonicalize -in program.json -out canonical.json
//	aleo-ast check program.json [more.json ...]
//
// "canonicalize" loads a tree, rewrites it into canonical form and writes
// the result (stdout unless -out is given). "check" loads each document,
// verifies it survives an encode/decode round trip, and reports whether
// canonicalization is a fixed point on it.
package main

import (
	"bytes"
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	ast "github.com/usernoobiee/aleo"
)

var (
	inFlag = cli.StringFlag{
		Name:  "in",
		Usage: "input JSON document (default: stdin)",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "output path (default: stdout)",
	}

	canonicalizeCommand = cli.Command{
		Action:      canonicalize,
		Name:        "canonicalize",
		Usage:       "rewrite a serialized program into canonical form",
		ArgsUsage:   " ",
		Flags:       []cli.Flag{inFlag, outFlag},
		Description: `Loads a program tree, applies the canonicalization pass and writes the result.`,
	}
	checkCommand = cli.Command{
		Action:      check,
		Name:        "check",
		Usage:       "validate serialized programs",
		ArgsUsage:   "<file> [files...]",
		Description: `Decodes each document, round-trips it through the codec and reports whether it is already canonical.`,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "aleo-ast"
	app.Usage = "inspect and rewrite serialized program trees"
	app.Commands = []cli.Command{canonicalizeCommand, checkCommand}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "aleo-ast:", err)
		os.Exit(1)
	}
}

func canonicalize(ctx *cli.Context) error {
	var (
		a   *ast.Ast
		err error
	)
	if path := ctx.String(inFlag.Name); path != "" {
		a, err = ast.FromJSONFile(path)
	} else {
		var data []byte
		data, err = readAll(os.Stdin)
		if err == nil {
			a, err = ast.FromJSON(data)
		}
	}
	if err != nil {
		return err
	}
	if err := a.Canonicalize(); err != nil {
		return err
	}
	out, err := a.ToJSON()
	if err != nil {
		return err
	}
	if path := ctx.String(outFlag.Name); path != "" {
		return os.WriteFile(path, append(out, '\n'), 0o644)
	}
	fmt.Println(string(out))
	return nil
}

func check(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("check: no input files")
	}
	failed := false
	for _, path := range ctx.Args() {
		if err := checkFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed {
		return fmt.Errorf("check: some documents failed")
	}
	return nil
}

func checkFile(path string) error {
	a, err := ast.FromJSONFile(path)
	if err != nil {
		return err
	}

	// Round trip: encode, decode, compare structurally.
	data, err := a.ToJSON()
	if err != nil {
		return err
	}
	b, err := ast.FromJSON(data)
	if err != nil {
		return fmt.Errorf("re-decode: %w", err)
	}
	if !a.Program().Equal(b.Program()) {
		return fmt.Errorf("round trip changed the tree")
	}

	// Report canonicality without failing: a non-canonical document is
	// valid input, it just has work left for the canonicalize command.
	if err := b.Canonicalize(); err != nil {
		return fmt.Errorf("canonicalize: %w", err)
	}
	if !a.Program().Equal(b.Program()) {
		fmt.Printf("%s: not canonical\n", path)
	}
	return nil
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
