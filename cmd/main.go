// package main is the lamb command line front end.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	lamb "go.lamb.dev/pkg"
)

// flag names
const (
	configFlagName        = "config"
	juxtapositionFlagName = "juxtaposition"
	noColorFlagName       = "no-color"
	verbosityFlagName     = "v"
	dumpFlagName          = "dump"
	exprFlagName          = "e"
)

var errFailed = errors.New("parsing failed")

var (
	errColor  = color.New(color.FgRed, color.Bold)
	locColor  = color.New(color.Bold)
	hintColor = color.New(color.FgCyan)
)

type driver struct {
	stdout io.Writer
	stderr io.Writer

	frontend *lamb.Frontend
}

func main() {
	// glog registers its flags on the default flag set.
	_ = flag.Set("logtostderr", "true")
	flag.CommandLine.Parse(nil)

	d := &driver{stdout: os.Stdout, stderr: os.Stderr}
	if err := d.app().Run(os.Args); err != nil {
		if err != errFailed {
			glog.Error(err)
		}
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

func (d *driver) app() *cli.App {
	return &cli.App{
		Name:      "lamb",
		Usage:     "tokenize and parse lamb expressions",
		Writer:    d.stdout,
		ErrWriter: d.stderr,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  configFlagName,
				Usage: "YAML file declaring extra operators and parser settings",
			},
			&cli.BoolFlag{
				Name:  juxtapositionFlagName,
				Usage: "parse `f x` as function application",
			},
			&cli.BoolFlag{
				Name:  noColorFlagName,
				Usage: "disable colored diagnostics",
			},
			&cli.IntFlag{
				Name:  verbosityFlagName,
				Usage: "glog verbosity",
			},
		},
		Before: d.setup,
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "print the tokens of a source file",
				ArgsUsage: "FILE",
				Action:    d.tokens,
			},
			{
				Name:      "parse",
				Usage:     "print the syntax tree of each source file",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  dumpFlagName,
						Usage: "dump the full tree including locations",
					},
					&cli.StringFlag{
						Name:  exprFlagName,
						Usage: "parse the given expression instead of files",
					},
				},
				Action: d.parse,
			},
			{
				Name:   "repl",
				Usage:  "read expressions interactively and print their trees",
				Action: d.repl,
			},
		},
	}
}

func (d *driver) setup(c *cli.Context) error {
	if c.IsSet(verbosityFlagName) {
		if err := flag.Set("v", strconv.Itoa(c.Int(verbosityFlagName))); err != nil {
			return errors.Wrap(err, "setting verbosity")
		}
	}

	if c.Bool(noColorFlagName) {
		color.NoColor = true
	}

	cfg := lamb.DefaultConfig()
	if path := c.Path(configFlagName); path != "" {
		var err error
		if cfg, err = lamb.LoadConfig(path); err != nil {
			return err
		}
		glog.V(1).Infof("loaded config %s: %d extra operators", path, len(cfg.Operators))
	}

	if c.IsSet(juxtapositionFlagName) {
		cfg.Juxtaposition = c.Bool(juxtapositionFlagName)
	}

	frontend, err := lamb.NewFrontendFromConfig(cfg)
	if err != nil {
		return err
	}

	d.frontend = frontend
	return nil
}

func (d *driver) tokens(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("tokens takes exactly one file")
	}

	toks, err := d.frontend.TokenizeFile(c.Args().First())
	if err != nil {
		d.printErrors(err)
		return errFailed
	}

	table := tablewriter.NewWriter(d.stdout)
	table.SetHeader([]string{"Location", "Token", "Value"})
	for _, tok := range toks {
		table.Append([]string{tok.Loc.String(), tok.Typ.String(), tok.Value})
	}
	table.Render()

	return nil
}

func (d *driver) parse(c *cli.Context) error {
	if src := c.String(exprFlagName); src != "" {
		expr, err := d.frontend.ParseReader("<expr>", strings.NewReader(src))
		if err != nil {
			d.printErrors(err)
			return errFailed
		}

		d.printExpr(expr, c.Bool(dumpFlagName))
		return nil
	}

	if c.NArg() == 0 {
		return errors.New("parse needs at least one file or -e")
	}

	names := c.Args().Slice()
	exprs, err := d.frontend.ParseFiles(names...)
	for _, name := range names {
		if expr, ok := exprs[name]; ok {
			fmt.Fprintf(d.stdout, "%s: ", name)
			d.printExpr(expr, c.Bool(dumpFlagName))
		}
	}

	if err != nil {
		d.printErrors(err)
		return errFailed
	}

	return nil
}

func (d *driver) printExpr(expr lamb.Expr, dump bool) {
	if dump {
		spew.Fdump(d.stdout, expr)
		return
	}

	fmt.Fprintln(d.stdout, expr)
}

func (d *driver) printErrors(err error) {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			d.printErrors(e)
		}

		return
	}

	prefix := ""
	var ferr *lamb.FileError
	if errors.As(err, &ferr) {
		prefix = ferr.Filename + ":"
	}

	serr, ok := lamb.AsSyntaxError(err)
	if !ok {
		errColor.Fprint(d.stderr, "error: ")
		fmt.Fprintln(d.stderr, err)
		return
	}

	locColor.Fprintf(d.stderr, "%s%s: ", prefix, serr.GetLocation())
	switch e := serr.(type) {
	case *lamb.LexicalError:
		errColor.Fprint(d.stderr, "lexical error: ")
		fmt.Fprintf(d.stderr, "%s %q\n", e.Kind, e.Text)
	case *lamb.UnexpectedError:
		errColor.Fprint(d.stderr, "unexpected token: ")
		fmt.Fprintf(d.stderr, "found %s\n", e.Found)
		hintColor.Fprintf(d.stderr, "  expected %s\n", tokenTypes(e.Expected))
	case *lamb.EarlyEOFError:
		errColor.Fprint(d.stderr, "unexpected end of input\n")
		hintColor.Fprintf(d.stderr, "  expected %s\n", tokenTypes(e.Expected))
	case *lamb.ArityError:
		errColor.Fprint(d.stderr, "infix arity: ")
		fmt.Fprintf(d.stderr, "ifx function takes 2 parameters, got %d (%s)\n", len(e.Params), strings.Join(e.Params, " "))
	default:
		fmt.Fprintln(d.stderr, serr)
	}
}

func tokenTypes(types []lamb.TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	return strings.Join(names, " | ")
}
