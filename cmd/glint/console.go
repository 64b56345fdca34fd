package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/glint-lang/glint"
	"github.com/glint-lang/glint/engine"
)

func newConsoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive console over a demo wrapper class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole()
		},
	}
}

// list is the native object behind the console's List wrapper class.
type list struct {
	items     []engine.Value
	destroyed bool
}

func (l *list) Destroy() { l.destroyed = true }

// session holds the console's engine context and the named objects the user
// has created.
type session struct {
	ctx     *engine.Context
	cls     *engine.Class
	objects map[string]engine.Object
}

func newSession() *session {
	s := &session{
		ctx:     engine.NewContext(),
		objects: make(map[string]engine.Object),
	}
	s.cls = glint.NewWrapperClass[*list](s.ctx, "List",
		glint.IndexedGetter(func(ctx *engine.Context, this engine.Object, index int) (engine.Value, error) {
			l := glint.Internal[*list](this)
			if index >= len(l.items) {
				return engine.Value{}, &glint.RangeError{Message: fmt.Sprintf("Index %d is out of range.", index)}
			}
			return l.items[index], nil
		}),
		glint.IndexedSetter(func(ctx *engine.Context, this engine.Object, index int, value engine.Value) error {
			l := glint.Internal[*list](this)
			for len(l.items) <= index {
				l.items = append(l.items, engine.Undefined())
			}
			l.items[index] = value
			return nil
		}),
		[]engine.StaticFunction{
			{Name: "push", Call: glint.Method(func(ctx *engine.Context, this engine.Object, args []engine.Value) (engine.Value, error) {
				if err := glint.ValidateArgCountAtLeast(len(args), 1, "push requires at least one value"); err != nil {
					return engine.Value{}, err
				}
				l := glint.Internal[*list](this)
				l.items = append(l.items, args...)
				return engine.Number(float64(len(l.items))), nil
			})},
			{Name: "sum", Call: glint.Method(func(ctx *engine.Context, this engine.Object, args []engine.Value) (engine.Value, error) {
				if err := glint.ValidateArgCount(len(args), 0, "sum takes no arguments"); err != nil {
					return engine.Value{}, err
				}
				total := 0.0
				for _, v := range glint.Internal[*list](this).items {
					n, err := glint.NumberValue(ctx, v)
					if err != nil {
						return engine.Value{}, err
					}
					total += n
				}
				return engine.Number(total), nil
			})},
		},
		nil, nil,
		[]engine.StaticValue{
			{Name: "length", Get: glint.Getter(func(ctx *engine.Context, this engine.Object) (engine.Value, error) {
				return engine.Number(float64(len(glint.Internal[*list](this).items))), nil
			})},
		},
	)
	return s
}

func runConsole() error {
	s := newSession()
	defer s.ctx.Close()

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, oldState)

		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, "glint> ")
		for {
			line, err := t.ReadLine()
			if err != nil {
				return nil
			}
			if !s.dispatch(t, line) {
				return nil
			}
		}
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if !s.dispatch(os.Stdout, sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// dispatch runs one console line. It returns false when the session ends.
func (s *session) dispatch(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		fmt.Fprint(w, consoleHelp)
	case "new":
		s.cmdNew(w, args)
	case "get":
		s.cmdGet(w, args)
	case "set":
		s.cmdSet(w, args)
	case "call":
		s.cmdCall(w, args)
	case "props":
		s.cmdProps(w, args)
	case "match":
		s.cmdMatch(w, args)
	case "finalize":
		s.cmdFinalize(w, args)
	default:
		fmt.Fprintf(w, "unknown command %q (try help)\r\n", cmd)
	}
	return true
}

const consoleHelp = "commands:\r\n" +
	"  new <name> [values...]        create a List object\r\n" +
	"  get <name> <prop>             read a property\r\n" +
	"  set <name> <prop> <value>     write a property\r\n" +
	"  call <name> <prop> [args...]  call a function property\r\n" +
	"  props <name>                  enumerate property names\r\n" +
	"  match <pattern> <flags> <text>  test a regular expression\r\n" +
	"  finalize <name>               finalize an object\r\n" +
	"  exit                          quit\r\n"

// parseLiteral turns a console token into an engine value: undefined, null,
// booleans, and numbers by keyword, everything else a string.
func parseLiteral(tok string) engine.Value {
	switch tok {
	case "undefined":
		return engine.Undefined()
	case "null":
		return engine.Null()
	case "true":
		return engine.Boolean(true)
	case "false":
		return engine.Boolean(false)
	}
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		return engine.Number(n)
	}
	return engine.String(tok)
}

func (s *session) lookup(w io.Writer, name string) (engine.Object, bool) {
	obj, ok := s.objects[name]
	if !ok {
		fmt.Fprintf(w, "no object named %q\r\n", name)
	}
	return obj, ok
}

func (s *session) render(v engine.Value) string {
	if !v.Valid() {
		return "<no value>"
	}
	return s.ctx.ToString(v)
}

func (s *session) cmdNew(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprint(w, "usage: new <name> [values...]\r\n")
		return
	}
	l := &list{}
	for _, tok := range args[1:] {
		l.items = append(l.items, parseLiteral(tok))
	}
	s.objects[args[0]] = glint.WrapObject(s.ctx, s.cls, l)
	fmt.Fprintf(w, "created %s with %d element(s)\r\n", args[0], len(l.items))
}

func (s *session) cmdGet(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprint(w, "usage: get <name> <prop>\r\n")
		return
	}
	obj, ok := s.lookup(w, args[0])
	if !ok {
		return
	}
	v, err := glint.PropertyValue(s.ctx, obj, args[1])
	if err != nil {
		fmt.Fprintf(w, "exception: %v\r\n", err)
		return
	}
	fmt.Fprintf(w, "%s\r\n", s.render(v))
}

func (s *session) cmdSet(w io.Writer, args []string) {
	if len(args) != 3 {
		fmt.Fprint(w, "usage: set <name> <prop> <value>\r\n")
		return
	}
	obj, ok := s.lookup(w, args[0])
	if !ok {
		return
	}
	if err := glint.SetProperty(s.ctx, obj, args[1], parseLiteral(args[2])); err != nil {
		fmt.Fprintf(w, "exception: %v\r\n", err)
		return
	}
	fmt.Fprint(w, "ok\r\n")
}

func (s *session) cmdCall(w io.Writer, args []string) {
	if len(args) < 2 {
		fmt.Fprint(w, "usage: call <name> <prop> [args...]\r\n")
		return
	}
	obj, ok := s.lookup(w, args[0])
	if !ok {
		return
	}
	fn, err := glint.ObjectProperty(s.ctx, obj, args[1], "")
	if err != nil {
		fmt.Fprintf(w, "exception: %v\r\n", err)
		return
	}
	callArgs := make([]engine.Value, 0, len(args)-2)
	for _, tok := range args[2:] {
		callArgs = append(callArgs, parseLiteral(tok))
	}
	v, err := glint.CallFunction(s.ctx, fn, obj, callArgs...)
	if err != nil {
		fmt.Fprintf(w, "exception: %v\r\n", err)
		return
	}
	fmt.Fprintf(w, "%s\r\n", s.render(v))
}

func (s *session) cmdProps(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprint(w, "usage: props <name>\r\n")
		return
	}
	obj, ok := s.lookup(w, args[0])
	if !ok {
		return
	}
	for _, name := range s.ctx.PropertyNames(obj) {
		fmt.Fprintf(w, "%s\r\n", name)
	}
}

func (s *session) cmdMatch(w io.Writer, args []string) {
	if len(args) != 3 {
		fmt.Fprint(w, "usage: match <pattern> <flags> <text> (flags may be -)\r\n")
		return
	}
	flags := args[1]
	if flags == "-" {
		flags = ""
	}
	re, err := s.ctx.NewRegExp(args[0], flags)
	if err != nil {
		fmt.Fprintf(w, "error: %v\r\n", err)
		return
	}
	ok, err := s.ctx.RegExpMatch(re, args[2])
	if err != nil {
		fmt.Fprintf(w, "error: %v\r\n", err)
		return
	}
	fmt.Fprintf(w, "%v\r\n", ok)
}

func (s *session) cmdFinalize(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprint(w, "usage: finalize <name>\r\n")
		return
	}
	obj, ok := s.lookup(w, args[0])
	if !ok {
		return
	}
	s.ctx.Finalize(obj)
	fmt.Fprint(w, "finalized\r\n")
}
