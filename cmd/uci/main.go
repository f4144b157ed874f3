package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/runner"
	"github.com/cricklet/chessrules/internal/search"
	"github.com/cricklet/chessrules/internal/uci"
	"github.com/pkg/profile"
)

// infoLogger sends search logging to the gui as "info string" lines.
func infoLogger(out io.Writer) Logger {
	return FuncLogger(func(s string) {
		for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
			fmt.Fprintln(out, "info string", line)
		}
	})
}

// serve answers commands from in until "quit", end of input or the first
// command that fails.
func serve(in io.Reader, out io.Writer, options search.SearchOptions) Error {
	engine := uci.NewUciRunner(runner.NewGameRunner(infoLogger(out), options))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "quit" {
			return NilError
		}

		result, err := engine.HandleInput(input)
		if !IsNil(err) {
			return err
		}
		for _, line := range result {
			fmt.Fprintln(out, line)
		}
	}
	return Wrap(scanner.Err())
}

func main() {
	args := os.Args[1:]

	if Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath(RootDir() + "/data/CmdUciMain"))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	if len(args) > 0 && args[0] == "options" {
		for _, option := range search.AllSearchOptions {
			fmt.Println(option)
		}
		return
	}

	options, err := search.SearchOptionsFromArgs(args...)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	err = serve(os.Stdin, os.Stdout, options)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
