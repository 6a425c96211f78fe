package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"

	"quill/eval"
	"quill/parser"
	"quill/trace"
	"quill/types"
)

const historyFile = ".quill_history"

func main() {
	exprSrc := flag.String("e", "", "Evaluate an expression and print the result")
	template := flag.String("t", "", "Interpolate a ${...} template and print the result")
	traceEnabled := flag.Bool("trace", false, "Enable function call tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter patterns (glob, comma-separated)")
	maxDepth := flag.Int("max-depth", 0, "User function recursion limit (0 = default)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
		logger.Debug("tracing enabled", "filters", filters)
	} else {
		trace.Init(false, nil, nil)
	}

	ex := eval.NewExecutor(eval.Config{
		Output:   os.Stdout,
		MaxDepth: *maxDepth,
	})

	switch {
	case *exprSrc != "":
		val, err := ex.EvalExpression(*exprSrc)
		if err != nil {
			logger.Fatal("evaluation failed", "err", err)
		}
		fmt.Println(val.String())

	case *template != "":
		s, err := ex.EvaluateInterpolated(*template)
		if err != nil {
			logger.Fatal("interpolation failed", "err", err)
		}
		fmt.Println(s)

	case flag.NArg() > 0:
		runFile(ex, logger, flag.Arg(0))

	default:
		repl(ex)
	}
}

// runFile executes a script file
func runFile(ex *eval.Executor, logger *log.Logger, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("cannot read script", "path", path, "err", err)
	}
	if _, runErr := ex.RunSource(string(source)); runErr != nil {
		logger.Fatal("script failed", "path", path, "err", runErr)
	}
}

// repl runs an interactive session. Input that parses as a single
// expression is evaluated and echoed; everything else runs as program
// statements against the persistent global scope.
func repl(ex *eval.Executor) {
	fmt.Println("quill (type :quit to exit)")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readByParseProbe(ln, "> ", "... ")
		if !ok {
			fmt.Println()
			return
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		// Bare expressions echo their value; programs rely on print
		if _, perr := parser.ParseExpression(code); perr == nil {
			val, err := ex.EvalExpression(code)
			if err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
			} else if _, isUnit := val.(types.UnitValue); !isUnit {
				fmt.Println(val.String())
			}
			continue
		}

		if _, err := ex.RunSource(code); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}

// readByParseProbe collects lines until the buffer parses as a complete
// program, prompting for continuations while the parse error says the
// input just ended too early
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.ParseProgram(src); perr == nil || !parser.IsIncomplete(perr) {
			return src, true
		}
	}
}
