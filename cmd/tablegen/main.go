/*
Command tablegen is a diagnostic demonstrator for this module's table
construction core. It builds a small sample grammar pair (an ambiguous
arithmetic-expression syntax resolved through declared precedence and
associativity, with a lexical grammar over its tokens), runs
lr.BuildTables over it, and prints a summary: state counts and any
unresolved conflicts. It never executes the produced tables — table
construction is this module's whole scope; parsing input with them is an
external collaborator's job.

With -i it drops into an interactive loop (via chzyer/readline) for
inspecting individual parse states by id.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"

	"github.com/lrforge/tablegen/grammar"
	"github.com/lrforge/tablegen/lr"
	"github.com/lrforge/tablegen/rules"
)

// tracer traces with key 'tablegen.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("tablegen.cmd")
}

func main() {
	tlevel := flag.String("trace", "Info", "trace level [Debug|Info|Error]")
	interactive := flag.Bool("i", false, "drop into an interactive state browser after construction")
	flag.Parse()

	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("tablegen: constructing sample parse and lex tables")

	syn, lex := sampleGrammar()
	tracer().Infof("sample grammar built, calling lr.BuildTables")
	parseTable, lexTable, conflicts := lr.BuildTables(syn, lex)

	printSummary(parseTable, lexTable, conflicts)

	if *interactive {
		browse(parseTable)
	}
}

func traceLevel(name string) tracing.TraceLevel {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{Text: " INFO ", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: " ERROR ", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
	pterm.Success.Prefix = pterm.Prefix{Text: " OK ", Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)}
}

// sampleGrammar builds an arithmetic-expression syntax grammar ambiguous
// without precedence (Expr -> Expr '+' Expr | Expr '*' Expr | '(' Expr ')'
// | num), resolved via PrecAssoc, paired with the lexical grammar for its
// five tokens. It exists to give cmd/tablegen something non-trivial to run
// lr.BuildTables over without requiring a textual grammar source, which
// remains out of this module's scope.
func sampleGrammar() (grammar.PreparedGrammar, grammar.PreparedGrammar) {
	syms := grammar.NewSymbolTable()
	syn := grammar.NewBuilder("expr-syntax", syms)
	lex := grammar.NewBuilder("expr-lex", syms)

	syn.DeclareToken("num")
	syn.DeclareToken("+")
	syn.DeclareToken("*")
	syn.DeclareToken("(")
	syn.DeclareToken(")")

	syn.LHS("Expr").N("Expr").N("+").N("Expr").PrecAssoc(1, rules.AssocLeft).End()
	syn.LHS("Expr").N("Expr").N("*").N("Expr").PrecAssoc(2, rules.AssocLeft).End()
	syn.LHS("Expr").N("(").N("Expr").N(")").End()
	syn.LHS("Expr").N("num").End()
	synG := syn.Grammar()

	digit := rules.Character('0', '9')
	lex.LHS("num").R(rules.Seq(digit, rules.Repeat(digit))).End()
	lex.LHS("+").R(rules.Character('+', '+')).End()
	lex.LHS("*").R(rules.Character('*', '*')).End()
	lex.LHS("(").R(rules.Character('(', '(')).End()
	lex.LHS(")").R(rules.Character(')', ')')).End()
	lexG := lex.Grammar()

	return synG, lexG
}

func printSummary(pt *lr.ParseTable, lt *lr.LexTable, conflicts []lr.Conflict) {
	pterm.Success.Printfln("built %d parse state(s), %d lex state(s)", len(pt.States()), len(lt.States()))
	if len(conflicts) == 0 {
		pterm.Success.Println("no unresolved conflicts")
		return
	}
	rows := [][]string{{"kind", "state", "symbol", "description"}}
	for _, c := range conflicts {
		rows = append(rows, []string{c.Kind.String(), strconv.Itoa(int(c.State)), fmt.Sprint(c.Symbol), c.Description})
	}
	pterm.Error.Printfln("%d unresolved conflict(s):", len(conflicts))
	if err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Render(); err != nil {
		pterm.Error.Println(err.Error())
	}
}

// browse starts an interactive loop where a user may enter a parse state
// id to print its shift/reduce actions and governing lex state, or "q" to
// quit. It only inspects the already-constructed table; it never drives
// it over input.
func browse(pt *lr.ParseTable) {
	rl, err := readline.New("tablegen> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	defer rl.Close()
	pterm.Info.Println("enter a parse state id to inspect, or q to quit")
	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			break
		}
		id, err := strconv.Atoi(line)
		if err != nil || id < 0 || id >= len(pt.States()) {
			pterm.Error.Printfln("no such state %q", line)
			continue
		}
		describeState(pt.State(lr.ParseStateID(id)))
	}
}

func describeState(s *lr.ParseState) {
	pterm.Println(pterm.Bold.Sprint(fmt.Sprintf("state %d (lex state %d)", s.ID, s.LexStateID)))
	s.Each(func(sym rules.ISymbol, a lr.ParseAction) {
		pterm.Println(fmt.Sprintf("  %v -> %v", sym, a))
	})
}
