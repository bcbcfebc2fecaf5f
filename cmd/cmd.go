// compile: run the front-end pipeline over a source file and print the results
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/IbadDotCom/Compiler-Construction/analyzer"
	"github.com/IbadDotCom/Compiler-Construction/ast"
	"github.com/IbadDotCom/Compiler-Construction/lexer"
	"github.com/IbadDotCom/Compiler-Construction/parser"
)

// package logger instance. silent unless --verbose raises the level.
var log = logrus.New()

var (
	dumpTokens  bool
	dumpAST     bool
	dumpSymbols bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "minicc [file]",
	Short: "front end for a miniature imperative language",
	Long: `minicc tokenizes, parses and semantically analyzes a source file,
evaluating every expression to a concrete value at analysis time.

The pipeline stops at the first lexical, syntax or semantic error and
exits non-zero.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.Level = logrus.DebugLevel
		}
		return compile(args[0])
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&dumpTokens, "tokens", false, "print the token sequence and stop")
	rootCmd.Flags().BoolVar(&dumpAST, "ast", false, "print the parsed syntax tree")
	rootCmd.Flags().BoolVar(&dumpSymbols, "symbols", false, "print the symbol table after analysis")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	log.Level = logrus.WarnLevel
}

func compile(fname string) error {
	src, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("read file '%s': %w", fname, err)
	}

	tokens, err := lexer.New(string(src)).Tokenize()
	if err != nil {
		return err
	}
	log.WithField("tokens", len(tokens)).Debug("tokenized")
	if dumpTokens {
		for _, t := range tokens {
			fmt.Printf("%-12s %q (line %d)\n", t.Type, t.Literal, t.Line)
		}
		return nil
	}

	program, err := parser.New(tokens).Parse()
	if err != nil {
		return err
	}
	log.WithField("statements", len(program.Stmts)).Debug("parsed")
	if dumpAST {
		fmt.Print(program)
	}

	attributed, err := analyzer.New(program).Analyze()
	if err != nil {
		return err
	}
	log.WithField("expressions", len(attributed.Evals)).Debug("analyzed")

	printAttributed(attributed, attributed.Program.Stmts)
	if dumpSymbols {
		for _, name := range attributed.Symbols.Names() {
			typ, val, _ := attributed.Symbols.Lookup(name)
			fmt.Printf("%s -> (%s, %s)\n", name, typ, val)
		}
	}
	return nil
}

// print each statement with the evaluated type and value of its
// expression, recursing into if bodies.
func printAttributed(ap *analyzer.AttributedProgram, stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *ast.Declaration:
			printEval(ap, stmt, stmt.Value)
		case *ast.Assignment:
			printEval(ap, stmt, stmt.Value)
		case *ast.ReturnStatement:
			printEval(ap, stmt, stmt.Expr)
		case *ast.IfStatement:
			printEval(ap, stmt, stmt.Cond)
			printAttributed(ap, stmt.Body)
			printAttributed(ap, stmt.ElseBody)
		}
	}
}

func printEval(ap *analyzer.AttributedProgram, stmt ast.Statement, expr ast.Expr) {
	if val, ok := ap.Evaluation(expr); ok {
		fmt.Printf("%-40s => %s %s\n", stmt, val.Type, val)
		return
	}
	fmt.Printf("%-40s => <unevaluated>\n", stmt)
}
