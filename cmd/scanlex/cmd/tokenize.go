package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-scanlex/internal/utf16unit"
	"github.com/cwbudde/go-scanlex/internal/vocabload"
	"github.com/cwbudde/go-scanlex/pkg/scanlex"
)

var (
	evalExpr  string
	vocabPath string
	showPos   bool
	showType  bool
	useUTF16  bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a file or inline string against a YAML vocabulary",
	Long: `Tokenize a file or an inline string against a YAML vocabulary and
print the resulting leading/token/trailing triples.

Examples:
  # Tokenize a file
  scanlex tokenize --vocab lang.yaml script.src

  # Tokenize an inline string
  scanlex tokenize --vocab lang.yaml -e "a==b"

  # Show token ids and positions
  scanlex tokenize --vocab lang.yaml --show-type --show-pos script.src`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)

	tokenizeCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline text instead of reading from file")
	tokenizeCmd.Flags().StringVar(&vocabPath, "vocab", "", "path to a YAML vocabulary file")
	tokenizeCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's start position and length")
	tokenizeCmd.Flags().BoolVar(&showType, "show-type", false, "show each token's id")
	tokenizeCmd.Flags().BoolVar(&useUTF16, "utf16", false, "drive the engine over UTF-16 code units instead of runes")
	_ = tokenizeCmd.MarkFlagRequired("vocab")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	var input string
	var filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline text")
	}

	cfg, err := vocabload.Load(vocabPath)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	if useUTF16 {
		return runTokenizeUTF16(cfg, filename, input, verbose)
	}

	engine := scanlex.New[rune](cfg)

	text := []rune(input)

	if verbose {
		fmt.Printf("Tokenizing: %s (engine %s)\n", filename, engine.ID)
		fmt.Printf("Input length: %d element(s)\n", len(text))
		fmt.Println("---")
	}

	engine.InitString(text)

	for {
		result := engine.ContinueExecution()
		if result == scanlex.ResultNone {
			break
		}
		printEmission(engine, result, text)
		if result == scanlex.ResultStopAndFinalOnTokenProcessed {
			break
		}
	}

	return nil
}

// runTokenizeUTF16 re-encodes both the vocabulary and the input into UTF-16
// code units and drives a scanengine.Engine[uint16] instead of the default
// Engine[rune], exercising the same recognition core over a different
// element type the way spec.md §1 describes it as templated over T.
func runTokenizeUTF16(cfg scanlex.Configuration[rune], filename, input string, verbose bool) error {
	cfg16, err := utf16unit.ConvertVocabulary(cfg)
	if err != nil {
		return fmt.Errorf("converting vocabulary to UTF-16: %w", err)
	}

	text, err := utf16unit.Encode(input)
	if err != nil {
		return fmt.Errorf("encoding input to UTF-16: %w", err)
	}

	engine := scanlex.New[uint16](cfg16)

	if verbose {
		fmt.Printf("Tokenizing: %s (engine %s, utf16)\n", filename, engine.ID)
		fmt.Printf("Input length: %d code unit(s)\n", len(text))
		fmt.Println("---")
	}

	engine.InitString(text)

	for {
		result := engine.ContinueExecution()
		if result == scanlex.ResultNone {
			break
		}
		if err := printEmissionUTF16(engine, result, text); err != nil {
			return err
		}
		if result == scanlex.ResultStopAndFinalOnTokenProcessed {
			break
		}
	}

	return nil
}

func printEmissionUTF16(engine *scanlex.Engine[uint16], result scanlex.Result, text []uint16) error {
	var tok *scanlex.Token
	switch result {
	case scanlex.ResultBeforeTokenProcessed:
		return nil
	case scanlex.ResultOnThenBeforeTokenProcessed:
		tok = engine.OnTokenProcessedToken()
	case scanlex.ResultStopAndFinalOnTokenProcessed:
		tok = engine.BeforeTokenProcessedToken()
	}
	if tok == nil {
		return nil
	}

	leading, err := utf16unit.Decode(engine.OnTokenProcessedLeading())
	if err != nil {
		return fmt.Errorf("decoding leading text: %w", err)
	}
	trailing, err := utf16unit.Decode(engine.OnTokenProcessedTrailing())
	if err != nil {
		return fmt.Errorf("decoding trailing text: %w", err)
	}
	literal, err := utf16unit.Decode(text[tok.Start : tok.Start+tok.Length])
	if err != nil {
		return fmt.Errorf("decoding token literal: %w", err)
	}

	var out string
	if showType {
		out = fmt.Sprintf("[%s] ", tok.ID)
	}
	out += fmt.Sprintf("%q · %q · %q", leading, literal, trailing)
	if showPos {
		out += fmt.Sprintf(" @%d+%d", tok.Start, tok.Length)
	}
	fmt.Println(out)
	return nil
}

func printEmission(engine *scanlex.Engine[rune], result scanlex.Result, text []rune) {
	var tok *scanlex.Token
	switch result {
	case scanlex.ResultBeforeTokenProcessed:
		return
	case scanlex.ResultOnThenBeforeTokenProcessed:
		tok = engine.OnTokenProcessedToken()
	case scanlex.ResultStopAndFinalOnTokenProcessed:
		tok = engine.BeforeTokenProcessedToken()
	}
	if tok == nil {
		return
	}

	leading := string(engine.OnTokenProcessedLeading())
	trailing := string(engine.OnTokenProcessedTrailing())
	literal := string(text[tok.Start : tok.Start+tok.Length])

	var out string
	if showType {
		out = fmt.Sprintf("[%s] ", tok.ID)
	}
	out += fmt.Sprintf("%q · %q · %q", leading, literal, trailing)
	if showPos {
		out += fmt.Sprintf(" @%d+%d", tok.Start, tok.Length)
	}
	fmt.Println(out)
}
