package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/earlysvahn/aiwriter/internal/action"
)

func newLogf(quiet bool) func(string) {
	return func(msg string) {
		if quiet {
			return
		}
		fmt.Fprintf(os.Stderr, "[aiwriter] %s\n", msg)
	}
}

// parseInterspersed parses flags that may appear before or after positional
// arguments and returns the positionals.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// PrintUsage prints the usage information
func PrintUsage() {
	fmt.Println("AI Writer - send a note to Azure OpenAI and insert the answer at the selection")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  aiwriter <action> [OPTIONS] FILE               Run an action on FILE (- for stdin)")
	fmt.Println("  aiwriter settings                             Edit settings in a form")
	fmt.Println("  aiwriter settings show [--reveal]             Print settings")
	fmt.Println("  aiwriter settings set [--keyring] KEY VALUE   Change one setting (apiKey|endPoint|lang)")
	fmt.Println("  aiwriter settings path                        Print the settings file path")
	fmt.Println("  aiwriter history [--limit N]                  List recent answers")
	fmt.Println("  aiwriter history show ID                      Show one answer")
	fmt.Println()
	fmt.Println("ACTIONS:")
	for _, name := range action.List() {
		a := action.Get(name)
		fmt.Printf("  %-18s %s\n", name, a.Title)
	}
	fmt.Println()
	fmt.Println("ACTION OPTIONS:")
	fmt.Println("  --select N[:M]         Replace characters N..M, or insert at N (default: end of file)")
	fmt.Println("  --print                Write the result to stdout instead of FILE")
	fmt.Println("  --dry-run              Print the request body and exit")
	fmt.Println("  --plain                Ask for the custom prompt on one line instead of an editor")
	fmt.Println("  --storage BACKEND      History backend: file|sqlite|postgres (default: file)")
	fmt.Println("  --no-history           Do not record the answer")
	fmt.Println("  --quiet                Suppress non-error logs")
	fmt.Println()
	fmt.Println("ENVIRONMENT:")
	fmt.Println("  AIWRITER_API_KEY, AIWRITER_ENDPOINT, AIWRITER_LANG override the settings file.")
	fmt.Println("  AIWRITER_CONFIG_DIR    Settings directory (default: $XDG_CONFIG_HOME/aiwriter)")
	fmt.Println("  AIWRITER_POSTGRES_DSN  Connection string for --storage postgres")
	fmt.Println("  A .env file in the working directory is loaded first.")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  aiwriter summarize notes/meeting.md")
	fmt.Println("  aiwriter rewrite --select 0:120 draft.md")
	fmt.Println("  cat draft.md | aiwriter continue -")
	fmt.Println("  aiwriter settings set lang German")
}
