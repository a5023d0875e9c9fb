package cli

import (
	"fmt"
	"io"
	"os"

	"quill/internal/notes/service"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string, svc *service.Service) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "list", "ls", "l":
		return runList(cmdArgs, svc)
	case "show", "cat":
		return runShow(cmdArgs, svc)
	case "new", "add", "a":
		return runNew(cmdArgs, svc)
	case "delete", "rm", "del":
		return runDelete(cmdArgs, svc)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(stdout, `quill - dated notes kept as files in a notes directory

Usage: quill [flags] [command] [arguments]

Commands:
  list, ls, l   List notes
                quill list               # every note
                quill list ideas         # names containing "ideas" (any case)
                quill list -l            # with date and preview

  show, cat     Print a note
                quill show "Ideas.json"

  new, add, a   Create and save a note dated today
                quill new "Title" [content...]
                quill new -o custom.json "Title" [content...]

  delete, rm    Delete a note file
                quill rm "Ideas.json"

  help          Show this help message

Flags:
  -d, --dir <path>      Notes directory (default ./notes)
  -f, --format <name>   Format for new notes: json or txt

Running quill without arguments launches the interactive TUI.`)
}
