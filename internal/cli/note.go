package cli

import (
	"flag"
	"fmt"
	"strings"

	"quill/internal/notes/operations"
	"quill/internal/notes/service"
)

const previewWidth = 50

func runList(args []string, svc *service.Service) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	long := fs.Bool("l", false, "Show date and preview")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	filter := strings.Join(fs.Args(), " ")
	names, err := svc.ListNotes(filter)
	if err != nil {
		fmt.Fprintf(stderr, "Error listing notes: %v\n", err)
		return 1
	}

	if len(names) == 0 {
		fmt.Fprintln(stdout, "No notes found.")
		return 0
	}

	for _, name := range names {
		if !*long {
			fmt.Fprintln(stdout, name)
			continue
		}
		note, err := svc.ReadNote(name)
		if err != nil {
			fmt.Fprintf(stdout, "%-30s  (unreadable: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(stdout, "%-30s  %s  %s\n", name, note.Date, operations.Preview(note.Content, previewWidth))
	}

	fmt.Fprintf(stdout, "\n%d note(s)\n", len(names))
	return 0
}

func runShow(args []string, svc *service.Service) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Error: file name required")
		fmt.Fprintln(stderr, "Usage: quill show <file>")
		return 1
	}

	note, err := svc.ReadNote(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error loading note: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Title: %s\nDate: %s\n\n%s\n", note.Title, note.Date, note.Content)
	return 0
}

func runNew(args []string, svc *service.Service) int {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "File name to save as")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "Error: note title required")
		fmt.Fprintln(stderr, "Usage: quill new \"Title\" [content...]")
		return 1
	}

	svc.NewNote()
	svc.SetTitle(rest[0])
	svc.SetContent(strings.Join(rest[1:], " "))

	name := *output
	if name == "" {
		// never clobber an existing note from the command line
		name = operations.UniqueFileName(operations.FileSafe(rest[0]), svc.Ext(), "", svc.Catalog().Exists)
	}

	if err := svc.Save(name); err != nil {
		fmt.Fprintf(stderr, "Error saving note: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Saved: %s\n", svc.SavePath())
	return 0
}

func runDelete(args []string, svc *service.Service) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Error: file name required")
		fmt.Fprintln(stderr, "Usage: quill rm <file>")
		return 1
	}

	for _, name := range args {
		if err := svc.DeleteNote(name); err != nil {
			fmt.Fprintf(stderr, "Error deleting note: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Deleted: %s\n", name)
	}
	return 0
}
