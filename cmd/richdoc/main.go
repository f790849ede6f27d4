// cmd/richdoc/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"strings"

	"github.com/bethropolis/richdoc/internal/app"
	"github.com/bethropolis/richdoc/internal/config"
	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/types"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("richdoc", flag.ContinueOnError)
	output := fs.String("o", "", "Output file (default standard output)")
	from := fs.String("from", "", "Input format id or extension (default: by file extension)")
	to := fs.String("to", "", "Output format id or extension (default: by output extension)")
	info := fs.Bool("info", false, "Print document statistics instead of converting")
	listFormats := fs.Bool("list-formats", false, "List registered formats and exit")
	listThemes := fs.Bool("list-themes", false, "List available themes and exit")
	paste := fs.Bool("paste", false, "Read the document from the clipboard")
	copyOut := fs.Bool("copy", false, "Copy the resulting document to the clipboard")
	findTerm := fs.String("find", "", "Print the positions matching this regular expression and exit")
	substitute := fs.String("replace", "", "Apply a /pattern/replacement/[g] substitution before output")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: richdoc [flags] [input|-]\n\n")
		fs.PrintDefaults()
	}

	var flags config.Flags
	rest, err := flags.ParseFlags(fs, args)
	if err != nil {
		return 2
	}
	if *flags.Version {
		fmt.Printf("richdoc %s\n", version)
		return 0
	}

	cfg, notes, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Printf("Error loading config: %v", err)
		return 1
	}

	logCloser, err := logger.Init(cfg.Logger)
	if err != nil {
		stlog.Printf("Failed to initialize logger: %v", err)
		return 1
	}
	defer logCloser.Close()
	for _, note := range notes {
		logger.Warnf("Config: %s", note)
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "richdoc: %v\n", err)
		return 1
	}
	defer a.Shutdown()

	if *listFormats {
		for _, h := range a.Registry().Formats() {
			fmt.Printf("%-28s priority=%-5d import=%-5v export=%-5v %s\n",
				h.Format(), h.Priority(), h.CanImport(), h.CanExport(), strings.Join(h.Extensions(), " "))
		}
		return 0
	}
	if *listThemes {
		current := a.Themes().Current().Name
		for _, name := range a.Themes().ListThemes() {
			marker := " "
			if strings.EqualFold(name, current) {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return 0
	}

	if err := load(a, rest, *from, *paste); err != nil {
		logger.Errorf("Load failed: %v", err)
		fmt.Fprintf(os.Stderr, "richdoc: %v\n", err)
		return 1
	}

	if *substitute != "" {
		n, err := a.Substitute(*substitute)
		if err != nil {
			logger.Errorf("Replace failed: %v", err)
			fmt.Fprintf(os.Stderr, "richdoc: %v\n", err)
			return 1
		}
		logger.Infof("Replaced %d occurrences", n)
	}

	if cfg.Highlight.Enabled {
		n, err := a.Highlight(context.Background(), cfg.Highlight.Language)
		if err != nil {
			logger.Warnf("Highlighting skipped: %v", err)
		} else {
			logger.Infof("Highlighted %d spans", n)
		}
	}
	a.ApplyEditable()

	if *copyOut {
		if err := a.Copy(); err != nil {
			logger.Errorf("Copy failed: %v", err)
			fmt.Fprintf(os.Stderr, "richdoc: %v\n", err)
			return 1
		}
	}

	if *findTerm != "" {
		matches, err := a.Find(*findTerm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "richdoc: %v\n", err)
			return 1
		}
		for _, m := range matches {
			fmt.Printf("%d:%d-%d\n", m.Start.Index()+1, m.Start.Offset(), m.End.Offset())
		}
		return 0
	}

	if *info {
		if err := a.Stats().Print(os.Stdout); err != nil {
			return 1
		}
		return 0
	}

	if *output == "" {
		err = a.Save(os.Stdout, *to, "")
	} else {
		err = a.SaveFile(*output, *to)
	}
	if err != nil {
		logger.Errorf("Save failed: %v", err)
		fmt.Fprintf(os.Stderr, "richdoc: %v\n", err)
		return 1
	}
	logger.Infof("richdoc finished.")
	return 0
}

// load reads the document from the clipboard, the named file or standard
// input.
func load(a *app.App, rest []string, from string, paste bool) error {
	if paste {
		_, err := a.Paste(types.Zero)
		return err
	}
	path := "-"
	if len(rest) > 0 {
		path = rest[0]
	}
	logger.Debugf("Input: %s", path)
	return a.Open(path, from)
}
