// Copyright
// SPDX-License-Identifier: MIT
// settings-tui: terminal editor for list, pattern and object settings
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/atotto/clipboard"

	"settings-tui/internal/config"
	"settings-tui/internal/logger"
	"settings-tui/internal/prefs"
	"settings-tui/internal/settings"
	appTUI "settings-tui/internal/tui"
	"settings-tui/internal/tui/util"
	"settings-tui/internal/tui/views/rows"
	"settings-tui/internal/tui/widgets/diff"
)

const Version = "0.1.0"

const defaultDoc = "settings.json"

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "-v", "--version":
		fmt.Println("settings-tui", Version)
		return
	case "init":
		cmdInit()
	case "edit":
		cmdEdit()
	case "show":
		cmdShow()
	case "validate":
		cmdValidate()
	default:
		usage()
	}
}

func usage() {
	fmt.Print(`settings-tui ` + Version + `
Edit list, include/exclude and object settings of a settings document in the terminal.
USAGE
  settings-tui <command> [options]
COMMANDS
  init         Write a sample settings.json
  edit         Open the settings page and print the resulting overrides
  show         Print the rows of every setting
  validate     Check every setting value against its schema
  help         Show help (try: settings-tui help edit)
  version      Print version
NOTES
  • --doc accepts a local JSON/YAML file or an http(s) URL.
  • Preferences are read from ~/.config/settings-tui/config.toml and SETTINGS_TUI_* variables.
` + "\n")
}

func helpTopic(name string) {
	switch name {
	case "edit":
		fmt.Println(`USAGE
  settings-tui edit [--doc PATH|URL] [--copy] [--diff] [--out PATH] [--no-color] [--debug]
DESCRIPTION
  Opens one collection widget per setting. Ctrl+S or q keeps the edits and prints the
  resulting override values as JSON; Ctrl+C discards them.
OPTIONS
  --doc PATH|URL   Settings document (default: settings.json)
  --copy           Copy the resulting overrides to the clipboard
  --diff           Print a diff of the overrides before and after editing
  --out PATH       Write the edited document to PATH
  --no-color       Disable colours (also honoured: NO_COLOR)
  --debug          Debug status bar and debug-level file logging`)
	case "show":
		fmt.Println(`USAGE
  settings-tui show [--doc PATH|URL] [--no-color]
DESCRIPTION
  Prints each setting with its indicator chips and display rows.`)
	case "validate":
		fmt.Println(`USAGE
  settings-tui validate [--doc PATH|URL]
DESCRIPTION
  Runs the whole-value validators of every setting. Exits 1 when any setting is invalid.`)
	case "init":
		fmt.Println(`USAGE
  settings-tui init
DESCRIPTION
  Writes a sample settings.json in the current directory unless one exists.`)
	default:
		usage()
	}
}

func cmdInit() {
	if _, err := os.Stat(defaultDoc); !errors.Is(err, os.ErrNotExist) {
		fmt.Println(defaultDoc, "already exists; not overwriting")
		return
	}
	d := `{
  "settings": [
    {
      "key": "editor.rulers",
      "type": "array",
      "description": "Render vertical rulers after a certain number of monospace characters.",
      "items": {"type": "number"},
      "default": [80]
    },
    {
      "key": "files.exclude",
      "type": "object",
      "widget": "exclude",
      "description": "Glob patterns for excluding files and folders.",
      "default": {"**/.git": true, "**/.DS_Store": true},
      "defaultSources": {"**/.git": "Core"}
    },
    {
      "key": "editor.quickSuggestions",
      "type": "object",
      "description": "Controls whether suggestions should automatically show up while typing.",
      "properties": {
        "comments": {"type": "boolean", "description": "Enable quick suggestions inside comments."},
        "strings": {"type": "boolean", "description": "Enable quick suggestions inside strings."},
        "other": {"type": "boolean", "description": "Enable quick suggestions outside of strings and comments."}
      },
      "additionalProperties": false,
      "default": {"comments": false, "strings": false, "other": true}
    },
    {
      "key": "files.associations",
      "type": "object",
      "description": "Configure file associations to languages.",
      "additionalProperties": {"type": "string"}
    },
    {
      "key": "editor.tokenColorCustomizations",
      "type": "object",
      "description": "Overrides editor syntax colors.",
      "properties": {
        "comments": {"type": "string", "description": "Sets the colors and styles for comments."},
        "strings": {"type": "string", "description": "Sets the colors and styles for strings."},
        "fontSize": {"type": "integer"}
      },
      "additionalProperties": false
    }
  ],
  "values": {
    "editor.rulers": [80, 120],
    "files.associations": {"*.tmpl": "html"}
  }
}
`
	if err := os.WriteFile(defaultDoc, []byte(d), 0644); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", defaultDoc)
}

func cmdEdit() {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	doc := fs.String("doc", defaultDoc, "settings document (path or http(s) URL)")
	copyOut := fs.Bool("copy", false, "copy the resulting overrides to the clipboard")
	showDiff := fs.Bool("diff", false, "print a diff of the overrides")
	out := fs.String("out", "", "write the edited document to PATH")
	noColor := fs.Bool("no-color", false, "disable colours")
	debug := fs.Bool("debug", false, "debug mode")
	_ = fs.Parse(os.Args[2:])

	p := loadPrefs()
	nc := util.NoColor(*noColor || p.NoColor)
	dbg := *debug || p.Debug
	if path := startLogging(p, dbg); path != "" {
		fmt.Fprintln(os.Stderr, "Logging to", path)
	}
	d := loadDoc(*doc)
	logger.Info("edit", "doc", *doc, "settings", len(d.Settings))

	res, err := appTUI.Run(d, appTUI.Options{
		NoColor:    nc,
		Debug:      dbg,
		Width:      p.UI.Width,
		InputWidth: p.UI.InputWidth,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tui:", err)
		os.Exit(1)
	}
	if !res.Saved {
		logger.Info("edit discarded")
		fmt.Println("Discarded changes.")
		return
	}
	logger.Info("edit kept", "changed", res.Changed)

	after, err := json.MarshalIndent(res.Values, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
	fmt.Println(string(after))
	if len(res.Changed) == 0 {
		fmt.Fprintln(os.Stderr, "No settings changed.")
	} else {
		fmt.Fprintf(os.Stderr, "Changed %d setting(s): %v\n", len(res.Changed), res.Changed)
	}

	if *showDiff {
		before, _ := json.MarshalIndent(res.Before, "", "  ")
		fmt.Print(diff.NewDiffView(nc).Unified(string(before), string(after)))
	}
	if *copyOut {
		if err := clipboard.WriteAll(string(after)); err != nil {
			fmt.Fprintln(os.Stderr, "clipboard:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Copied overrides to clipboard.")
		}
	}
	if *out != "" {
		if err := config.Save(*out, res.Document); err != nil {
			fmt.Fprintln(os.Stderr, "save:", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Wrote", *out)
	}
}

func cmdShow() {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	doc := fs.String("doc", defaultDoc, "settings document (path or http(s) URL)")
	noColor := fs.Bool("no-color", false, "disable colours")
	_ = fs.Parse(os.Args[2:])

	p := loadPrefs()
	startLogging(p, p.Debug)
	d := loadDoc(*doc)
	nc := util.NoColor(*noColor || p.NoColor)
	for i := range d.Settings {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(rows.Render(settings.NewElement(&d.Settings[i], d.Values), nc))
	}
}

func cmdValidate() {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	doc := fs.String("doc", defaultDoc, "settings document (path or http(s) URL)")
	_ = fs.Parse(os.Args[2:])

	p := loadPrefs()
	startLogging(p, p.Debug)
	d := loadDoc(*doc)
	problems := appTUI.ValidationReport(d)
	for _, msg := range problems {
		fmt.Println(msg)
	}
	if len(problems) > 0 {
		logger.Warn("validate failed", "doc", *doc, "problems", len(problems))
		os.Exit(1)
	}
	fmt.Printf("OK: %d setting(s) valid\n", len(d.Settings))
}

/* ---------- helpers ---------- */

func loadPrefs() prefs.Prefs {
	p, err := prefs.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "preferences:", err)
		os.Exit(1)
	}
	return p
}

// startLogging enables the file logger when preferences or --debug ask for
// it and returns the log path.
func startLogging(p prefs.Prefs, debug bool) string {
	level := logger.ParseLevel(p.Log.Level)
	if debug {
		level = logger.ParseLevel("debug")
	}
	path, err := logger.Init(logger.Options{
		Enabled: p.Log.Enabled || debug,
		LogDir:  p.Log.Dir,
		Level:   level,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
		return ""
	}
	return path
}

func loadDoc(location string) *config.Document {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	d, err := config.Load(ctx, location)
	if err != nil {
		logger.Error("load document", "doc", location, "err", err)
		fmt.Fprintln(os.Stderr, "load:", err)
		os.Exit(1)
	}
	return d
}
