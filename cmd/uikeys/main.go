// Package main is the entry point for the uikeys binding tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MasterBel2/recoil/internal/config"
	"github.com/MasterBel2/recoil/internal/input/bindings"
	"github.com/MasterBel2/recoil/internal/input/device"
	"github.com/MasterBel2/recoil/internal/input/key"
	"github.com/MasterBel2/recoil/internal/logging"
	"github.com/MasterBel2/recoil/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath  string
	keysPath    string
	hookPath    string
	noDefaults  bool
	debug       bool
	savePath    string
	printKeys   bool
	hotkeysFor  string
	resolveExpr string
	execLines   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log := logging.NewFromEnv()
	ctx := logging.WithContext(context.Background(), log)

	manager := config.NewManager(opts.configPath,
		*logging.FromContext(logging.WithComponent(ctx, "config")))
	if err := manager.Reload("startup"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read settings: %v\n", err)
		return 1
	}
	settings := manager.Current()

	log = logging.New(logging.Config{
		Level:      logging.ParseLevel(settings.LogLevel),
		Format:     settings.LogFormat,
		TimeFormat: logging.DefaultConfig().TimeFormat,
	})
	ctx = logging.WithContext(context.Background(), log)

	bindOpts := []bindings.Option{
		bindings.WithLogger(*logging.FromContext(logging.WithComponent(ctx, "bindings"))),
		bindings.WithChainTimeout(settings.ChainTimeout()),
	}

	var hook *script.Hook
	if opts.hookPath != "" {
		hook = script.New(*logging.FromContext(logging.WithComponent(ctx, "script")))
		defer hook.Close()
		if err := hook.LoadFile(opts.hookPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not load hook script: %v\n", err)
			return 1
		}
		bindOpts = append(bindOpts, bindings.WithCommandHook(hook.Handle))
	}

	binds := bindings.New(bindOpts...)
	if opts.debug || settings.KeyDebug {
		binds.SetDebug(true)
	}

	// The device reads the registry's fake meta key; the registry reads the
	// device's held modifiers.
	dev := device.New(device.WithFakeMetaSource(binds))
	binds.SetModifierSource(dev)

	// Settings edits keep the chain timeout live.
	sub := manager.Subscribe(func(c config.Change) {
		binds.SetChainTimeout(c.New.ChainTimeout())
	})
	defer sub.Unsubscribe()

	if !opts.noDefaults {
		binds.LoadDefaults()
	}

	keysPath := opts.keysPath
	if keysPath == "" {
		keysPath = settings.BindingsFile
	}
	if _, err := os.Stat(keysPath); err == nil {
		if err := binds.Load(keysPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not load bindings: %v\n", err)
			return 1
		}
	} else if opts.keysPath != "" {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	for _, line := range splitLines(opts.execLines) {
		binds.ExecuteLine(line)
	}

	return report(binds, opts, log)
}

// report runs the requested read-only outputs.
func report(binds *bindings.Bindings, opts options, log zerolog.Logger) int {
	if opts.hotkeysFor != "" {
		for _, hk := range binds.Hotkeys(opts.hotkeysFor) {
			fmt.Println(hk)
		}
	}

	if opts.resolveExpr != "" {
		ks, err := key.ParseSet(opts.resolveExpr, binds.KeyCodes(), binds.ScanCodes())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not parse %q: %v\n", opts.resolveExpr, err)
			return 1
		}
		keyCode, scanCode := -1, -1
		if ks.IsKeyCode() {
			keyCode = ks.Code
		} else {
			scanCode = ks.Code
		}
		// A bare key name resolves against the live modifier state; an
		// explicit "Mod+key" expression pins the modifiers.
		var results []bindings.Binding
		if ks.Mods == key.ModNone {
			results = binds.ResolveKeyCurrent(keyCode, scanCode)
		} else {
			results = binds.ResolveKey(keyCode, scanCode, ks.Mods)
		}
		for _, b := range results {
			fmt.Printf("%s  %s\n", b.BoundWith, b.Action.Raw)
		}
	}

	if opts.printKeys {
		if err := binds.Print(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.savePath != "" {
		if err := binds.Save(opts.savePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not save: %v\n", err)
			return 1
		}
		log.Info().Str("filename", opts.savePath).Msg("saved active keybindings")
	}

	return 0
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(s, ";") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "uikeys.toml", "Path to settings file")
	flag.StringVar(&opts.configPath, "c", "uikeys.toml", "Path to settings file (shorthand)")
	flag.StringVar(&opts.keysPath, "keys", "", "Bindings file to load (default from settings)")
	flag.StringVar(&opts.hookPath, "hook", "", "Lua hook script for unrecognized commands")
	flag.BoolVar(&opts.noDefaults, "nodefaults", false, "Skip the default binding table")
	flag.BoolVar(&opts.debug, "debug", false, "Enable resolution tracing")
	flag.BoolVar(&opts.debug, "d", false, "Enable resolution tracing (shorthand)")
	flag.StringVar(&opts.savePath, "save", "", "Save the active bindings to a file")
	flag.BoolVar(&opts.printKeys, "print", false, "Print the active bindings")
	flag.StringVar(&opts.hotkeysFor, "hotkeys", "", "List the shortcuts bound to an action")
	flag.StringVar(&opts.resolveExpr, "resolve", "", "Resolve a shortcut expression (e.g. \"Any+Ctrl+a\")")
	flag.StringVar(&opts.execLines, "exec", "", "Semicolon-separated dispatch lines to run after loading")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "uikeys - key binding inspection tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: uikeys [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  uikeys -print                       Show defaults plus uikeys.txt\n")
		fmt.Fprintf(os.Stderr, "  uikeys -keys my.txt -resolve g      Resolve a key against a file\n")
		fmt.Fprintf(os.Stderr, "  uikeys -hotkeys attack              Shortcuts bound to an action\n")
		fmt.Fprintf(os.Stderr, "  uikeys -exec \"bind q stop;keyprint\" Run dispatch lines\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("uikeys %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
