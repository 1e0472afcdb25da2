// ABOUTME: Entry point for the abook interactive assistant
// ABOUTME: Resolves configuration, loads the address book, runs the REPL, saves on exit
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/abook/cli"
	"github.com/harperreed/abook/repo"
	"github.com/harperreed/abook/storage"
)

const version = "0.2.0"

func main() {
	// Optional .env in the working directory; absence is fine.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	storageType := flag.String("storage", "", "Storage backend: sqlite or json (default: sqlite)")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.local/share/abook)")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("abook version %s\n", version)
		os.Exit(0)
	}

	store, err := storage.New(resolveStorageType(*storageType, flag.Args()), resolveDataDir(*dataDir))
	if err != nil {
		log.Fatalf("Failed to configure storage: %v", err)
	}

	repository := loadRepository(store)

	// Ctrl-C saves before exiting so in-session edits survive.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		saveRepository(store, repository)
		os.Exit(0)
	}()

	cli.New(repository, nil, os.Stdin, os.Stdout).Run()

	saveRepository(store, repository)
}

// resolveStorageType picks the storage key from the flag, the first
// positional argument, or the ABOOK_STORAGE environment variable, in that
// order.
func resolveStorageType(flagValue string, args []string) string {
	if flagValue != "" {
		return flagValue
	}
	if len(args) > 0 {
		return args[0]
	}
	if env := os.Getenv("ABOOK_STORAGE"); env != "" {
		return env
	}
	return storage.TypeSQLite
}

func resolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("ABOOK_DATA_DIR"); env != "" {
		return env
	}
	return filepath.Join(xdg.DataHome, "abook")
}

// loadRepository restores the saved address book. A load failure is
// downgraded to a warning and an empty book so the session can still start.
func loadRepository(store storage.Store) *repo.Repository {
	snapshot, err := store.Load()
	if err != nil {
		log.Printf("Warning: failed to load saved data, starting empty: %v", err)
		return repo.New()
	}
	return repo.FromSnapshot(snapshot)
}

// saveRepository persists the book on the way out. A failed save is reported
// but does not change the exit code.
func saveRepository(store storage.Store, repository *repo.Repository) {
	if err := store.Save(repository.Snapshot()); err != nil {
		log.Printf("Warning: failed to save data: %v", err)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `abook v%s - interactive personal assistant

USAGE:
  abook [flags] [storage]

FLAGS:
  --version              Show version and exit
  --storage <type>       Storage backend: sqlite or json (default: sqlite)
  --data-dir <path>      Data directory (default: ~/.local/share/abook)

The storage backend may also be given as a positional argument or via the
ABOOK_STORAGE environment variable; the data directory via ABOOK_DATA_DIR.

EXAMPLES:
  # Start with the default sqlite backend
  abook

  # Keep data as a JSON file in a custom directory
  abook --storage json --data-dir ~/addressbook

`, version)
}
