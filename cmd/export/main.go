package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"kidventure/internal/config"
	"kidventure/internal/database"
	"kidventure/internal/models"
	"kidventure/internal/persistence"
)

// Dump/restore tool for the persisted app state blob. Useful for moving
// a device's state between storage engines and for support debugging.
func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: state_YYYYMMDD_HHMMSS.json)")
	importInput := importCmd.String("input", "", "Input file path (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure storage schema: %v", err)
	}

	blobs := persistence.NewSQLBlobStore(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, blobs, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, blobs, *importInput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, blobs *persistence.SQLBlobStore, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("state_%s.json", timestamp)
	}
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	blob, err := blobs.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to read state blob: %v", err)
	}
	if blob == nil {
		log.Fatal("No state has been stored yet, nothing to export")
	}

	// Re-indent so the dump is reviewable by hand
	var state models.AppState
	if err := json.Unmarshal(blob, &state); err != nil {
		log.Fatalf("Stored state is not parseable: %v", err)
	}
	pretty, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Fatalf("Failed to serialize state: %v", err)
	}

	if err := os.WriteFile(outputPath, pretty, 0644); err != nil {
		log.Fatalf("Failed to write export file: %v", err)
	}
	log.Printf("Export complete: %s (%d bytes, schema v%d, %d kid profiles)",
		outputPath, len(pretty), state.SchemaVersion, len(state.KidProfiles))
}

func handleImport(ctx context.Context, blobs *persistence.SQLBlobStore, inputPath string) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	// Reject files that do not parse as an app state before touching
	// storage
	var state models.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Fatalf("Input file is not a valid state dump: %v", err)
	}

	blob, err := json.Marshal(state)
	if err != nil {
		log.Fatalf("Failed to serialize state: %v", err)
	}
	if err := blobs.Save(ctx, blob); err != nil {
		log.Fatalf("Failed to write state blob: %v", err)
	}
	log.Printf("Import complete: schema v%d, %d kid profiles, role %q",
		state.SchemaVersion, len(state.KidProfiles), state.CurrentUserRole)
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  export [-output FILE]   Dump the stored app state to a JSON file")
	fmt.Println("  import -input FILE      Replace the stored app state with a JSON dump")
}
