package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"daregister"
	"daregister/internal/fetch"
	"daregister/internal/refdata"
	"daregister/internal/store"
)

func main() {
	cmd := &cli.Command{
		Name:  "daregister",
		Usage: "Scrape development application records from a council register",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "Register index page or direct register PDF URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database path",
				Value: "daregister.sqlite",
			},
			&cli.StringFlag{
				Name:  "refdata",
				Usage: "Directory holding streets.csv/suburbs.csv/hundreds.csv",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of register PDFs to process (0 = all)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Dump fragments of skipped pages",
			},
		},
		Action: scrapeRegister,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func scrapeRegister(ctx context.Context, cmd *cli.Command) error {
	sourceURL := cmd.String("url")
	dbPath := cmd.String("db")
	refdataDir := cmd.String("refdata")
	limit := cmd.Int("limit")
	verbose := cmd.Bool("verbose")

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	client := fetch.NewClient(fetch.DefaultOptions())

	// A direct PDF link is processed as-is; anything else is treated as an
	// index page to discover register PDFs on.
	documentURLs := []string{sourceURL}
	if !strings.HasSuffix(strings.ToLower(sourceURL), ".pdf") {
		documentURLs, err = client.DiscoverRegisterLinks(ctx, sourceURL)
		if err != nil {
			return fmt.Errorf("failed to discover register links: %w", err)
		}
		if len(documentURLs) == 0 {
			return fmt.Errorf("no register PDFs linked from %s", sourceURL)
		}
	}
	if limit > 0 && len(documentURLs) > limit {
		documentURLs = documentURLs[:limit]
	}

	var reference daregister.ReferenceTables
	if refdataDir != "" {
		tables, err := refdata.Load(refdataDir)
		if err != nil {
			return fmt.Errorf("failed to load reference tables: %w", err)
		}
		reference = tables
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	config := daregister.DefaultConfig()
	config.VerboseLogging = verbose
	extractor := daregister.NewExtractorWithConfig(instance, config, reference)

	var totalFound, totalInserted, totalSkipped int
	for _, docURL := range documentURLs {
		log.Printf("Fetching %s", docURL)
		document, err := client.FetchDocument(ctx, docURL)
		if err != nil {
			log.Printf("Skipping %s: %v", docURL, err)
			continue
		}

		records, err := extractor.ExtractDocument(document, docURL)
		if err != nil {
			log.Printf("Skipping %s: %v", docURL, err)
			continue
		}

		result, err := db.SaveAll(ctx, records)
		if err != nil {
			log.Printf("Failed to persist records from %s: %v", docURL, err)
			continue
		}

		log.Printf("%s: %d records, %d inserted, %d already present",
			docURL, len(records), result.Inserted, result.Skipped)
		totalFound += len(records)
		totalInserted += result.Inserted
		totalSkipped += result.Skipped
	}

	fmt.Fprintf(os.Stderr, "Done: %d records found, %d inserted, %d skipped\n",
		totalFound, totalInserted, totalSkipped)
	return nil
}
