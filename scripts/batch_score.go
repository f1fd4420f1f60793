// batch_score.go scores every survey file in a directory and prints one
// summary line per file.
//
// Usage:
//
//	go run scripts/batch_score.go -dir surveys/ -api http://localhost:8700
//	go run scripts/batch_score.go -dir surveys/ -dry-run
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/MikeSquared-Agency/Biotope/internal/client"
	"github.com/MikeSquared-Agency/Biotope/internal/logging"
	"github.com/MikeSquared-Agency/Biotope/internal/report"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
	"github.com/MikeSquared-Agency/Biotope/internal/survey"
)

func main() {
	dir := flag.String("dir", ".", "directory of survey files")
	apiURL := flag.String("api", "http://localhost:8700", "Biotope API base URL")
	token := flag.String("token", os.Getenv("BIOTOPE_API_TOKEN"), "API token")
	dryRun := flag.Bool("dry-run", false, "score locally without calling the API")
	flag.Parse()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("read dir: %v", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(*dir, e.Name())
		if _, err := survey.DetectFormat(p); err == nil {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	if len(paths) == 0 {
		log.Fatalf("no survey files in %s", *dir)
	}

	engine, err := scoring.NewEngine(scoring.DefaultOptions(), logging.Discard())
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	c := client.NewHTTPClient(*apiURL, *token)

	failed := 0
	for _, p := range paths {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		var rep *report.Report
		if *dryRun {
			rep, err = scoreLocal(engine, p)
		} else {
			rep, err = c.AssessFile(ctx, p, nil)
		}
		cancel()
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", p, err)
			continue
		}
		a := rep.Assessment
		fmt.Printf("%.2f  %s  S=%d N=%g simpson=%.4f shannon=%.4f pielou=%.4f margalef=%.4f\n",
			a.Final.Value, p, a.Richness, a.Abundance,
			a.Indexes.Simpson, a.Indexes.Shannon, a.Indexes.Pielou, a.Indexes.Margalef)
	}

	fmt.Printf("\nScored %d/%d surveys\n", len(paths)-failed, len(paths))
	if failed > 0 {
		os.Exit(1)
	}
}

func scoreLocal(engine *scoring.Engine, path string) (*report.Report, error) {
	s, err := survey.Load(path)
	if err != nil {
		return nil, err
	}
	a, err := engine.Assess(s.Table())
	if err != nil {
		return nil, err
	}
	return report.New(s, a, nil), nil
}
