package main

import (
	"fmt"
	"time"

	"github.com/nishad/drugrake/internal/generator"
	"github.com/nishad/drugrake/internal/paths"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Expand a document with synthetic drugs",
	Long: `Write a copy of the source document padded with synthetic drug records
until it holds --total drugs. Each new drug gets a fresh primary id and,
for every kind of child element, one whole subtree picked at random from
the existing drugs.`,
	Example: `  drugrake generate --source drugbank_partial.xml --total 20000 --out drugbank_20k.xml
  drugrake generate --total 500 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	generateOut     string
	generateTotal   int
	generateSeed    uint64
	generateStartID int
	generateNoBar   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output document (default: data dir)")
	generateCmd.Flags().IntVarP(&generateTotal, "total", "n", 20000, "Number of drugs in the output")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Random seed (default: time based)")
	generateCmd.Flags().IntVar(&generateStartID, "start-id", 0, "Numeric part of the first generated id")
	generateCmd.Flags().BoolVar(&generateNoBar, "no-progress", false, "Disable progress bar")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}

	if generateOut == "" {
		generateOut = paths.GetGeneratedPath()
	}
	if !cmd.Flags().Changed("seed") {
		generateSeed = uint64(time.Now().UnixNano())
	}
	printDebug("seed %d", generateSeed)

	opts := generator.Options{
		Total:   generateTotal,
		StartID: generateStartID,
		Seed:    generateSeed,
	}

	var bar *progressbar.ProgressBar
	if !generateNoBar && !quiet {
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Generating drugs"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("drugs/s"),
					progressbar.OptionThrottle(65*time.Millisecond),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionOnCompletion(func() {
						fmt.Println()
					}),
				)
			}
			_ = bar.Add(1)
		}
	}

	res, err := generator.Generate(doc, opts)
	if err != nil {
		return err
	}

	w, closeFn, err := outputWriter(generateOut)
	if err != nil {
		return err
	}
	if err := res.Document.Write(w); err != nil {
		discardClose(closeFn, generateOut)
		return fmt.Errorf("failed to write %s: %w", generateOut, err)
	}
	if err := closeFn(); err != nil {
		return err
	}

	if res.Added == 0 {
		printInfo("Document already holds %d drugs; copied unchanged to %s", len(doc.Drugs()), generateOut)
		return nil
	}
	printSuccess("Added %d drugs (%s to %s) to %s", res.Added, res.FirstID, res.LastID, generateOut)
	return nil
}
