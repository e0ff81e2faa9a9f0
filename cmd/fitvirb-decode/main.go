// Command fitvirb-decode decodes a single .fit file and writes an
// LLM-ready export bundle (manifest.json + records.jsonl), grounded on
// cmd/fitllmexport's flag layout and reporting style.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kjordahl/fitvirb/export"
)

func main() {
	var (
		outDir     = flag.String("out-dir", "", "Output directory for manifest.json and records.jsonl")
		overwrite  = flag.Bool("overwrite", true, "Allow writing to non-empty output directories")
		copySource = flag.Bool("copy-source", true, "Copy original FIT file into the export directory")
		strict     = flag.Bool("strict", false, "Abort on unknown developer field descriptions instead of falling back to raw bytes")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <path-to-fit-file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	inputPath := flag.Arg(0)
	if strings.TrimSpace(*outDir) == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		*outDir = filepath.Join(".", "exports", base+"_"+export.ExportFormatVersion)
	}

	result, err := export.ExportFile(inputPath, *outDir, export.Options{
		Overwrite:      *overwrite,
		CopySourceFile: *copySource,
		Strict:         *strict,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Export complete\n")
	fmt.Printf("Output dir: %s\n", result.OutputDir)
	fmt.Printf("Manifest:   %s\n", result.ManifestPath)
	fmt.Printf("Records:    %s (%d messages)\n", result.RecordsPath, result.RecordCount)
	if result.SourceCopyPath != "" {
		fmt.Printf("Source fit: %s\n", result.SourceCopyPath)
	}
}
