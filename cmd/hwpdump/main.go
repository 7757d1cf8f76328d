// Command hwpdump parses an HWP document (BinaryCompound, XmlZip, or
// legacy HWP 3.x) and prints its text and metadata, the way the
// teacher's msdocdump tool exercised the DOC reader end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iyulab/go-unhwp/hwpdoc"
)

func main() {
	lenient := flag.Bool("lenient", false, "recover from malformed sections instead of aborting")
	textOnly := flag.Bool("text-only", false, "skip resource extraction")
	asJSON := flag.Bool("json", false, "print the document model as JSON instead of plain text")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hwpdump [-lenient] [-text-only] [-json] <file.hwp|file.hwpx>")
		os.Exit(1)
	}
	filename := flag.Arg(0)

	opts := hwpdoc.DefaultOptions()
	if *lenient {
		opts = opts.WithLenient()
	}
	if *textOnly {
		opts = opts.WithTextOnly()
	}

	doc, err := hwpdoc.OpenWithOptions(filename, opts)
	if err != nil {
		log.Fatalf("failed to parse %s: %v", filename, err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			log.Fatalf("failed to encode document: %v", err)
		}
		return
	}

	fmt.Println("=== Metadata ===")
	fmt.Printf("Title: %s\n", doc.Metadata.Title)
	fmt.Printf("Author: %s\n", doc.Metadata.Author)
	fmt.Printf("FormatVersion: %s\n", doc.Metadata.FormatVersion)
	fmt.Printf("Restricted: %v\n", doc.Metadata.Restricted)
	if doc.Metadata.PreviewText != "" {
		fmt.Printf("PreviewText: %s\n", doc.Metadata.PreviewText)
	}

	fmt.Println("\n=== Text ===")
	fmt.Println(doc.PlainText())

	if len(doc.Resources) > 0 {
		fmt.Println("\n=== Resources ===")
		for name, res := range doc.Resources {
			fmt.Printf("- %s (%s, %d bytes)\n", name, res.MimeType, len(res.Data))
		}
	}
}
