package main

import (
	"fmt"
	"os"

	"github.com/iyulab/go-unhwp/ole2"
)

// Command liststreams walks a BinaryCompound (OLE2/CFB) container's
// storage tree and prints every stream path it finds — useful for
// inspecting an .hwp file's FileHeader/DocInfo/BodyText/BinData layout
// without a full parse.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: liststreams <file.hwp>")
		os.Exit(1)
	}
	filePath := os.Args[1]
	file, err := os.Open(filePath)
	if err != nil {
		fmt.Printf("Failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	reader, err := ole2.NewReader(file)
	if err != nil {
		fmt.Printf("Failed to create OLE2 reader: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Storages/streams found:")
	walk(reader, "")
}

func walk(r *ole2.Reader, path string) {
	entries, err := r.ListStorage(path)
	if err != nil {
		return
	}
	for _, name := range entries {
		full := name
		if path != "" {
			full = path + "/" + name
		}
		fmt.Printf("- %s\n", full)
		walk(r, full)
	}
}
