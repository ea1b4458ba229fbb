// Command pngcodec decodes a single PNG file and prints its header and any
// warnings. It is a thin wrapper around the core decoder, explicitly out of
// the codec's scope per spec §1; grounded on poolqa-CgbiPngFix/main.go's
// flag-based single-file CLI shape.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	png "github.com/fumin/pngcodec"
)

func main() {
	strict := flag.Bool("strict", false, "promote warnings to fatal errors")
	force32 := flag.Bool("force32", false, "reduce 16-bit images to 8-bit on decode")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pngcodec [-strict] [-force32] <file.png>")
		os.Exit(2)
	}

	b, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading file: %v", err)
	}

	result, err := png.Decode(b, png.DecodeOptions{StrictMode: *strict, Force32: *force32})
	if err != nil {
		log.Fatalf("decoding %s: %v", flag.Arg(0), err)
	}

	fmt.Printf("%dx%d bitDepth=%d colorType=%d interlace=%d\n",
		result.Image.Width, result.Image.Height,
		result.Details.BitDepth, result.Details.ColorType, result.Details.InterlaceMethod)
	for _, w := range result.Warnings {
		fmt.Printf("warning at offset %d: %s\n", w.Offset, w.Message)
	}
	for _, info := range result.Info {
		fmt.Printf("info: %s\n", info)
	}
}
