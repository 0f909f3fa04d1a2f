// Command qrgen renders a WireGuard client config as a scannable QR code.
//
//	qrgen <config-file> [output-name]
//
// It always writes <output-name>.png and, when possible, <output-name>.svg and
// a terminal rendering. output-name defaults to the config file's base name.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/playmo/smartdns-api/internal/qrrender"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: qrgen <config-file> [output-name]")
		fmt.Fprintln(stderr, "Example: qrgen client1.conf")
		return 1
	}

	configFile := args[0]
	content, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: Config file not found: %s\n", configFile)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	outputName := strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	if len(args) > 1 {
		outputName = args[1]
	}

	code, err := qrrender.Encode(string(content))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	pngFile := outputName + ".png"
	if err := code.WritePNG(pngFile); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "PNG QR code saved: %s\n", pngFile)

	svgFile := outputName + ".svg"
	if err := code.WriteSVG(svgFile); err == nil {
		fmt.Fprintf(stdout, "SVG QR code saved: %s\n", svgFile)
	}

	fmt.Fprintln(stdout, "\nQR Code (scan with WireGuard app):")
	fmt.Fprintln(stdout, strings.Repeat("=", 50))
	fmt.Fprint(stdout, code.ASCII())

	fmt.Fprintf(stdout, "\nQR codes generated for: %s\n", configFile)
	fmt.Fprintf(stdout, "Share %s with your customer!\n", pngFile)
	return 0
}
