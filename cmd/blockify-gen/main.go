// Command blockify-gen generates a Codec/Marshal/Equal/Clone
// implementation for a payload struct, in the tradition of stringer:
// point it at the source file defining the type and the struct name,
// and it writes "<type>_blockify.go" alongside it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nisaacdz/blockify/pkg/genrecord"
)

func main() {
	var (
		typeName = flag.String("type", "", "name of the payload struct to generate a codec for")
		out      = flag.String("out", "", "output file path (default: <type>_blockify.go next to the input)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: blockify-gen -type TypeName [-out file.go] <source.go>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *typeName == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	srcFile := flag.Arg(0)

	if err := run(srcFile, *typeName, *out); err != nil {
		fmt.Fprintf(os.Stderr, "blockify-gen: %v\n", err)
		os.Exit(1)
	}
}

func run(srcFile, typeName, out string) error {
	spec, err := genrecord.ParseFile(srcFile, typeName)
	if err != nil {
		return err
	}

	code, err := genrecord.Render(spec)
	if err != nil {
		return err
	}

	if out == "" {
		base := strings.ToLower(typeName)
		out = filepath.Join(filepath.Dir(srcFile), base+"_blockify.go")
	}
	return os.WriteFile(out, code, 0o644)
}
