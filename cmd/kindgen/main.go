/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// kindgen generates record types and a typed DataStore from a kind map YAML file.
//
// Usage from a go:generate directive:
//
//	//go:generate go run ../cmd/kindgen -in kinds.yaml -out zz_generated_kinds.go -package media
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suparena/kindstore"
	"github.com/suparena/kindstore/processor"
)

var (
	inFlag      = flag.String("in", "kinds.yaml", "kind map YAML file")
	outFlag     = flag.String("out", "zz_generated_kinds.go", "output file path")
	packageFlag = flag.String("package", "", "package name of the generated file (default $GOPACKAGE)")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := kindstore.GetVersionInfo()
		fmt.Printf("kindstore kindgen version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	pkg := *packageFlag
	if pkg == "" {
		pkg = os.Getenv("GOPACKAGE")
	}
	if pkg == "" {
		fmt.Fprintln(os.Stderr, "kindgen: -package is required outside go generate")
		os.Exit(2)
	}

	km, err := processor.GenerateFile(*inFlag, *outFlag, pkg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kindgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("kindgen: generated %s (%d kinds)\n", *outFlag, len(km.Kinds))
}
