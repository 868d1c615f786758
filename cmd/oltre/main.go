// oltre - design tokens from colour harmonies and fluid type scales
//
// oltre turns a base colour, a harmony rule and a type-scale ratio into
// palettes, contrast reports and fluid typography, rendered as CSS custom
// properties, WordPress theme.json, Tailwind config and more.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/oltre/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
