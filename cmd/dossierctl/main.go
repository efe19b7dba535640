// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command dossierctl evaluates the view selectors against a YAML snapshot
// fixture and prints the results as JSON.
//
// Examples:
//
//	dossierctl --fixture snapshot.yaml view collection 7
//	dossierctl --fixture snapshot.yaml result entities "q=acme&filter:schema=Email"
//	dossierctl key entities "filter:schema=Email&q=acme"
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
