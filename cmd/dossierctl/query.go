// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dossier/internal/selector"
	"github.com/taibuivan/dossier/pkg/query"
)

// keyResult is the output of the key command.
type keyResult struct {
	Key         string `json:"key"`
	Fingerprint string `json:"fingerprint"`
}

func keyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "key <path> <rawQuery>",
		Short: "Print the canonical key of a query",
		Long: `Print the canonical key a paginated result is stored under, and its
BLAKE2b fingerprint. Parameter order does not change the key.

Examples:
  dossierctl key entities "q=acme&filter:schema=Email"
  dossierctl key entities "filter:schema=Email&q=acme"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := query.FromLocation(args[0], args[1], nil, "")
			if err != nil {
				return fmt.Errorf("parse query: %w", err)
			}
			return printJSON(cmd, keyResult{Key: q.ToKey(), Fingerprint: q.Fingerprint()})
		},
	}
}

func (app *cli) resultCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "result entities|collections <rawQuery>",
		Short:     "Resolve a paginated result",
		Args:      cobra.MatchAll(cobra.ExactArgs(2), validResultPath),
		ValidArgs: []string{"entities", "collections"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.store(cmd)
			if err != nil {
				return err
			}

			q, err := query.FromLocation(args[0], args[1], nil, "")
			if err != nil {
				return fmt.Errorf("parse query: %w", err)
			}

			if args[0] == "collections" {
				return printJSON(cmd, selector.CollectionsResult(store, q))
			}
			return printJSON(cmd, selector.EntitiesResult(store, q))
		},
	}
}

func validResultPath(_ *cobra.Command, args []string) error {
	switch args[0] {
	case "entities", "collections":
		return nil
	}
	return fmt.Errorf("unknown result path %q: want entities or collections", args[0])
}
