// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dossier/internal/state"
)

// errNoFixture is returned by commands that read a snapshot when --fixture is missing.
var errNoFixture = errors.New("no snapshot: pass --fixture <file> or --fixture - for stdin")

// cli holds the flags shared by every command.
type cli struct {
	fixture string
	locale  string
}

func newRootCommand() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:   "dossierctl",
		Short: "Inspect derived views of a Dossier snapshot",
		Long: `dossierctl loads a snapshot of the normalized store from a YAML fixture
and evaluates the same selectors the API serves.

The fixture uses the JSON field names of the wire format, e.g.:

  metadata:
    app: {title: Dossier, locale: en}
  entities:
    doc-1: {id: doc-1, schemata: [Pages]}`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&app.fixture, "fixture", "f", "", "YAML snapshot fixture (- reads stdin)")
	root.PersistentFlags().StringVar(&app.locale, "locale", "", "local locale override")

	root.AddCommand(
		app.viewCommand(),
		app.localeCommand(),
		app.metadataCommand(),
		app.resultCommand(),
		keyCommand(),
		tokenCommand(),
	)

	return root
}

// store loads the fixture and applies the locale override.
func (app *cli) store(cmd *cobra.Command) (*state.Store, error) {
	var reader io.Reader
	switch app.fixture {
	case "":
		return nil, errNoFixture
	case "-":
		reader = cmd.InOrStdin()
	default:
		file, err := os.Open(app.fixture)
		if err != nil {
			return nil, fmt.Errorf("open fixture: %w", err)
		}
		defer file.Close()
		reader = file
	}

	store, err := state.LoadFixture(reader)
	if err != nil {
		return nil, err
	}

	return store.WithConfig(state.Config{Locale: app.locale}).Localized(app.locale), nil
}

// printJSON writes value to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
