// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/dossier/internal/selector"
	"github.com/taibuivan/dossier/internal/state"
)

// viewResult is the output of the view commands.
type viewResult struct {
	ID   string `json:"id"`
	View string `json:"view"`
}

func (app *cli) viewCommand() *cobra.Command {
	var (
		mode    string
		preview bool
	)

	view := &cobra.Command{
		Use:   "view",
		Short: "Resolve the display mode of a record",
	}
	view.PersistentFlags().StringVar(&mode, "mode", "", "explicit display mode")
	view.PersistentFlags().BoolVar(&preview, "preview", false, "resolve as rendered in the preview pane")

	resolver := func(use, short string, resolve func(store *state.Store, id string) string) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.store(cmd)
				if err != nil {
					return err
				}
				return printJSON(cmd, viewResult{ID: args[0], View: resolve(store, args[0])})
			},
		}
	}

	view.AddCommand(
		resolver("document", "Display mode of a document", func(store *state.Store, id string) string {
			return selector.DocumentView(store, id, mode)
		}),
		resolver("entity", "Display mode of an entity", func(store *state.Store, id string) string {
			return selector.EntityView(store, id, mode, preview)
		}),
		resolver("collection", "Schema tab a collection opens on", func(store *state.Store, id string) string {
			return selector.CollectionView(store, id, mode, preview)
		}),
	)

	return view
}

func (app *cli) localeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locale",
		Short: "Print the active locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.store(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"locale": selector.Locale(store)})
		},
	}
}

func (app *cli) metadataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Print the metadata valid for the active locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.store(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, selector.Metadata(store))
		},
	}
}
