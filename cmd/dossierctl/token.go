// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dossier/internal/platform/constants"
	"github.com/taibuivan/dossier/internal/platform/sec"
)

func tokenCommand() *cobra.Command {
	var (
		privateKey string
		publicKey  string
		userID     string
		username   string
		role       string
		ttl        time.Duration
	)

	token := &cobra.Command{
		Use:   "token",
		Short: "Mint a session token accepted by the API",
		Long: `Mint an RS256 access token. The API derives the session of a request
from these claims; an admin role unlocks the ingest endpoints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !sec.UserRole(role).IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}

			service, err := sec.NewTokenService(privateKey, publicKey, constants.AuthIssuer)
			if err != nil {
				return err
			}

			signed, err := service.GenerateAccessToken(userID, username, role, ttl)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
			return err
		},
	}

	token.Flags().StringVar(&privateKey, "private-key", "", "PEM-encoded RSA private key")
	token.Flags().StringVar(&publicKey, "public-key", "", "PEM-encoded RSA public key")
	token.Flags().StringVar(&userID, "user", "", "user id")
	token.Flags().StringVar(&username, "name", "", "username")
	token.Flags().StringVar(&role, "role", string(sec.RoleUser), "admin, user or guest")
	token.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = token.MarkFlagRequired("private-key")
	_ = token.MarkFlagRequired("public-key")
	_ = token.MarkFlagRequired("user")

	return token
}
