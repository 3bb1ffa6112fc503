package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/urfave/cli/v2"

	"github.com/Azure-Samples/key-vault-go-storage-accounts/internal/sample"
)

func main() {
	app := &cli.App{
		Name:  "key-vault-storage-accounts",
		Usage: "walks through Key Vault managed storage accounts and SAS definitions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "tenant-id",
				Usage:    "Azure Active Directory tenant of the subscription",
				EnvVars:  []string{"AZURE_TENANT_ID"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client-id",
				Usage:    "service principal application id",
				EnvVars:  []string{"AZURE_CLIENT_ID"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client-secret",
				Usage:    "service principal secret",
				EnvVars:  []string{"AZURE_CLIENT_SECRET"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client-oid",
				Usage:    "service principal object id, granted vault access on creation",
				EnvVars:  []string{"AZURE_CLIENT_OID"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "subscription-id",
				Usage:    "subscription to create resources in",
				EnvVars:  []string{"AZURE_SUBSCRIPTION_ID"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "location",
				Usage:   "Azure region for created resources",
				EnvVars: []string{"AZURE_LOCATION"},
				Value:   "westus",
			},
			&cli.StringFlag{
				Name:    "resource-group",
				Usage:   "resource group for created resources, created when missing",
				EnvVars: []string{"AZURE_RESOURCE_GROUP"},
				Value:   "azure-key-vault-samples",
			},
			&cli.StringFlag{
				Name:    "vault-name",
				Usage:   "reuse an existing vault instead of provisioning one",
				EnvVars: []string{"AZURE_VAULT_NAME"},
			},
			&cli.StringFlag{
				Name:    "storage-account",
				Usage:   "reuse an already-registered storage account",
				EnvVars: []string{"AZURE_STORAGE_NAME"},
			},
			&cli.BoolFlag{
				Name:  "azurite",
				Usage: "exercise SAS tokens against a local Azurite emulator",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				EnvVars: []string{"DEBUG"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if c.Bool("debug") {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	s, err := sample.New(logger, sample.Config{
		TenantID:       c.String("tenant-id"),
		ClientID:       c.String("client-id"),
		ClientSecret:   c.String("client-secret"),
		ClientOID:      c.String("client-oid"),
		SubscriptionID: c.String("subscription-id"),
		Location:       c.String("location"),
		ResourceGroup:  c.String("resource-group"),
		VaultName:      c.String("vault-name"),
		AccountName:    c.String("storage-account"),
		Azurite:        c.Bool("azurite"),
		Debug:          c.Bool("debug"),
	})
	if err != nil {
		return err
	}

	return s.Run(context.Background())
}
