package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caryschwartzstein/edgar-parser/internal/store"
	"github.com/caryschwartzstein/edgar-parser/internal/universe"
)

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Manage the ticker-to-CIK company universe",
}

var universeSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the SEC ticker mapping and upsert it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		f, err := initFetcher()
		if err != nil {
			return err
		}

		n, err := universe.NewSyncer(f, st).Sync(ctx)
		if err != nil {
			return eris.Wrap(err, "sync universe")
		}

		zap.L().Info("universe sync complete", zap.Int64("companies", n))
		return nil
	},
}

var universeSearch string

var universeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies in the stored universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		companies, err := st.ListCompanies(ctx, store.CompanyFilter{NameContains: universeSearch})
		if err != nil {
			return eris.Wrap(err, "list companies")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(companies)
	},
}

func init() {
	universeListCmd.Flags().StringVar(&universeSearch, "name", "", "filter by company name substring")
	universeCmd.AddCommand(universeSyncCmd)
	universeCmd.AddCommand(universeListCmd)
	rootCmd.AddCommand(universeCmd)
}
