package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vaultboard/vaultboard/internal/chains"
	"github.com/vaultboard/vaultboard/internal/config"
	"github.com/vaultboard/vaultboard/internal/emptystate"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
	"github.com/vaultboard/vaultboard/internal/http/views"
	"github.com/vaultboard/vaultboard/internal/logging"
	"github.com/vaultboard/vaultboard/internal/reports"
	"github.com/vaultboard/vaultboard/internal/strategies"
	"github.com/vaultboard/vaultboard/internal/vaults"
	"github.com/vaultboard/vaultboard/internal/ydaemon"
)

type vaultsOptions struct {
	ChainID  int
	Search   string
	Category string
	JSON     bool
}

type strategiesOptions struct {
	ChainID      int
	Vault        string
	Search       string
	HideZeroDebt bool
	JSON         bool
}

var (
	vaultsOpts     vaultsOptions
	strategiesOpts strategiesOptions
	chainsJSON     bool
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List the networks the dashboard knows.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := chains.Default()
		if err != nil {
			return err
		}
		return printChains(cmd.OutOrStdout(), registry, chainsJSON)
	},
}

var vaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "List the vaults of a chain from yDaemon.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runVaults(ctx, cmd.OutOrStdout(), cfg, vaultsOpts)
	},
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the strategies of a vault with their latest APR.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(strategiesOpts.Vault) == "" {
			return usageError("--vault is required")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runStrategies(ctx, cmd.OutOrStdout(), cfg, strategiesOpts)
	},
}

func init() {
	chainsCmd.Flags().BoolVar(&chainsJSON, "json", false, "Print chains as JSON")

	vaultsCmd.Flags().IntVar(&vaultsOpts.ChainID, "chain", 0, "Chain id (defaults to PRIMARY_CHAIN_ID)")
	vaultsCmd.Flags().StringVar(&vaultsOpts.Search, "search", "", "Only vaults whose name or token contains this text")
	vaultsCmd.Flags().StringVar(&vaultsOpts.Category, "category", "", "Only vaults of this category")
	vaultsCmd.Flags().BoolVar(&vaultsOpts.JSON, "json", false, "Print vaults as JSON")

	strategiesCmd.Flags().IntVar(&strategiesOpts.ChainID, "chain", 0, "Chain id (defaults to PRIMARY_CHAIN_ID)")
	strategiesCmd.Flags().StringVar(&strategiesOpts.Vault, "vault", "", "Vault address")
	strategiesCmd.Flags().StringVar(&strategiesOpts.Search, "search", "", "Only strategies whose name contains this text")
	strategiesCmd.Flags().BoolVar(&strategiesOpts.HideZeroDebt, "hide-zero-debt", true, "Hide strategies without debt")
	strategiesCmd.Flags().BoolVar(&strategiesOpts.JSON, "json", false, "Print strategy rows as JSON")
}

func newYDaemonClient(cfg config.Config) (*ydaemon.Client, error) {
	return ydaemon.New(cfg.YDaemonBaseURI, ydaemon.Options{Timeout: cfg.HTTPClientTimeout})
}

func chainOrPrimary(chainID int, cfg config.Config) int {
	if chainID > 0 {
		return chainID
	}
	if cfg.PrimaryChainID > 0 {
		return cfg.PrimaryChainID
	}
	return emptystate.DefaultPrimaryChainID
}

func printChains(out io.Writer, registry *chains.Registry, asJSON bool) error {
	if asJSON {
		return writeJSON(out, registry.All())
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSHORT\tNATIVE")
	for _, c := range registry.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.ShortName, c.NativeSymbol)
	}
	return tw.Flush()
}

func runVaults(ctx context.Context, out io.Writer, cfg config.Config, opts vaultsOptions) error {
	client, err := newYDaemonClient(cfg)
	if err != nil {
		return err
	}
	chainID := chainOrPrimary(opts.ChainID, cfg)
	all, err := client.ListVaults(ctx, chainID)
	if err != nil {
		return err
	}
	list := vaults.Filter(all, opts.Search, opts.Category)
	if opts.JSON {
		return writeJSON(out, list)
	}

	if len(list) == 0 {
		registry, err := chains.Default()
		if err != nil {
			return err
		}
		state := emptystate.Select(emptystate.Input{
			VisibleCount:   0,
			ChainID:        chainID,
			PrimaryChainID: cfg.PrimaryChainID,
			Category:       opts.Category,
		}, registry)
		fmt.Fprintf(out, "%s\n%s\n", state.Title, state.Message)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADDRESS\tNAME\tTOKEN\tCATEGORY\tSTRATEGIES")
	for _, v := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", v.Address, v.Title(), v.TokenSymbol(), v.Category, len(v.Strategies))
	}
	return tw.Flush()
}

func runStrategies(ctx context.Context, out io.Writer, cfg config.Config, opts strategiesOptions) error {
	client, err := newYDaemonClient(cfg)
	if err != nil {
		return err
	}
	chainID := chainOrPrimary(opts.ChainID, cfg)
	all, err := client.ListVaults(ctx, chainID)
	if err != nil {
		return err
	}
	var (
		vault vaults.Vault
		found bool
	)
	for _, v := range all {
		if strings.EqualFold(v.Address, strings.TrimSpace(opts.Vault)) {
			vault, found = v, true
			break
		}
	}
	if !found {
		return fmt.Errorf("vault %s not found on chain %d", opts.Vault, chainID)
	}

	ctrl := strategies.NewController(strategies.State{Search: opts.Search, HideZeroDebt: opts.HideZeroDebt})
	cache := reports.NewCache(client, reports.CacheOptions{FetchTimeout: cfg.HTTPClientTimeout, Logger: logging.Discard()})
	rows := viewmodels.ResolveStrategyRows(ctx, cache, cfg.ReportFetchWorkers, chainID, vault, ctrl.Visible(vault.Strategies))
	if opts.JSON {
		return writeJSON(out, rows)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADDRESS\tNAME\tAPR\tALLOCATION\tDEBT\tFEE\tLAST REPORT")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %s\t%s\t%s\n",
			row.Address,
			row.Title,
			views.FormatPercent(row.APR),
			views.FormatPercent(row.AllocationPercent),
			views.FormatAmount(row.CapitalAllocation), row.TokenSymbol,
			views.FormatPercent(row.PerformanceFeePercent),
			views.FormatRelativeTime(row.LastReport()),
		)
	}
	return tw.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
