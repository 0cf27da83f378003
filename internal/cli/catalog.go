package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cortesys/cutplan/internal/catalog"
	"github.com/cortesys/cutplan/internal/model"
)

// newCatalogCmd groups the material catalog subcommands.
func newCatalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the sheet and banding catalogs",
	}

	cmd.AddCommand(newCatalogListCmd(configPath))
	cmd.AddCommand(newCatalogAddSheetCmd(configPath))
	cmd.AddCommand(newCatalogAddBandingCmd(configPath))
	cmd.AddCommand(newCatalogRemoveCmd(configPath))

	return cmd
}

func openStore(configPath *string) (*catalog.Store, error) {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(cfg.DataDir), nil
}

func newCatalogListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sheet and banding types",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			sheets, err := store.SheetTypes()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Sheet types:")
			for _, st := range sheets {
				status := ""
				if !st.Active {
					status = " (inactive)"
				}
				fmt.Fprintf(out, "  %s  %-28s %.0fx%.0fx%.0f mm  %.2f/sheet  grain=%s%s\n",
					st.ID, st.Name, st.Length, st.Width, st.Thickness, st.Price, st.Grain, status)
			}

			bandings, err := store.BandingTypes()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Banding types:")
			for _, bt := range bandings {
				status := ""
				if !bt.Active {
					status = " (inactive)"
				}
				fmt.Fprintf(out, "  %s  %-28s %.0f mm, %.0f m/roll, %.2f/roll%s\n",
					bt.ID, bt.Name, bt.WidthMM, bt.RollLengthM, bt.PricePerRol, status)
			}
			return nil
		},
	}
}

func newCatalogAddSheetCmd(configPath *string) *cobra.Command {
	var grain string
	cmd := &cobra.Command{
		Use:   "add-sheet <name> <length> <width> <thickness> <price>",
		Short: "Add a sheet type to the catalog",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configPath)
			if err != nil {
				return err
			}
			dims := make([]float64, 4)
			for i, arg := range args[1:] {
				dims[i], err = strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", arg, err)
				}
			}
			st := model.NewSheetType(args[0], dims[0], dims[1], dims[2], dims[3], model.ParseGrainMode(grain))
			if err := store.AddSheetType(st); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("added sheet type", "id", st.ID, "name", st.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&grain, "grain", "none", "grain direction: none, lengthwise or widthwise")
	return cmd
}

func newCatalogAddBandingCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add-banding <name> <width-mm> <roll-length-m> <price-per-roll>",
		Short: "Add a banding type to the catalog",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configPath)
			if err != nil {
				return err
			}
			nums := make([]float64, 3)
			for i, arg := range args[1:] {
				var err error
				nums[i], err = strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", arg, err)
				}
			}
			bt := model.NewBandingType(args[0], nums[0], nums[1], nums[2])
			if err := store.AddBandingType(bt); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("added banding type", "id", bt.ID, "name", bt.Name)
			return nil
		},
	}
}

func newCatalogRemoveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Deactivate a sheet or banding type",
		Long:  `Remove deactivates the catalog entry with the given ID. The entry stays on disk so saved projects keep resolving, but it is no longer offered for new cut lists.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configPath)
			if err != nil {
				return err
			}
			id := args[0]
			if err := store.DeactivateSheetType(id); err == nil {
				loggerFromContext(cmd.Context()).Info("deactivated sheet type", "id", id)
				return nil
			}
			if err := store.DeactivateBandingType(id); err == nil {
				loggerFromContext(cmd.Context()).Info("deactivated banding type", "id", id)
				return nil
			}
			return fmt.Errorf("no catalog entry with ID %s", id)
		},
	}
}
