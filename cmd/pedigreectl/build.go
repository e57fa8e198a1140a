package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/pedigree/backend/internal/util"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/store"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/store/memory"
	pgstore "github.com/OFFIS-RIT/pedigree/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	proband     int64
	maxNodes    int
	fixture     string
	databaseURL string
	compact     bool
}

func newBuildCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the pedigree of a proband and print it as JSON",
		Long: `Builds a pedigree graph either from a YAML family fixture or from the database.

Examples:
  pedigreectl build --proband 12 --fixture family.yaml
  pedigreectl build --proband 12 --max-nodes 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags)
		},
	}

	cmd.Flags().Int64Var(&flags.proband, "proband", 0, "Patient id to build the pedigree for")
	cmd.Flags().IntVar(&flags.maxNodes, "max-nodes", pedigree.DefaultMaxNodes, "Maximum number of nodes")
	cmd.Flags().StringVar(&flags.fixture, "fixture", "", "YAML family fixture to read instead of the database")
	cmd.Flags().StringVar(&flags.databaseURL, "database-url", util.GetEnv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "Print JSON on a single line")
	_ = cmd.MarkFlagRequired("proband")

	return cmd
}

func runBuild(cmd *cobra.Command, flags buildFlags) error {
	ctx := cmd.Context()

	if flags.maxNodes <= 0 {
		return fmt.Errorf("max-nodes must be positive, got %d", flags.maxNodes)
	}

	var source store.Storage
	if flags.fixture != "" {
		s, err := memory.LoadFile(flags.fixture)
		if err != nil {
			return err
		}
		source = s
	} else {
		if flags.databaseURL == "" {
			return errors.New("either --fixture or a database url is required")
		}
		pool, err := pgxpool.New(ctx, flags.databaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()
		source = pgstore.NewPedigreeDBStorage(pool)
	}

	exists, err := source.PatientExists(ctx, flags.proband)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("patient %d not found", flags.proband)
	}

	builder := pedigree.NewBuilder(pedigree.NewBuilderParams{Source: source, MaxNodes: flags.maxNodes})
	res, err := builder.Build(ctx, flags.proband, pedigree.BuildOptions{})
	if err != nil {
		return fmt.Errorf("building pedigree: %w", err)
	}

	var data []byte
	if flags.compact {
		data, err = json.Marshal(res.Graph)
	} else {
		data, err = json.MarshalIndent(res.Graph, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding pedigree: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	if res.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "pedigree truncated at %d nodes\n", flags.maxNodes)
	}
	return nil
}
