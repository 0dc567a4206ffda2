package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/config"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "marketctl",
		Short:   "Operator tasks for the microtask marketplace",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			logging.Init(cfg.LogLevel, cfg.LogFile)
		},
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(promoteCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes for the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store) error {
				if err := store.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed")
				return nil
			})
		},
	}
}

func promoteCmd() *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Set the role of an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store) error {
				users := services.NewUserService(store.Users)
				if err := users.SetRole(ctx, email, models.Role(role)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", email, role)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email of the user to promote")
	cmd.Flags().StringVarP(&role, "role", "r", string(models.RoleAdmin), "Role to grant (Worker, Buyer, Admin)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func withStore(ctx context.Context, fn func(context.Context, *repository.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := repository.Open(ctx, config.Load())
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	return fn(ctx, store)
}
