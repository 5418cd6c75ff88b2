package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/lioratech/mvp-web-sub001/modules"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/infrastructure/persistence"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/services"
	"github.com/lioratech/mvp-web-sub001/pkg/application"
	"github.com/lioratech/mvp-web-sub001/pkg/composables"
	"github.com/lioratech/mvp-web-sub001/pkg/configuration"
	"github.com/lioratech/mvp-web-sub001/pkg/eventbus"
	"github.com/lioratech/mvp-web-sub001/pkg/logging"
)

func main() {
	root := &cobra.Command{
		Use:          "payrollctl",
		Short:        "Operational commands for the payroll service",
		SilenceUsage: true,
	}
	root.AddCommand(migrateCmd(), deleteRunCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			logger := logging.ConsoleLogger(conf.LogrusLogLevel())

			pool, err := pgxpool.New(cmd.Context(), conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			app := application.New(&application.ApplicationOptions{
				Pool:     pool,
				EventBus: eventbus.NewEventPublisher(logger),
				Logger:   logger,
			})
			if err := modules.Load(app); err != nil {
				return err
			}
			if err := app.Migrations().Run(cmd.Context()); err != nil {
				return err
			}
			logger.Info("schema applied")
			return nil
		},
	}
}

func deleteRunCmd() *cobra.Command {
	var accountFlag, runFlag string

	cmd := &cobra.Command{
		Use:   "delete-run",
		Short: "Remove every row a payroll run wrote for an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accountID, err := uuid.Parse(accountFlag)
			if err != nil {
				return err
			}
			runID, err := uuid.Parse(runFlag)
			if err != nil {
				return err
			}

			conf := configuration.Use()
			logger := logging.ConsoleLogger(conf.LogrusLogLevel())

			pool, err := pgxpool.New(cmd.Context(), conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := persistence.NewPayrollRepository(conf.Payroll.ParamCeiling, conf.Payroll.ExistenceChunk)
			svc := services.NewPayrollService(pool, repo, eventbus.NewEventPublisher(logger))

			ctx := composables.WithLogger(cmd.Context(), logger.WithField("command", "delete-run"))
			report, err := svc.DeleteRun(ctx, accountID, runID)
			if err != nil {
				return err
			}
			logger.WithField("counts", report.DeletedCounts).Info("run deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&accountFlag, "account", "", "account id (uuid)")
	cmd.Flags().StringVar(&runFlag, "run", "", "payroll run id (uuid)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("run")
	return cmd
}
