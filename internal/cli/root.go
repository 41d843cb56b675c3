package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reimburse/internal/backend"
	"reimburse/internal/config"
	"reimburse/internal/form"
	"reimburse/internal/log"
	"reimburse/internal/services"
)

type app struct {
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand builds the reimburse command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "reimburse",
		Short:         "Render club reimbursement forms from the request spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		a.formsCommand(),
		a.membersCommand(),
		a.classifyCommand(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := LoadEnvFile(a.envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	a.logger.Debug("Configuration loaded", log.FieldBackend, cfg.DataBackend)
	return nil
}

// withService opens the configured backend, builds a FormService delivering
// to sinks and closes the backend when fn returns. The AMQP publisher joins
// the sinks when one is configured and sinks is not empty.
func (a *app) withService(ctx context.Context, sinks []services.Sink, fn func(*services.FormService) error) error {
	bcfg, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return err
	}
	accounts, err := a.cfg.AccountTable()
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(a.logger.WithComponent(log.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			a.logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	if len(sinks) > 0 && res.Publisher != nil {
		sinks = append(sinks, res.Publisher)
	}
	svc := services.NewFormService(res.Source, res.Snapshots, accounts, a.cfg.AddressBook(),
		form.NewRenderer(a.cfg.Org()), a.logger, sinks...)
	return fn(svc)
}
