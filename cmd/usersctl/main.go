package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/observability"
	"github.com/spec-kit/users-service/internal/persistence"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "usersctl",
		Short:         "Operator tooling for the users service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	var (
		tokenRole   string
		tokenID     int64
		tokenLogin  string
		tokenCities []string
		tokenTTL    time.Duration
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.Role(tokenRole)
			if !role.Valid() {
				return fmt.Errorf("--role must be one of master, director, admin, callcentre_admin, callcentre_operator")
			}
			if tokenID <= 0 {
				return fmt.Errorf("--id must be a positive integer")
			}
			if tokenLogin == "" {
				return fmt.Errorf("--login is required")
			}
			codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret)
			if err != nil {
				return err
			}
			ttl := tokenTTL
			if ttl <= 0 {
				ttl = cfg.Auth.AccessTokenTTL()
			}
			raw, expiresAt, err := codec.Sign(domain.Principal{
				SubjectID: tokenID,
				Login:     tokenLogin,
				Role:      role,
				Cities:    tokenCities,
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "Principal role")
	tokenCmd.Flags().Int64Var(&tokenID, "id", 0, "Principal id")
	tokenCmd.Flags().StringVar(&tokenLogin, "login", "", "Principal login")
	tokenCmd.Flags().StringSliceVar(&tokenCities, "cities", nil, "Cities the principal is scoped to")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to AUTH_ACCESS_TOKEN_TTL_MINUTES)")

	var origin string
	cookieNameCmd := &cobra.Command{
		Use:   "cookie-name",
		Short: "Print the access-token cookie name used for an origin",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), auth.CookieName(cfg.Cookie.AccessTokenName, origin, cfg.Cookie.ApexDomain))
			return nil
		},
	}
	cookieNameCmd.Flags().StringVar(&origin, "origin", "", "Request Origin header value")

	signCookieCmd := &cobra.Command{
		Use:   "sign-cookie <value>",
		Short: "Sign a cookie value with COOKIE_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.TrimSpace(args[0])
			if value == "" {
				return fmt.Errorf("cookie value must not be empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), auth.SignCookie(value, []byte(cfg.Cookie.Secret)))
			return nil
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded SQL migrations to DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := observability.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			if err := persistence.RunMigrations(ctx, pg.Pool, persistence.Migrations(), logger); err != nil {
				return err
			}
			logger.Info("migrations applied", zap.String("app", cfg.App.Name))
			return nil
		},
	}

	root.AddCommand(tokenCmd, cookieNameCmd, signCookieCmd, migrateCmd)
	return root
}
