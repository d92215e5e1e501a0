package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/muller/cepapp/internal/api"
	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/service"
	"github.com/muller/cepapp/internal/infrastructure/http/handlers"
	"github.com/muller/cepapp/internal/infrastructure/postal"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	tokens := service.NewTokenService(domain.TokenConfig{
		Secret: []byte(cfg.Token.Secret),
		TTL:    cfg.Token.TTL,
		Issuer: cfg.Token.Issuer,
	})
	resolver := postal.NewViaCEPClient(postal.Config{
		BaseURL: cfg.Postal.BaseURL,
		Timeout: cfg.Postal.Timeout,
	}, log)

	e := api.NewRouter(api.Deps{
		Logger:         log,
		Tokens:         tokens,
		Users:          st.users,
		Revocations:    st.revocations,
		AuthService:    service.NewAuthService(st.users, tokens),
		UserService:    service.NewUserService(st.users, st.addresses, st.revocations, log),
		AddressService: service.NewAddressService(st.addresses, st.users, resolver, log),
		Readiness:      handlers.NewHealthDependenciesHandler(st.db, st.rdb),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
