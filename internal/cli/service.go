// Package cli implements the subcommands of the lifehub binary. Every
// command builds the configured backend adapter and talks to it through the
// provider-agnostic contract only.
package cli

import (
	"context"
	"fmt"

	"github.com/teephopdisawas/lifehub/internal/backend"
	"github.com/teephopdisawas/lifehub/internal/backend/provider"
	"github.com/teephopdisawas/lifehub/internal/config"
	"github.com/teephopdisawas/lifehub/internal/logging"
)

// newService builds the adapter selected by the environment.
func newService() (backend.Service, error) {
	cfg := config.NewConfig()
	log := logging.New(cfg.Logging.Level)

	svc, err := provider.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}
	return svc, nil
}

// signIn authenticates and returns the principal. Sessions live only as
// long as the process, so every data command signs in up front.
func signIn(ctx context.Context, svc backend.Service, email, password string) (*backend.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	res := svc.Auth().SignIn(ctx, email, password)
	if res.Err != nil {
		return nil, fmt.Errorf("sign in failed: %w", res.Err)
	}
	return res.User, nil
}
