// Package provider selects and constructs the active backend adapter from
// configuration. The chosen Service is built once at process start; nothing
// downstream ever switches providers mid-run.
package provider

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teephopdisawas/lifehub/internal/backend"
	"github.com/teephopdisawas/lifehub/internal/backend/appwrite"
	"github.com/teephopdisawas/lifehub/internal/backend/firebase"
	"github.com/teephopdisawas/lifehub/internal/backend/supabase"
	"github.com/teephopdisawas/lifehub/internal/config"
)

// New builds the adapter named by cfg.Backend.Provider. An unknown provider
// name or missing credentials for the chosen provider is a configuration
// error, reported before any network traffic happens.
func New(cfg *config.Config, log zerolog.Logger) (backend.Service, error) {
	switch cfg.Backend.Provider {
	case backend.ProviderSupabase:
		if cfg.Supabase.URL == "" || cfg.Supabase.AnonKey == "" {
			return nil, fmt.Errorf("supabase backend requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
		return supabase.New(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.HTTP.Timeout, log), nil

	case backend.ProviderFirebase:
		if cfg.Firebase.APIKey == "" || cfg.Firebase.ProjectID == "" {
			return nil, fmt.Errorf("firebase backend requires FIREBASE_API_KEY and FIREBASE_PROJECT_ID")
		}
		return firebase.New(firebase.Config{
			APIKey:        cfg.Firebase.APIKey,
			ProjectID:     cfg.Firebase.ProjectID,
			StorageBucket: cfg.Firebase.StorageBucket,
		}, cfg.HTTP.Timeout, log), nil

	case backend.ProviderAppwrite:
		if cfg.Appwrite.ProjectID == "" || cfg.Appwrite.DatabaseID == "" {
			return nil, fmt.Errorf("appwrite backend requires APPWRITE_PROJECT_ID and APPWRITE_DATABASE_ID")
		}
		return appwrite.New(appwrite.Config{
			Endpoint:     cfg.Appwrite.Endpoint,
			ProjectID:    cfg.Appwrite.ProjectID,
			DatabaseID:   cfg.Appwrite.DatabaseID,
			BucketID:     cfg.Appwrite.BucketID,
			PollInterval: cfg.Backend.AuthPollInterval,
		}, cfg.HTTP.Timeout, log), nil
	}
	return nil, fmt.Errorf("unknown backend provider %q", cfg.Backend.Provider)
}
