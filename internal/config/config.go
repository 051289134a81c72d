package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Backend
		Supabase
		Firebase
		Appwrite
		HTTP
		Logging
	}

	Backend struct {
		Provider         string        // supabase, firebase or appwrite
		AuthPollInterval time.Duration // appwrite auth-state polling period
	}

	Supabase struct {
		URL     string
		AnonKey string
	}

	Firebase struct {
		APIKey        string
		ProjectID     string
		StorageBucket string
	}

	Appwrite struct {
		Endpoint   string
		ProjectID  string
		DatabaseID string
		BucketID   string
	}

	HTTP struct {
		Timeout time.Duration
	}

	Logging struct {
		Level string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("backend_provider", "supabase")
	v.SetDefault("auth_poll_interval", "5s")

	v.SetDefault("supabase_url", "")
	v.SetDefault("supabase_anon_key", "")

	v.SetDefault("firebase_api_key", "")
	v.SetDefault("firebase_project_id", "")
	v.SetDefault("firebase_storage_bucket", "")

	v.SetDefault("appwrite_endpoint", "https://cloud.appwrite.io/v1")
	v.SetDefault("appwrite_project_id", "")
	v.SetDefault("appwrite_database_id", "")
	v.SetDefault("appwrite_bucket_id", "")

	v.SetDefault("http_timeout", "30s")
	v.SetDefault("log_level", "info")

	return &Config{
		Backend: Backend{
			Provider:         v.GetString("BACKEND_PROVIDER"),
			AuthPollInterval: v.GetDuration("AUTH_POLL_INTERVAL"),
		},
		Supabase: Supabase{
			URL:     v.GetString("SUPABASE_URL"),
			AnonKey: v.GetString("SUPABASE_ANON_KEY"),
		},
		Firebase: Firebase{
			APIKey:        v.GetString("FIREBASE_API_KEY"),
			ProjectID:     v.GetString("FIREBASE_PROJECT_ID"),
			StorageBucket: v.GetString("FIREBASE_STORAGE_BUCKET"),
		},
		Appwrite: Appwrite{
			Endpoint:   v.GetString("APPWRITE_ENDPOINT"),
			ProjectID:  v.GetString("APPWRITE_PROJECT_ID"),
			DatabaseID: v.GetString("APPWRITE_DATABASE_ID"),
			BucketID:   v.GetString("APPWRITE_BUCKET_ID"),
		},
		HTTP: HTTP{
			Timeout: v.GetDuration("HTTP_TIMEOUT"),
		},
		Logging: Logging{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}
