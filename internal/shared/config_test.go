package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "lyrx.db" {
			t.Errorf("expected database path lyrx.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.Backend.BaseURL != "http://localhost:8000" {
			t.Errorf("expected backend base URL http://localhost:8000, got %s", config.Credentials.Backend.BaseURL)
		}

		if config.Credentials.Spotify.RedirectURI != "http://127.0.0.1:3000/callback" {
			t.Errorf("expected spotify redirect URI http://127.0.0.1:3000/callback, got %s", config.Credentials.Spotify.RedirectURI)
		}

		if config.Translation.TargetLang != "" {
			t.Errorf("expected empty default target language, got %s", config.Translation.TargetLang)
		}

		if config.Player.Speed != 1.0 {
			t.Errorf("expected player speed 1.0, got %v", config.Player.Speed)
		}

		if config.Poller.IntervalSeconds != 2 {
			t.Errorf("expected poll interval 2s, got %d", config.Poller.IntervalSeconds)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:3000/callback"

[credentials.backend]
base_url = "http://localhost:9000"
user_id = "listener42"

[translation]
target_lang = "EN"
source_lang = "ES"

[player]
binary = "mpv"
speed = 1.25
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.Backend.UserID != "listener42" {
			t.Errorf("expected user_id listener42, got %s", config.Credentials.Backend.UserID)
		}

		if config.Translation.TargetLang != "EN" {
			t.Errorf("expected target language EN, got %s", config.Translation.TargetLang)
		}

		if config.Player.Binary != "mpv" {
			t.Errorf("expected player binary mpv, got %s", config.Player.Binary)
		}
	})

	t.Run("SaveConfig round-trips", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.Backend.UserID = "listener42"
		config.Translation.TargetLang = "FR"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}

		if loaded.Credentials.Backend.UserID != "listener42" {
			t.Errorf("expected user_id to survive, got %s", loaded.Credentials.Backend.UserID)
		}
		if loaded.Translation.TargetLang != "FR" {
			t.Errorf("expected target language to survive, got %s", loaded.Translation.TargetLang)
		}
	})
}

func TestSpotifyConfig(t *testing.T) {
	t.Run("Update", func(t *testing.T) {
		t.Run("stores token fields", func(t *testing.T) {
			expiry := time.Now().Add(time.Hour)
			config := &SpotifyConfig{}

			err := config.Update(&oauth2.Token{
				AccessToken:  "access",
				RefreshToken: "refresh",
				Expiry:       expiry,
			})
			if err != nil {
				t.Fatalf("failed to update config: %v", err)
			}

			if config.AccessToken != "access" || config.RefreshToken != "refresh" {
				t.Errorf("tokens not stored: %+v", config)
			}
			if config.TokenExpiry != expiry.Format(time.RFC3339) {
				t.Errorf("expected RFC3339 expiry, got %s", config.TokenExpiry)
			}
		})

		t.Run("keeps an existing refresh token", func(t *testing.T) {
			config := &SpotifyConfig{RefreshToken: "old_refresh"}

			if err := config.Update(&oauth2.Token{AccessToken: "access"}); err != nil {
				t.Fatalf("failed to update config: %v", err)
			}
			if config.RefreshToken != "old_refresh" {
				t.Errorf("refresh token should survive, got %s", config.RefreshToken)
			}
		})

		t.Run("rejects nil and empty tokens", func(t *testing.T) {
			config := &SpotifyConfig{}

			if err := config.Update(nil); err == nil {
				t.Error("expected error for nil token")
			}
			if err := config.Update(&oauth2.Token{}); err == nil {
				t.Error("expected error for empty access token")
			}
		})
	})

	t.Run("Map flattens credentials", func(t *testing.T) {
		config := &SpotifyConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURI:  "http://localhost/callback",
			AccessToken:  "access",
			RefreshToken: "refresh",
		}

		m := config.Map()
		if m["client_id"] != "id" || m["client_secret"] != "secret" {
			t.Errorf("credentials missing from map: %v", m)
		}
		if m["access_token"] != "access" || m["refresh_token"] != "refresh" {
			t.Errorf("tokens missing from map: %v", m)
		}
		if m["redirect_uri"] != "http://localhost/callback" {
			t.Errorf("redirect URI missing from map: %v", m)
		}
	})
}
