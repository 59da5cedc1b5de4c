package cli

import (
	"fmt"
	"os"

	"github.com/dkalenko/medfact/internal/api"
	"github.com/dkalenko/medfact/internal/cache"
	"github.com/dkalenko/medfact/internal/model"
	"github.com/dkalenko/medfact/internal/notify"
	"github.com/dkalenko/medfact/internal/session"
	"github.com/dkalenko/medfact/internal/verify"
	"github.com/spf13/viper"
)

// buildConfig assembles the effective configuration from defaults, the
// config file and environment (viper), and command flags applied by callers
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("http.base_url"); v != "" {
		cfg.HTTP.BaseURL = v
	}
	if v := viper.GetDuration("http.timeout"); v != 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.memory_ttl"); v != 0 {
		cfg.Cache.MemoryTTL = v
	}
	if v := viper.GetDuration("cache.disk_ttl"); v != 0 {
		cfg.Cache.DiskTTL = v
	}
	if v := viper.GetInt("concurrency.workers"); v != 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetFloat64("rate_limiting.requests_per_second"); v != 0 {
		cfg.RateLimiting.RequestsPerSecond = v
	}
	if v := viper.GetInt("rate_limiting.burst_size"); v != 0 {
		cfg.RateLimiting.BurstSize = v
	}
	cfg.Output.Verbose = viper.GetBool("verbose")
	if v := viper.GetString("output.format"); v != "" {
		cfg.Output.Format = v
	}

	return cfg
}

// newNotifier creates a notification center that mirrors messages to stderr
func newNotifier() *notify.Center {
	center := notify.NewCenter(0)
	center.OnShow(func(msg notify.Message) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", msg.Severity, msg.Text)
	})
	return center
}

// newFlow wires a verification flow from the configuration
func newFlow(cfg *model.Config, client *api.Client, notifier *notify.Center) *verify.Flow {
	opts := []verify.FlowOption{verify.WithNotifier(notifier)}
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		opts = append(opts, verify.WithCache(layered, cfg.Cache.DiskTTL))
	}
	return verify.NewFlow(client, opts...)
}

// newAdminClient wires an API client bound to the persisted admin session.
// A 401 from any authenticated endpoint tears the session down.
func newAdminClient(cfg *model.Config) (*api.Client, *session.Session, error) {
	sess, err := session.Load(session.DefaultPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}

	client := api.NewClient(cfg.HTTP,
		api.WithTokenSource(sess),
		api.WithUnauthorizedHook(func() {
			_ = sess.Clear()
			fmt.Fprintln(os.Stderr, "Session expired, please run 'medfact admin login' again")
		}),
	)
	return client, sess, nil
}

// requireSession fails fast when no valid admin session exists
func requireSession(sess *session.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("not logged in (or session expired): run 'medfact admin login'")
	}
	return nil
}
