package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	// UploadConfig drives the simulated upload progress of the submission workflow.
	UploadConfig struct {
		ProgressTick time.Duration
		ProgressStep int
		ProgressCap  int
		SettleDelay  time.Duration
	}

	DeadlineConfig struct {
		PollInterval time.Duration
	}

	PortalConfig struct {
		UpcomingWindow time.Duration
	}

	FixturesConfig struct {
		Anchor time.Time
		Rebase bool
	}

	Config struct {
		AppName          string
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		RollbarToken     string
		SendgridAPIKey   string
		DefaultFromEmail mail.Address

		Server   ServerConfig
		Latency  Latency
		Upload   UploadConfig
		Deadline DeadlineConfig
		Portal   PortalConfig
		Fixtures FixturesConfig
	}
)

// FixturesAnchor is the instant the embedded fixtures were authored against.
var FixturesAnchor = time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "ClassTrack")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "ClassTrack <noreply@localhost>")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)

	// artificial latency, per repository operation
	v.SetDefault("latency.getAll", 300*time.Millisecond)
	v.SetDefault("latency.getById", 250*time.Millisecond)
	v.SetDefault("latency.query", 250*time.Millisecond)
	v.SetDefault("latency.create", 400*time.Millisecond)
	v.SetDefault("latency.update", 350*time.Millisecond)
	v.SetDefault("latency.delete", 200*time.Millisecond)
	v.SetDefault("latency.upload", 800*time.Millisecond)

	v.SetDefault("upload.progressTick", 200*time.Millisecond)
	v.SetDefault("upload.progressStep", 10)
	v.SetDefault("upload.progressCap", 90)
	v.SetDefault("upload.settleDelay", 500*time.Millisecond)

	v.SetDefault("deadline.pollInterval", time.Minute)
	v.SetDefault("portal.upcomingWindow", 7*24*time.Hour)

	v.SetDefault("fixtures.anchor", FixturesAnchor.Format(time.RFC3339))
	v.SetDefault("fixtures.rebase", true)
}

// NewConfig loads the configuration from defaults, `config/.env.<env>` (if it exists) and the environment.
// Environment variables are prefixed with the upper-cased env, eg. `DEV_SERVER_ADDRESS`.
func NewConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
		}
	}
	v.AutomaticEnv()

	return newConfigFrom(v, env)
}

func newConfigFrom(v *viper.Viper, env string) (*Config, error) {
	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing defaultFromEmail")
	}
	anchor, err := time.Parse(time.RFC3339, v.GetString("fixtures.anchor"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing fixtures.anchor")
	}

	conf := &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		DefaultFromEmail: *from,
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Latency: Latency{
			GetAll:  v.GetDuration("latency.getAll"),
			GetByID: v.GetDuration("latency.getById"),
			Query:   v.GetDuration("latency.query"),
			Create:  v.GetDuration("latency.create"),
			Update:  v.GetDuration("latency.update"),
			Delete:  v.GetDuration("latency.delete"),
			Upload:  v.GetDuration("latency.upload"),
		},
		Upload: UploadConfig{
			ProgressTick: v.GetDuration("upload.progressTick"),
			ProgressStep: v.GetInt("upload.progressStep"),
			ProgressCap:  v.GetInt("upload.progressCap"),
			SettleDelay:  v.GetDuration("upload.settleDelay"),
		},
		Deadline: DeadlineConfig{PollInterval: v.GetDuration("deadline.pollInterval")},
		Portal:   PortalConfig{UpcomingWindow: v.GetDuration("portal.upcomingWindow")},
		Fixtures: FixturesConfig{Anchor: anchor, Rebase: v.GetBool("fixtures.rebase")},
	}
	return conf, nil
}
