package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName      string
	Env          string // DEV (local; default), TEST, QA, PROD
	Build        string
	Debug        bool
	TestMode     bool
	DataFile     string
	RollbarToken string

	Server struct {
		Address         string
		Host            string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}
}

// NewConfig reads the configuration from the environment.
// `config/.env.<env>` (relative to the working directory) is loaded first if it exists.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "MiniCanvas")
	v.SetDefault("build", "develop")
	v.SetDefault("dataFile", "lms_data.txt")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("disableReqLogs", false)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		DataFile:     v.GetString("dataFile"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.Address = v.GetString("serverAddress")
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Server.DisableReqLogs = v.GetBool("disableReqLogs")
	return conf
}
