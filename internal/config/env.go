package config

import (
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RGHSTORE"

var envBindings = []struct {
	key   string
	env   string
	apply func(s *Settings, v *viper.Viper, key string)
}{
	{"temp_dir", EnvPrefix + "_TEMP_DIR", func(s *Settings, v *viper.Viper, key string) {
		s.Install.TempDir = v.GetString(key)
	}},
	{"rar_command", EnvPrefix + "_RAR_COMMAND", func(s *Settings, v *viper.Viper, key string) {
		s.Install.RarCommand = v.GetString(key)
	}},
	{"download_timeout", EnvPrefix + "_DOWNLOAD_TIMEOUT", func(s *Settings, v *viper.Viper, key string) {
		s.Install.DownloadTimeout = v.GetDuration(key)
	}},
	{"default_prefix", EnvPrefix + "_DEFAULT_PREFIX", func(s *Settings, v *viper.Viper, key string) {
		s.Discovery.DefaultPrefix = v.GetString(key)
	}},
	{"ftp_user", EnvPrefix + "_FTP_USER", func(s *Settings, v *viper.Viper, key string) {
		s.Discovery.User = v.GetString(key)
	}},
	{"ftp_password", EnvPrefix + "_FTP_PASSWORD", func(s *Settings, v *viper.Viper, key string) {
		s.Discovery.Password = v.GetString(key)
	}},
}

// ApplyEnv overwrites settings with any RGHSTORE_* variables that are set
func ApplyEnv(v *viper.Viper, settings *Settings) error {
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return err
		}

		if v.IsSet(b.key) {
			b.apply(settings, v, b.key)
		}
	}

	return nil
}
