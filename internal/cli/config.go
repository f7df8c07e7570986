package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "STOCKROOM"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyUser      = "user"
	cfgKeyRole      = "role"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogDir    = "log_dir"
	cfgKeyListLimit = "list_limit"

	defaultBackend   = types.BackendJSON
	defaultRole      = string(types.RoleAdmin)
	defaultLogLevel  = "info"
	defaultListLimit = 50
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Stockroom configuration

# Storage backend: json or sqlite
backend: json

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Acting user and role (admin or user); overridable by --user and --role
# user:
role: admin

# Logging: empty log_dir disables the log file
log_level: info
# log_dir:

# Default row cap for list and search; 0 means no cap
list_limit: 50
`

// loadConfig reads config.yaml from configDir, creating the directory and
// a default file on first run. STOCKROOM_<KEY> environment variables
// override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyRole, defaultRole)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyListLimit, defaultListLimit)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// errInvalidConfig is returned by validateConfig.
var errInvalidConfig = errors.New("invalid config")

// validateConfig checks values that would otherwise misbehave at use.
func validateConfig(v *viper.Viper) error {
	if n := v.GetInt(cfgKeyListLimit); n < 0 {
		return fmt.Errorf("%w: %s must be >= 0 (0 means no cap), got %d", errInvalidConfig, cfgKeyListLimit, n)
	}
	return nil
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
