package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
	// NodeID seeds receipt numbers, 0..1023
	NodeID int64 `yaml:"node_id" json:"node_id"`
}

// WebConfig admin api configuration
type WebConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
}

// LogConfig logger configuration
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// StorageConfig snapshot storage configuration
type StorageConfig struct {
	// Type is bolt or postgres
	Type     string `yaml:"type" json:"type"`
	BoltPath string `yaml:"bolt_path" json:"bolt_path"`
	Dsn      string `yaml:"dsn" json:"-"`
	// Autosave is a cron spec, empty disables it
	Autosave   string `yaml:"autosave" json:"autosave"`
	SaveOnExit bool   `yaml:"save_on_exit" json:"save_on_exit"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Web     WebConfig     `yaml:"web" json:"web"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
}

const (
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
)

// String renders the config as yaml with the database dsn masked
func (c *AppConfig) String() string {
	cp := *c
	if cp.Storage.Dsn != "" {
		cp.Storage.Dsn = "******"
	}
	bs, err := yaml.Marshal(&cp)
	if err != nil {
		return err.Error()
	}
	return string(bs)
}

// GetDataDir is where the bolt file and logs live by default
func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// Validate checks the fields that cannot be defaulted
func (c *AppConfig) Validate() error {
	switch c.Storage.Type {
	case StorageBolt:
	case StoragePostgres:
		if c.Storage.Dsn == "" {
			return errors.New("storage.dsn is required for postgres")
		}
	default:
		return errors.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Web.Enabled && (c.Web.Port <= 0 || c.Web.Port > 65535) {
		return errors.Errorf("invalid web port %d", c.Web.Port)
	}
	if c.System.NodeID < 0 || c.System.NodeID > 1023 {
		return errors.Errorf("node_id %d out of range", c.System.NodeID)
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "coopstore",
		Location: "Local",
		Workdir:  "/var/coopstore",
	},
	Web: WebConfig{
		Enabled: true,
		Host:    "0.0.0.0",
		Port:    1880,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
	},
	Storage: StorageConfig{
		Type:       StorageBolt,
		Autosave:   "@every 5m",
		SaveOnExit: true,
	},
}

// LoadConfig reads cfile when it exists, then applies .env and COOPSTORE_*
// overrides. An empty cfile means defaults plus environment.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", cfile)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		}
	}

	// a missing .env is normal
	_ = godotenv.Load()
	applyEnv(&cfg)

	if cfg.Storage.BoltPath == "" {
		cfg.Storage.BoltPath = filepath.Join(cfg.GetDataDir(), "coopstore.db")
	}
	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.GetLogDir(), "coopstore.log")
	}
	cfg.Storage.Type = strings.ToLower(strings.TrimSpace(cfg.Storage.Type))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("COOPSTORE_APPID", &cfg.System.Appid)
	setEnvValue("COOPSTORE_LOCATION", &cfg.System.Location)
	setEnvValue("COOPSTORE_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("COOPSTORE_DEBUG", &cfg.System.Debug)
	setEnvInt64Value("COOPSTORE_NODE_ID", &cfg.System.NodeID)

	setEnvBoolValue("COOPSTORE_WEB_ENABLED", &cfg.Web.Enabled)
	setEnvValue("COOPSTORE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("COOPSTORE_WEB_PORT", &cfg.Web.Port)

	setEnvValue("COOPSTORE_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("COOPSTORE_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("COOPSTORE_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvValue("COOPSTORE_STORAGE_TYPE", &cfg.Storage.Type)
	setEnvValue("COOPSTORE_STORAGE_BOLT_PATH", &cfg.Storage.BoltPath)
	setEnvValue("COOPSTORE_STORAGE_DSN", &cfg.Storage.Dsn)
	setEnvValue("COOPSTORE_STORAGE_AUTOSAVE", &cfg.Storage.Autosave)
	setEnvBoolValue("COOPSTORE_STORAGE_SAVE_ON_EXIT", &cfg.Storage.SaveOnExit)
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		if b, err := cast.ToBoolE(evalue); err == nil {
			*val = b
		}
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		if n, err := cast.ToIntE(evalue); err == nil {
			*val = n
		}
	}
}

func setEnvInt64Value(name string, val *int64) {
	if evalue := os.Getenv(name); evalue != "" {
		if n, err := cast.ToInt64E(evalue); err == nil {
			*val = n
		}
	}
}
