package config

import (
	"strings"

	"github.com/maseology/pumptest/model"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings are the runtime settings of the command line tool.
type Settings struct {
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Solver      SolverConfig      `yaml:"solver" mapstructure:"solver"`
	Workspace   WorkspaceConfig   `yaml:"workspace" mapstructure:"workspace"`
	Calibration CalibrationConfig `yaml:"calibration" mapstructure:"calibration"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SolverConfig selects the flow solver: "mf6" or the analytic "theis".
type SolverConfig struct {
	Name   string `yaml:"name" mapstructure:"name"`
	MF6Exe string `yaml:"mf6_exe" mapstructure:"mf6_exe"`
}

// WorkspaceConfig configures solver working directories.
type WorkspaceConfig struct {
	Root string `yaml:"root" mapstructure:"root"`
	Keep bool   `yaml:"keep" mapstructure:"keep"`
}

// CalibrationConfig configures the parameter search.
type CalibrationConfig struct {
	Method          string  `yaml:"method" mapstructure:"method"`
	MaxIterations   int     `yaml:"max_iterations" mapstructure:"max_iterations"`
	BoundFactor     float64 `yaml:"bound_factor" mapstructure:"bound_factor"`
	Population      int     `yaml:"population" mapstructure:"population"`
	Workers         int     `yaml:"workers" mapstructure:"workers"`
	Seed            int64   `yaml:"seed" mapstructure:"seed"`
	MaxRMSE         float64 `yaml:"max_rmse" mapstructure:"max_rmse"`
	MaxResidual     float64 `yaml:"max_residual" mapstructure:"max_residual"`
	RadiusThreshold float64 `yaml:"radius_threshold" mapstructure:"radius_threshold"`
}

// Load reads settings from pumptest.yaml (optional) and the environment.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetConfigName("pumptest")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PUMPTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := model.DefaultOptions()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("solver.name", "mf6")
	v.SetDefault("solver.mf6_exe", "mf6")
	v.SetDefault("workspace.root", "")
	v.SetDefault("workspace.keep", false)
	v.SetDefault("calibration.method", d.Method)
	v.SetDefault("calibration.max_iterations", d.MaxIterations)
	v.SetDefault("calibration.bound_factor", d.BoundFactor)
	v.SetDefault("calibration.population", 0)
	v.SetDefault("calibration.workers", 0)
	v.SetDefault("calibration.seed", 0)
	v.SetDefault("calibration.max_rmse", d.MaxRMSE)
	v.SetDefault("calibration.max_residual", d.MaxResidual)
	v.SetDefault("calibration.radius_threshold", d.RadiusThreshold)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &s, nil
}

// Options returns the model options the settings describe.
func (s *Settings) Options() model.Options {
	c := s.Calibration
	return model.Options{
		Method:          c.Method,
		MaxIterations:   c.MaxIterations,
		BoundFactor:     c.BoundFactor,
		Population:      c.Population,
		Workers:         c.Workers,
		Seed:            c.Seed,
		MaxRMSE:         c.MaxRMSE,
		MaxResidual:     c.MaxResidual,
		RadiusThreshold: c.RadiusThreshold,
		WorkspaceRoot:   s.Workspace.Root,
		KeepWorkspace:   s.Workspace.Keep,
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
