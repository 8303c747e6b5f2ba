// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/dataset"
	"github.com/katalvlaran/symfind/internal/logging"
)

// Configuration keys; each is also a flag name.
const (
	keyConfig  = "config"
	keyVerbose = "verbose"
	keyFormat  = "format"
	keySymprec = "symprec"
	keyAngle   = "angle-tolerance"
	keySetting = "setting"
	keyRetries = "retries"
	keyMethod  = "method"
)

const (
	envPrefix = "SYMFIND"

	// defaultConfig is looked up in the XDG config directories when no
	// config file is named.
	defaultConfig = "symfind/config.yaml"

	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

var errUsage = errors.New("symfind: invalid configuration")

// app carries the configuration shared by the commands.
type app struct {
	v   *viper.Viper
	log logr.Logger
}

func newApp() *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &app{v: v, log: logr.Discard()}
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String(keyConfig, "", "YAML config file; defaults to symfind/config.yaml in the XDG config directories")
	fs.CountP(keyVerbose, "v", "log stage results (-v) or every candidate (-vv) to stderr")
	fs.StringP(keyFormat, "o", formatText, "output format: text, yaml or json")
}

func addDatasetFlags(fs *pflag.FlagSet) {
	fs.Float64(keySymprec, dataset.DefaultSymprec, "distance tolerance in the length unit of the cell")
	fs.Float64(keyAngle, 0, "angle tolerance in degrees; 0 derives it from symprec")
	fs.String(keySetting, "spglib", `Hall setting precedence: "spglib", "standard" or "hall:<n>"`)
	fs.Int(keyRetries, 0, "symmetry searches retried with a rescaled symprec after a tolerance error")
}

// load binds fs, reads the named or default config file and builds the
// logger.
func (a *app) load(fs *pflag.FlagSet) error {
	if err := a.v.BindPFlags(fs); err != nil {
		return err
	}
	path := a.v.GetString(keyConfig)
	if path == "" {
		if found, err := xdg.SearchConfigFile(defaultConfig); err == nil {
			path = found
		}
	}
	if path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	switch f := a.v.GetString(keyFormat); f {
	case formatText, formatYAML, formatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, f)
	}

	verbosity := a.v.GetInt(keyVerbose)
	if verbosity == 0 {
		return nil
	}
	log, err := logging.NewLogger(verbosity, true)
	if err != nil {
		return err
	}
	a.log = log.WithName("symfind")
	return nil
}

// datasetOptions turns the configuration into options of dataset.New.
func (a *app) datasetOptions() ([]dataset.Option, error) {
	setting, err := catalog.ParseSetting(a.v.GetString(keySetting))
	if err != nil {
		return nil, err
	}
	opts := []dataset.Option{
		dataset.WithSymprec(a.v.GetFloat64(keySymprec)),
		dataset.WithSetting(setting),
		dataset.WithLogger(a.log),
	}
	switch deg := a.v.GetFloat64(keyAngle); {
	case deg < 0:
		return nil, fmt.Errorf("%w: negative angle tolerance %g", errUsage, deg)
	case deg > 0:
		opts = append(opts, dataset.WithAngleTolerance(crystal.Degree(deg)))
	}
	switch n := a.v.GetInt(keyRetries); {
	case n < 0:
		return nil, fmt.Errorf("%w: negative retry count %d", errUsage, n)
	case n > 0:
		opts = append(opts, dataset.WithRetries(n))
	}
	return opts, nil
}
