// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-crypto.
//
// go-crypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-crypto/pkg/backend/software"
	"github.com/jeremyhahn/go-crypto/pkg/engine"
	"github.com/jeremyhahn/go-crypto/pkg/factory"
	"github.com/jeremyhahn/go-crypto/pkg/logging"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// Debug enables debug logging
	Debug bool

	// Factories is the ordered provider search path
	Factories []string

	viper *viper.Viper
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Factories: []string{software.ProviderName},
	}
}

// Load reads the config file (if any) and environment overrides.
// Flags set on the command line keep precedence over file values.
func (c *Config) Load() error {
	v := viper.New()
	v.SetDefault("factories", []string{software.ProviderName})
	v.SetDefault("debug", false)
	v.SetEnvPrefix("CRYPT")
	v.AutomaticEnv()

	if c.ConfigFile != "" {
		v.SetConfigFile(c.ConfigFile)
	} else {
		v.SetConfigName(".crypt")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && c.ConfigFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	c.Factories = v.GetStringSlice("factories")
	if !c.Debug {
		c.Debug = v.GetBool("debug")
	}
	c.viper = v
	return nil
}

// CreateEngine builds an engine with the configured provider search order.
func (c *Config) CreateEngine() (*engine.Engine, error) {
	var factories []*factory.Factory
	for _, name := range c.Factories {
		switch name {
		case software.ProviderName:
			factories = append(factories, factory.New(software.New()))
		default:
			return nil, fmt.Errorf("unknown factory %q", name)
		}
	}
	return engine.New(&engine.Config{
		Chain:  factory.NewChain(factories...),
		Logger: logging.NewLogger(c.Debug),
	})
}
