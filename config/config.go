// Package config loads runner settings from an optional YAML file.
//
// Every setting can also be given on the command line; command-line values take precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServiceURL is the public mock service that the suite was written against.
const DefaultServiceURL = "https://jsonplaceholder.typicode.com/posts"

// DefaultStatusQueryTimeout is how long the runner waits for the service to respond before
// giving up without running any tests.
const DefaultStatusQueryTimeout = time.Second * 10

// Config is the contents of a runner configuration file.
type Config struct {
	ServiceURL         string        `yaml:"url"`
	StatusQueryTimeout time.Duration `yaml:"statusQueryTimeout"`
	RequestTimeout     time.Duration `yaml:"requestTimeout"`
	Run                []string      `yaml:"run"`
	Skip               []string      `yaml:"skip"`
	Debug              bool          `yaml:"debug"`
	DebugAll           bool          `yaml:"debugAll"`
	Curl               bool          `yaml:"curl"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		ServiceURL:         DefaultServiceURL,
		StatusQueryTimeout: DefaultStatusQueryTimeout,
	}
}

// Load reads a configuration file. Settings missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data. Unknown keys are an error, so that a misspelled
// setting is not silently ignored.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var fileCfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil // empty file
		}
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if fileCfg.ServiceURL != "" {
		cfg.ServiceURL = fileCfg.ServiceURL
	}
	if fileCfg.StatusQueryTimeout != 0 {
		cfg.StatusQueryTimeout = fileCfg.StatusQueryTimeout
	}
	if fileCfg.RequestTimeout < 0 || fileCfg.StatusQueryTimeout < 0 {
		return Config{}, fmt.Errorf("timeouts must not be negative")
	}
	cfg.RequestTimeout = fileCfg.RequestTimeout
	cfg.Run = fileCfg.Run
	cfg.Skip = fileCfg.Skip
	cfg.Debug = fileCfg.Debug
	cfg.DebugAll = fileCfg.DebugAll
	cfg.Curl = fileCfg.Curl
	return cfg, nil
}
