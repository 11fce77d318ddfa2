// Package config loads the analysis file of the command-line driver.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/sartorproj/summaryse/outlier"
	"github.com/sartorproj/summaryse/stats"
	"github.com/sartorproj/summaryse/summary"
	"github.com/sartorproj/summaryse/within"
)

// Config describes one analysis: which data to load, how to clean it and
// how to summarize it.
type Config struct {
	Data    Data    `toml:"data"`
	Outlier Outlier `toml:"outlier"`
	Summary Summary `toml:"summary"`
	Log     Log     `toml:"log"`
}

// Data describes the input table.
type Data struct {
	File      string   `toml:"file"`
	Strings   []string `toml:"strings"`   // columns kept categorical
	Delimiter string   `toml:"delimiter"` // single character, default ","
	Output    string   `toml:"output"`    // summary destination, default stdout
}

// Outlier configures the optional outlier filter.
type Outlier struct {
	Enabled        bool     `toml:"enabled"`
	By             []string `toml:"by"`
	Measure        string   `toml:"measure"` // default: first summary measure
	Method         string   `toml:"method"`
	Location       string   `toml:"location"`
	Multiplier     float64  `toml:"multiplier"`
	KeepSingletons bool     `toml:"keep_singletons"`
}

// Summary configures the summary. A within-subject summary is computed
// when Subject is set.
type Summary struct {
	Measures   []string `toml:"measures"`
	Group      []string `toml:"group"`
	Between    []string `toml:"between"`
	Within     []string `toml:"within"`
	Subject    []string `toml:"subject"`
	Confidence float64  `toml:"confidence"`
}

// Log configures the driver's logger.
type Log struct {
	Level  string `toml:"level"`
	SeqURL string `toml:"seq_url"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.Outlier.Multiplier = outlier.DefaultConfig().Multiplier
	c.applyDefaults()
	return c
}

// Load reads and validates an analysis file. Relative data paths are
// resolved against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	dir := filepath.Dir(path)
	if c.Data.File != "" && !filepath.IsAbs(c.Data.File) {
		c.Data.File = filepath.Join(dir, c.Data.File)
	}
	if c.Data.Output != "" && !filepath.IsAbs(c.Data.Output) {
		c.Data.Output = filepath.Join(dir, c.Data.Output)
	}
	return c, nil
}

// Parse decodes and validates an analysis file. An explicit
// outlier.multiplier of 0 is kept.
func Parse(data []byte) (*Config, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	c := &Config{}
	if err := tree.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if !tree.Has("outlier.multiplier") {
		c.Outlier.Multiplier = outlier.DefaultConfig().Multiplier
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Delimiter == "" {
		c.Data.Delimiter = ","
	}
	if c.Outlier.Method == "" {
		c.Outlier.Method = outlier.StdDev.String()
	}
	if c.Outlier.Location == "" {
		c.Outlier.Location = stats.LocMean.String()
	}
	if c.Summary.Confidence == 0 {
		c.Summary.Confidence = summary.DefaultConfidence
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the values that cannot be checked by the analysis
// packages themselves.
func (c *Config) Validate() error {
	if len([]rune(c.Data.Delimiter)) != 1 {
		return errors.Errorf("data.delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	if _, err := outlier.ParseMethod(c.Outlier.Method); err != nil {
		return errors.Wrap(err, "outlier.method")
	}
	if _, err := stats.ParseLocation(c.Outlier.Location); err != nil {
		return errors.Wrap(err, "outlier.location")
	}
	if c.Outlier.Multiplier < 0 {
		return errors.Errorf("outlier.multiplier must not be negative, got %v", c.Outlier.Multiplier)
	}
	if len(c.Summary.Group) > 0 && len(c.Summary.Subject) > 0 {
		return errors.New("summary.group and summary.subject are exclusive; use between/within with subject")
	}
	return nil
}

// CSVDelimiter returns the delimiter rune.
func (d Data) CSVDelimiter() rune {
	return []rune(d.Delimiter)[0]
}

// OutlierConfig converts the outlier section. It assumes Validate passed.
func (c *Config) OutlierConfig() *outlier.Config {
	method, _ := outlier.ParseMethod(c.Outlier.Method)
	location, _ := stats.ParseLocation(c.Outlier.Location)
	return &outlier.Config{
		Location:       location,
		Multiplier:     c.Outlier.Multiplier,
		Method:         method,
		KeepSingletons: c.Outlier.KeepSingletons,
	}
}

// OutlierMeasure returns the measure filtered for outliers.
func (c *Config) OutlierMeasure() string {
	if c.Outlier.Measure != "" {
		return c.Outlier.Measure
	}
	if len(c.Summary.Measures) > 0 {
		return c.Summary.Measures[0]
	}
	return ""
}

// WithinSubject reports whether a within-subject summary is requested.
func (c *Config) WithinSubject() bool {
	return len(c.Summary.Subject) > 0
}

// WithinConfig converts the summary section for a within-subject summary.
func (c *Config) WithinConfig() *within.Config {
	return &within.Config{
		Between:    c.Summary.Between,
		Within:     c.Summary.Within,
		Subject:    c.Summary.Subject,
		Confidence: c.Summary.Confidence,
	}
}
