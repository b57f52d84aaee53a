package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys that may be overridden by flags or RDVGEN_* environment variables.
var overridableKeys = []string{"author", "excel_file", "out_path", "templates", "log_file", "log_level"}

// LoadFile loads and parses a YAML settings file from the given path.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into Settings and applies defaults.
func Parse(data []byte) (*Settings, error) {
	var s Settings

	err := yaml.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&s)

	return &s, nil
}

// applyDefaults fills in default values for optional settings.
func applyDefaults(s *Settings) {
	s.Author = strings.TrimSpace(s.Author)
	if s.Author == "" {
		s.Author = "Unknown Author"
	}

	s.OutPath = strings.TrimSpace(s.OutPath)
	if s.OutPath == "" {
		s.OutPath = "AFlows"
	}

	s.LogFile = strings.TrimSpace(s.LogFile)
	if s.LogFile == "" {
		s.LogFile = "generator.log"
	}

	if s.DataCaptureMode == "" {
		s.DataCaptureMode = "increment"
	}

	if s.DeltaMode == "" {
		s.DeltaMode = "new"
	}

	if s.ProcessedDt == "" {
		s.ProcessedDt = "processed_dt"
	}

	if s.ProcessedDtConversion == "" {
		s.ProcessedDtConversion = "second"
	}

	if len(s.FlowNamePatterns) == 0 {
		s.FlowNamePatterns = []string{".+"}
	}

	if s.Excel.HeaderRow == 0 {
		s.Excel.HeaderRow = 1
	}

	if s.Excel.FlowListSheet == "" {
		s.Excel.FlowListSheet = DefaultFlowListSheet
	}

	if s.Excel.DetailsSheet == "" {
		s.Excel.DetailsSheet = DefaultDetailsSheet
	}

	if len(s.PKTokens.Allowed) == 0 {
		s.PKTokens.Allowed = []string{"pk"}
	}

	if s.ShortName.Length == 0 {
		s.ShortName.Length = 22
	}

	if s.ShortName.RandomLength == 0 {
		s.ShortName.RandomLength = 6
	}
}

// ResolvePaths makes out_path absolute and places a relative log file inside it.
func (s *Settings) ResolvePaths() error {
	if !filepath.IsAbs(s.OutPath) {
		abs, err := filepath.Abs(s.OutPath)
		if err != nil {
			return fmt.Errorf("resolving out_path: %w", err)
		}

		s.OutPath = abs
	}

	if !filepath.IsAbs(s.LogFile) {
		s.LogFile = filepath.Join(s.OutPath, s.LogFile)
	}

	if s.Templates != "" && !filepath.IsAbs(s.Templates) {
		abs, err := filepath.Abs(s.Templates)
		if err != nil {
			return fmt.Errorf("resolving templates: %w", err)
		}

		s.Templates = abs
	}

	return nil
}

// NewViper creates a viper instance that looks for generator.yaml next to
// the executable and in the working directory, and reads RDVGEN_* variables.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}

		v.AddConfigPath(".")
		v.SetConfigName("generator")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("RDVGEN")
	v.AutomaticEnv()

	return v
}

// FromViper reads the config file found by v, applies flag and environment
// overrides, resolves paths and validates the result.
func FromViper(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	s, err := LoadFile(v.ConfigFileUsed())
	if err != nil {
		return nil, err
	}

	for _, key := range overridableKeys {
		val := strings.TrimSpace(v.GetString(key))
		if val == "" {
			continue
		}

		switch key {
		case "author":
			s.Author = val
		case "excel_file":
			s.ExcelFile = val
		case "out_path":
			s.OutPath = val
		case "templates":
			s.Templates = val
		case "log_file":
			s.LogFile = val
		case "log_level":
			s.LogLevel = val
		}
	}

	if err := s.ResolvePaths(); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}
