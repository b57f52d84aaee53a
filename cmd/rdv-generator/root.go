package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"rdv-generator/internal/config"
	"rdv-generator/internal/logging"
	"rdv-generator/internal/sheet"
)

// errRunFailed is returned after the summary has reported the errors.
var errRunFailed = errors.New("generation finished with errors")

// app is the state shared by the subcommands.
type app struct {
	cfgFile string
	verbose bool
	dump    bool

	fs       afero.Fs
	settings *config.Settings
	log      *zap.SugaredLogger
	cleanup  func()
}

// flag name -> settings key
var flagKeys = map[string]string{
	"excel":     "excel_file",
	"out":       "out_path",
	"author":    "author",
	"templates": "templates",
	"log-file":  "log_file",
	"log-level": "log_level",
}

func newRootCmd() *cobra.Command {
	a := &app{fs: afero.NewOsFs(), cleanup: func() {}}

	root := &cobra.Command{
		Use:           "rdv-generator",
		Short:         "Generate RDV load flows from a mapping workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is generator.yaml next to the binary or in the working directory)")
	flags.String("excel", "", "mapping workbook (.xlsx)")
	flags.String("out", "", "output directory")
	flags.String("author", "", "author written into generated files")
	flags.String("templates", "", "directory with templates overriding the built-in ones")
	flags.String("log-file", "", "log file, relative paths are placed in the output directory")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "also write the log to stderr")

	root.AddCommand(newGenerateCmd(a), newValidateCmd(a), newVersionCmd())

	return root
}

// setup loads the settings and opens the log. Subcommands that need them
// call it from PreRunE.
func (a *app) setup(flags *pflag.FlagSet) error {
	v := config.NewViper(a.cfgFile)

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	settings, err := config.FromViper(v)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.New(logging.Options{
		File:    settings.LogFile,
		Level:   settings.LogLevel,
		Console: a.verbose,
	})
	if err != nil {
		return err
	}

	color.NoColor = color.NoColor || !settings.Colorlog

	a.settings = settings
	a.log = logger.Sugar()
	a.cleanup = func() {
		_ = logger.Sync()
		cleanup()
	}

	return nil
}

// workbook reads the configured mapping workbook.
func (a *app) workbook() (*sheet.ExcelWorkbook, error) {
	if a.settings.ExcelFile == "" {
		return nil, errors.New("no workbook given: set excel_file in the config or pass --excel")
	}

	data, err := afero.ReadFile(a.fs, a.settings.ExcelFile)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}

	wb, err := sheet.OpenWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", a.settings.ExcelFile, err)
	}

	return wb, nil
}
