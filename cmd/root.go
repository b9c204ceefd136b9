package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/chris-regnier/jrnlctl/internal/config"
	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile      string
	filePath     string
	passwordFlag string
	dateFlag     string
	jsonOutput   bool
	appConfig    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "jrnlctl",
	Short: "An encrypted journal for the terminal",
	Long: `jrnlctl keeps a password-protected journal in a single encrypted file,
with one entry per day. Run it without a subcommand to open the editor.`,
	Example: `  jrnlctl
  jrnlctl --file ~/journal.jrnl
  jrnlctl -f ~/journal.jrnl -d 01-01-2024`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := selectedDate()
		if err != nil {
			return err
		}
		password := givenPassword(cmd)
		if password != nil && filePath == "" {
			return errors.New("--password requires --file")
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("the editor needs a terminal; use show, list or export instead")
		}

		logger, closeLog, err := openLog()
		if err != nil {
			return err
		}
		defer closeLog()

		app := ui.NewApp(newStore(logger), ui.Options{
			DefaultFile: appConfig.DefaultFile,
			Date:        date,
			Theme:       ui.ResolveTheme(appConfig.Theme),
			Logger:      logger,
		})
		app, err = startApp(app, config.ExpandPath(filePath), password)
		if err != nil {
			return err
		}
		return ui.Run(app)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// selectedDate parses --date, defaulting to today.
func selectedDate() (datekey.DateKey, error) {
	if dateFlag == "" {
		return datekey.Today(), nil
	}
	d, err := datekey.Parse(dateFlag)
	if err != nil {
		return datekey.DateKey{}, fmt.Errorf("--date: %w", err)
	}
	return d, nil
}

// givenPassword returns the --password value, or nil when the flag was not
// set. An explicitly empty password is a valid credential.
func givenPassword(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("password") {
		return nil
	}
	return &passwordFlag
}

// startApp resolves the startup flags before the event loop starts. Without a
// path the App asks for one. With a password any load failure is fatal.
func startApp(app ui.App, path string, password *string) (ui.App, error) {
	var err error
	switch {
	case path == "":
		return app, nil
	case password != nil:
		app, err = app.Unlock(path, *password)
	default:
		app, err = app.OpenFile(path)
	}
	if err != nil {
		return app, fmt.Errorf("opening %s: %w", path, err)
	}
	return app, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "journal file (default: default_file from config)")
	rootCmd.PersistentFlags().StringVarP(&passwordFlag, "password", "p", "", "journal password")
	rootCmd.PersistentFlags().StringVarP(&dateFlag, "date", "d", "", "date to open (DD-MM-YYYY, default today)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
