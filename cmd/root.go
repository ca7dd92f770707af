package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/chris-regnier/mindary/internal/client"
	"github.com/chris-regnier/mindary/internal/config"
	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/logging"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/storage"
	"github.com/chris-regnier/mindary/internal/storage/markdown"
	"github.com/chris-regnier/mindary/internal/storage/sqlite"
	"github.com/chris-regnier/mindary/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Commands annotated with logsToStderr own no terminal UI, so their logs
// go to stderr instead of the configured file.
const logsToStderr = "logs-to-stderr"

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	serverURL      string
	appConfig      *config.Config
	store          storage.Storage
	logger         = zap.NewNop()
	location       = time.UTC
)

var rootCmd = &cobra.Command{
	Use:   "mindary",
	Short: "A date-scoped diary of memos and records",
	Long: `mindary shows one day at a time: chat-style memos, or categorized records
written through a two-step wizard. Data comes from a local store or from a
mindary server (--server).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}
		if serverURL != "" {
			appConfig.ServerURL = serverURL
		}

		location, err = record.LoadLocation(appConfig.Timezone)
		if err != nil {
			return err
		}

		logger, err = logging.New(logging.Options{
			Level:  appConfig.Log.Level,
			File:   appConfig.Log.File,
			Stderr: cmd.Annotations[logsToStderr] == "true",
		})
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		if store != nil {
			err := store.Close()
			store = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := diarySource()
		if err != nil {
			return err
		}
		today := time.Now().In(location)
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: print today's view instead.
			return showRun(cmd.OutOrStdout(), src, record.FormatDay(today, location), "all")
		}
		return ui.RunDiary(src, today, ui.TUIConfig{
			MaxWidth:       appConfig.MaxWidth,
			Theme:          ui.ResolveTheme(appConfig.Theme),
			Timeout:        appConfig.RequestTimeout,
			PersistRecords: appConfig.PersistRecords,
			Location:       location,
			Logger:         logger,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "read and write through a mindary server at this URL")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// openStore initializes the configured storage backend once.
func openStore() (storage.Storage, error) {
	if store != nil {
		return store, nil
	}
	var err error
	switch appConfig.Storage {
	case "markdown":
		store, err = markdown.New(appConfig.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
	case "sqlite":
		store, err = sqlite.New(appConfig.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", appConfig.Storage)
	}
	return store, nil
}

// diarySource returns the remote server when one is configured, and the
// local store otherwise.
func diarySource() (diary.Source, error) {
	if appConfig.ServerURL != "" {
		c, err := client.New(appConfig.ServerURL,
			client.WithLogger(logger),
			client.WithHTTPClient(&http.Client{Timeout: requestTimeout()}))
		if err != nil {
			return nil, err
		}
		logger.Debug("using remote source", zap.String("server", appConfig.ServerURL))
		return c, nil
	}
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	return diary.LocalSource{Store: s}, nil
}

// resolveDay returns the --date value, or today when it is empty.
func resolveDay(date string) (string, error) {
	if date == "" {
		return record.FormatDay(time.Now(), location), nil
	}
	if err := record.ValidateDay(date); err != nil {
		return "", err
	}
	return date, nil
}

// requestTimeout bounds a single call to a Source.
func requestTimeout() time.Duration {
	if appConfig != nil && appConfig.RequestTimeout > 0 {
		return appConfig.RequestTimeout
	}
	return 10 * time.Second
}
