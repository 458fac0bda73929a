package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/docfile"
	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/notify"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// cli carries the state shared by every command. Tests build one directly to
// swap the prompt driver, environment, logger and question id source.
type cli struct {
	out    io.Writer
	errOut io.Writer

	driver    tui.PromptDriver
	lookupEnv func(string) (string, bool)
	logger    *zap.Logger
	ids       document.IDGenerator

	configPath   string
	documentPath string
	formID       string
	redisURL     string
	verbose      bool

	cfg config.Config
}

func newCLI(out, errOut io.Writer) *cli {
	return &cli{out: out, errOut: errOut}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "formbuilder",
		Short: "Build, preview and share forms from the terminal",
		Long: `formbuilder edits a form document (YAML or JSON), previews it as HTML or
as a terminal form, exports its submission schema as OpenAPI and manages
sharing and responses.

Start with:
  formbuilder init --title "Customer Feedback"
  formbuilder add dropdown
  formbuilder preview -o form.html`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default formbuilder.yaml when present)")
	flags.StringVarP(&c.documentPath, "document", "d", "", "form document path (default from config)")
	flags.StringVar(&c.formID, "form-id", "", "form id used in links, schemas and responses")
	flags.StringVar(&c.redisURL, "redis-url", "", "redis url for share state and responses")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInitCmd(c),
		newAddCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newMoveCmd(c),
		newTitleCmd(c),
		newListCmd(c),
		newEditCmd(c),
		newPreviewCmd(c),
		newShareCmd(c),
		newResponsesCmd(c),
		newSchemaCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	if c.logger == nil {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if c.verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		c.logger = logger
	}

	cfg, err := config.Load(config.LoadOptions{Path: c.configPath, LookupEnv: c.lookupEnv})
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("document") {
		cfg.Document = c.documentPath
	}
	if flags.Changed("form-id") {
		cfg.FormID = c.formID
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = c.redisURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	c.logger.Debug("configuration loaded",
		zap.String("document", cfg.Document),
		zap.String("form_id", cfg.FormID),
		zap.Bool("redis", cfg.RedisURL != ""),
	)
	return nil
}

// loadFile reads the configured document. The form id comes from the flag,
// then the file, then the config.
func (c *cli) loadFile(ctx context.Context) (docfile.File, error) {
	var opts []docfile.LoaderOption
	if c.ids != nil {
		opts = append(opts, docfile.WithIDGenerator(c.ids))
	}
	file, err := docfile.LoadPath(ctx, c.cfg.Document, opts...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return docfile.File{}, fmt.Errorf("%s not found, run `formbuilder init` first", c.cfg.Document)
		}
		return docfile.File{}, err
	}
	if c.formID != "" || file.FormID == "" {
		file.FormID = c.cfg.FormID
	}
	return file, nil
}

func (c *cli) saveFile(file docfile.File) error {
	if err := docfile.Save(c.cfg.Document, file); err != nil {
		return err
	}
	c.logger.Debug("document saved", zap.String("path", c.cfg.Document))
	return nil
}

func (c *cli) documentExists() bool {
	_, err := os.Stat(c.cfg.Document)
	return err == nil
}

func (c *cli) editor(file docfile.File) *session.Editor {
	return session.NewEditor(file.Document,
		session.WithNotifier(c.notifier()),
		session.WithLogger(c.logger.Named("session")),
	)
}

var (
	noticeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	destructiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// notifier prints notices to stdout, and to the logger in verbose mode.
func (c *cli) notifier() notify.Notifier {
	printer := notify.NotifierFunc(func(n notify.Notice) {
		style := noticeStyle
		if n.Variant == notify.VariantDestructive {
			style = destructiveStyle
		}
		fmt.Fprintf(c.out, "%s %s\n", style.Render(n.Title+":"), n.Description)
	})
	if !c.verbose {
		return printer
	}
	return notify.Multi(printer, notify.Logger(c.logger.Named("notice")))
}

func (c *cli) promptDriver() tui.PromptDriver {
	if c.driver != nil {
		return c.driver
	}
	return tui.NewSurveyDriver(c.out)
}
