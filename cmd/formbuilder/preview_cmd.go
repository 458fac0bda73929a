package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

type previewOptions struct {
	manifests []string
	preset    string
	templates string
	fullPage  bool
}

// orchestrator wires the vanilla and TUI renderers, the optional preset
// transformer and the theme manifests into one pipeline.
func (c *cli) orchestrator(opts previewOptions) (*orchestrator.Orchestrator, error) {
	widgetRegistry := widgets.NewRegistry()

	vanillaOpts := []vanilla.Option{vanilla.WithWidgetRegistry(widgetRegistry)}
	if opts.templates != "" {
		vanillaOpts = append(vanillaOpts, vanilla.WithTemplatesDir(opts.templates))
	}
	if opts.fullPage {
		vanillaOpts = append(vanillaOpts, vanilla.WithFullPage("en"), vanilla.WithDefaultStyles())
	}
	html, err := vanilla.New(vanillaOpts...)
	if err != nil {
		return nil, err
	}
	terminal, err := tui.New(tui.WithPromptDriver(c.promptDriver()))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(terminal)

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithWidgetRegistry(widgetRegistry),
		orchestrator.WithDefaultRenderer(c.cfg.Renderer),
		orchestrator.WithLogger(c.logger.Named("orchestrator")),
	}

	if opts.preset != "" {
		data, err := os.ReadFile(opts.preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(preset))
	}

	switch {
	case len(opts.manifests) > 0:
		manifests, err := orchestrator.LoadManifests(opts.manifests...)
		if err != nil {
			return nil, err
		}
		selector, err := orchestrator.NewManifestSelector(c.cfg.Theme, c.cfg.ThemeVariant, manifests...)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithThemeSelector(selector))
	case c.cfg.Theme != "":
		return nil, fmt.Errorf("theme %q needs a --theme-manifest to load it from", c.cfg.Theme)
	}

	return orchestrator.New(options...), nil
}

func newPreviewCmd(c *cli) *cobra.Command {
	var (
		opts     previewOptions
		renderer string
		theme    string
		variant  string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the form as HTML (vanilla) or fill it in the terminal (tui)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("theme") {
				c.cfg.Theme = theme
			}
			if flags.Changed("variant") {
				c.cfg.ThemeVariant = variant
			}

			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			gen, err := c.orchestrator(opts)
			if err != nil {
				return err
			}
			out, err := gen.Generate(cmd.Context(), orchestrator.Request{
				Document:     file.Document,
				FormID:       file.FormID,
				Renderer:     renderer,
				ThemeName:    c.cfg.Theme,
				ThemeVariant: c.cfg.ThemeVariant,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = c.out.Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			c.logger.Debug("preview written", zap.String("path", output), zap.Int("bytes", len(out)))
			fmt.Fprintf(c.out, "Form written to %s\n", output)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&renderer, "renderer", "r", "", "renderer to use: vanilla or tui (default from config)")
	flags.StringVar(&theme, "theme", "", "theme name")
	flags.StringVar(&variant, "variant", "", "theme variant")
	flags.StringSliceVar(&opts.manifests, "theme-manifest", nil, "theme manifest file (repeatable)")
	flags.StringVar(&opts.preset, "preset", "", "YAML or JSON preset with label and hint overrides")
	flags.StringVar(&opts.templates, "templates", "", "directory with template overrides (templates/form.tmpl, templates/components/*.tmpl)")
	flags.BoolVar(&opts.fullPage, "full-page", false, "wrap HTML output in a standalone page with default styles")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
