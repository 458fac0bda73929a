package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
	stylesheets      []string
	inlineStyles     bool
	page             bool
	lang             string
	classes          map[ChromeClass]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the template bundle. Files
// mirror the bundle layout (templates/form.tmpl, templates/components/...);
// anything missing falls back to the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the built-in component set.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithWidgetRegistry replaces the registry used to pick a component per field.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithStylesheet links an external stylesheet ahead of the form.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithFullPage wraps the form in a standalone HTML document.
func WithFullPage(lang string) Option {
	return func(cfg *config) {
		cfg.page = true
		cfg.lang = strings.TrimSpace(lang)
	}
}

// WithChromeClasses appends extra classes to the form chrome.
func WithChromeClasses(classes map[ChromeClass]string) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	widgets    *widgets.Registry
	cfg        config
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}
	if cfg.lang == "" {
		cfg.lang = "en"
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		components: cfg.components,
		widgets:    cfg.widgets,
		cfg:        cfg,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML form for a respondent. Fields render in model
// order; values and errors are looked up by question id.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCtx := buildThemeContext(options.Theme)
	chrome := render.ChromeStrings(options)
	fields := newComponentRenderer(r.templates, r.components, r.widgets, themeCtx.Partials, chrome)

	var body strings.Builder
	for _, field := range form.Fields {
		markup, err := fields.render(field, options.Values[field.Name], options.Errors[field.Name])
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		body.WriteString(markup)
	}

	stylesheets := append([]string{}, r.cfg.stylesheets...)
	if themeCtx.AssetURL != nil {
		if href := strings.TrimSpace(themeCtx.AssetURL(ThemeStylesheetKey)); href != "" {
			stylesheets = append(stylesheets, href)
		}
	}
	stylesheets = append(stylesheets, fields.stylesheets()...)

	inline := ""
	if r.cfg.inlineStyles {
		inline = defaultStylesheet()
	}

	action := strings.TrimSpace(options.Action)
	if action == "" {
		action = "/form/" + form.ID + "/responses"
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form":          form,
		"fields":        body.String(),
		"action":        action,
		"enctype":       enctype(form),
		"hidden":        hiddenPayload(options.Hidden),
		"form_errors":   options.FormErrors,
		"chrome":        chrome,
		"classes":       chromeClasses(r.cfg.classes),
		"stylesheets":   stylesheets,
		"inline_styles": inline,
		"theme":         map[string]string{"name": themeCtx.Name, "variant": themeCtx.Variant},
		"theme_style":   cssVarsStyle(themeCtx.CSSVars),
		"page":          r.cfg.page,
		"lang":          r.cfg.lang,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
