package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate form models
// after building but before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the generated form
// model before rendering, after the widget decorator.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWidgetRegistry replaces the registry used to stamp widget hints onto
// fields. Pass nil to skip widget decoration.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
		o.widgetsSpecified = true
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used when a theme does not override a
// template key. Defaults to the vanilla component partials.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = copyStringMap(fallbacks)
	}
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from form document to rendered
// output. It applies sensible defaults (vanilla renderer, built-in widgets)
// while remaining open to dependency injection.
type Orchestrator struct {
	builder          model.Builder
	registry         *render.Registry
	defaultRenderer  string
	initialiseErr    error
	defaultsApplied  bool
	decorators       []model.Decorator
	widgets          *widgets.Registry
	widgetsSpecified bool
	transformer      Transformer
	themeSelector    theme.ThemeSelector
	themeFallbacks   map[string]string
	logger           *zap.Logger
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render one form document.
type Request struct {
	// Document is the form being previewed. Required.
	Document *document.Document

	// FormID identifies the form in rendered output (action URLs, hidden
	// fields). Defaults to "preview".
	FormID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant are passed to the theme selector. Empty values
	// let the selector pick its defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request values, errors and hidden fields.
	// A Theme set here wins over the selector.
	RenderOptions render.RenderOptions
}

// DefaultFormID is used when a request does not name its form.
const DefaultFormID = "preview"

// Generate executes the builder → transformer → decorators → theme → renderer
// sequence and returns the rendered bytes (HTML for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Document == nil {
		return nil, errors.New("orchestrator: document is required")
	}

	form, err := o.Model(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	o.logger.Debug("rendering form",
		zap.String("form", form.ID),
		zap.String("renderer", renderer.Name()),
		zap.Int("fields", len(form.Fields)),
	)

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Model runs the build, transform and decorate stages only, returning the form
// model a renderer would receive.
func (o *Orchestrator) Model(ctx context.Context, req Request) (model.FormModel, error) {
	if req.Document == nil {
		return model.FormModel{}, errors.New("orchestrator: document is required")
	}
	formID := strings.TrimSpace(req.FormID)
	if formID == "" {
		formID = DefaultFormID
	}

	form, err := o.builder.Build(formID, req.Document)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Registry exposes the renderer registry so callers can list or add renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Resolve("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if form == nil {
		return nil
	}
	chain := make([]model.Decorator, 0, len(o.decorators)+1)
	if o.widgets != nil {
		chain = append(chain, o.widgets)
	}
	chain = append(chain, o.decorators...)
	for _, decorator := range chain {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.widgets == nil && !o.widgetsSpecified {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithWidgetRegistry(o.widgets))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}

	o.defaultsApplied = true
}
