package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/docfile"
	"github.com/goliatone/go-formbuilder/pkg/notify"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/responses"
)

const maxSubmitAttempts = 3

// NoticeResponseSaved is printed after a submission is stored.
var NoticeResponseSaved = notify.Notice{
	Title:       "Response saved",
	Description: "Your answers have been recorded",
	Variant:     notify.VariantDefault,
}

// responseStore opens the writable store for source. Mock responses are read
// only.
func (c *cli) responseStore(source string) (responses.Store, func(), error) {
	switch source {
	case config.ResponsesRedis:
		if c.cfg.RedisURL == "" {
			return nil, nil, errors.New("redis responses need --redis-url or FORMBUILDER_REDIS_URL")
		}
		store, err := responses.NewRedisStore(c.cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.ResponsesMemory:
		return responses.NewMemoryStore(), func() {}, nil
	case config.ResponsesMock:
		return nil, nil, errors.New("mock responses are read only, use --source memory or redis")
	default:
		return nil, nil, fmt.Errorf("unknown responses source %q", source)
	}
}

func (c *cli) responseFetcher(source string, file docfile.File) (responses.Fetcher, func(), error) {
	if source == config.ResponsesMock {
		ids := make([]string, 0, len(file.Document.Questions))
		for _, q := range file.Document.Questions {
			ids = append(ids, q.ID)
		}
		return responses.MockFetcher{QuestionIDs: ids}, func() {}, nil
	}
	return c.responseStore(source)
}

func newResponsesCmd(c *cli) *cobra.Command {
	var (
		source  string
		asJSON  bool
		payload string
	)
	resolveSource := func(cmd *cobra.Command) string {
		if cmd.Flags().Changed("source") {
			return source
		}
		return c.cfg.Responses
	}

	cmd := &cobra.Command{
		Use:   "responses",
		Short: "Show the collected responses as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			fetcher, closeFn, err := c.responseFetcher(resolveSource(cmd), file)
			if err != nil {
				return err
			}
			defer closeFn()

			records, err := fetcher.List(cmd.Context(), file.FormID)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			fmt.Fprint(c.out, responses.BuildTable(file.Document.Questions, records).Render())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&source, "source", "", "responses source: mock, memory or redis (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	submit := &cobra.Command{
		Use:   "submit",
		Short: "Validate and store a response, from --data or by filling the form in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			file, err := c.loadFile(ctx)
			if err != nil {
				return err
			}
			store, closeFn, err := c.responseStore(resolveSource(cmd))
			if err != nil {
				return err
			}
			defer closeFn()

			if payload != "" {
				data, err := readPayload(payload)
				if err != nil {
					return err
				}
				record, issues, err := responses.Submit(ctx, store, file.Document, file.FormID, data)
				if err != nil {
					printIssues(c, issues)
					return err
				}
				c.responseSaved(record)
				return nil
			}

			gen, err := c.orchestrator(previewOptions{})
			if err != nil {
				return err
			}
			req := orchestrator.Request{Document: file.Document, FormID: file.FormID, Renderer: "tui"}
			form, err := gen.Model(ctx, req)
			if err != nil {
				return err
			}
			for attempt := 1; ; attempt++ {
				raw, err := gen.Generate(ctx, req)
				if err != nil {
					return err
				}
				var data map[string]any
				if err := json.Unmarshal(raw, &data); err != nil {
					return fmt.Errorf("decode answers: %w", err)
				}
				record, issues, err := responses.Submit(ctx, store, file.Document, file.FormID, data)
				if err == nil {
					c.responseSaved(record)
					return nil
				}
				if !errors.Is(err, responses.ErrInvalidSubmission) || attempt >= maxSubmitAttempts {
					printIssues(c, issues)
					return err
				}
				mapping := render.MapErrorPayload(form, issues.Payload())
				req.RenderOptions = render.RenderOptions{
					Values:     data,
					Errors:     mapping.Fields,
					FormErrors: mapping.Form,
				}
			}
		},
	}
	submit.Flags().StringVar(&payload, "data", "", "JSON object with answers keyed by question id, or @file")
	cmd.AddCommand(submit)
	return cmd
}

func (c *cli) responseSaved(record responses.Record) {
	c.logger.Debug("response stored", zap.String("id", record.ID), zap.String("form_id", record.FormID))
	c.notifier().Notify(NoticeResponseSaved)
	fmt.Fprintln(c.out, record.ID)
}

func readPayload(raw string) (map[string]any, error) {
	data := []byte(raw)
	if len(raw) > 1 && raw[0] == '@' {
		content, err := os.ReadFile(raw[1:])
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		data = content
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	return out, nil
}

func printIssues(c *cli, issues openapi.Issues) {
	for _, issue := range issues {
		if issue.Field == "" {
			fmt.Fprintf(c.errOut, "  form: %s\n", issue.Message)
			continue
		}
		fmt.Fprintf(c.errOut, "  %s: %s\n", issue.Field, issue.Message)
	}
}
