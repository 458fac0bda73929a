package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/docfile"
	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

func newInitCmd(c *cli) *cobra.Command {
	var (
		title string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new form document with a single required Name question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.documentExists() && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.cfg.Document)
			}
			var opts []document.Option
			if c.ids != nil {
				opts = append(opts, document.WithIDGenerator(c.ids))
			}
			if cmd.Flags().Changed("title") {
				opts = append(opts, document.WithTitle(title))
			}
			file := docfile.File{FormID: c.cfg.FormID, Document: document.NewDefault(opts...)}
			if err := c.saveFile(file); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Created %s (form %s)\n", c.cfg.Document, file.FormID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "form title")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing document")
	return cmd
}

func newAddCmd(c *cli) *cobra.Command {
	var (
		label    string
		required bool
	)
	types := make([]string, 0, len(document.QuestionTypes()))
	for _, t := range document.QuestionTypes() {
		types = append(types, string(t))
	}

	cmd := &cobra.Command{
		Use:       "add <type>",
		Short:     "Append a question (" + strings.Join(types, ", ") + ")",
		Args:      cobra.ExactArgs(1),
		ValidArgs: types,
		RunE: func(cmd *cobra.Command, args []string) error {
			qt, err := document.ParseQuestionType(args[0])
			if err != nil {
				return err
			}
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			editor := c.editor(file)
			q, err := editor.AddQuestion(qt)
			if err != nil {
				return err
			}

			var patch document.QuestionPatch
			if cmd.Flags().Changed("label") {
				patch.Label = &label
			}
			if cmd.Flags().Changed("required") {
				patch.Required = &required
			}
			if !patch.Empty() {
				editor.UpdateQuestion(q.ID, patch)
			}

			file.Document = editor.Snapshot()
			if err := c.saveFile(file); err != nil {
				return err
			}
			fmt.Fprintln(c.out, q.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "question label")
	cmd.Flags().BoolVar(&required, "required", false, "mark the question as required")
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var (
		label        string
		required     bool
		typeName     string
		options      string
		clearOptions bool
	)
	cmd := &cobra.Command{
		Use:   "update <question-id>",
		Short: "Change the label, required flag, type or options of a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch document.QuestionPatch
			if flags.Changed("label") {
				patch.Label = &label
			}
			if flags.Changed("required") {
				patch.Required = &required
			}
			if flags.Changed("type") {
				qt, err := document.ParseQuestionType(typeName)
				if err != nil {
					return err
				}
				patch.Type = &qt
			}
			switch {
			case clearOptions:
				patch.Options = []string{}
			case flags.Changed("options"):
				patch.Options = session.SplitOptions(options)
			}
			if patch.Empty() {
				return errors.New("nothing to update: pass --label, --required, --type or --options")
			}

			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			editor := c.editor(file)
			if err := editor.UpdateQuestionStrict(args[0], patch); err != nil {
				return err
			}
			file.Document = editor.Snapshot()
			return c.saveFile(file)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "new label")
	cmd.Flags().BoolVar(&required, "required", false, "required flag")
	cmd.Flags().StringVar(&typeName, "type", "", "new question type")
	cmd.Flags().StringVar(&options, "options", "", "comma separated options")
	cmd.Flags().BoolVar(&clearOptions, "clear-options", false, "remove every option")
	cmd.MarkFlagsMutuallyExclusive("options", "clear-options")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Remove a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			editor := c.editor(file)
			if !editor.DeleteQuestion(args[0]) {
				fmt.Fprintf(c.out, "No question %q, nothing to delete\n", args[0])
				return nil
			}
			file.Document = editor.Snapshot()
			return c.saveFile(file)
		},
	}
}

func newMoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "move <question-id> <position>",
		Short: "Move a question to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position %q is not a number", args[1])
			}
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			editor := c.editor(file)
			if !editor.MoveQuestion(args[0], pos-1) {
				return fmt.Errorf("%w: %q", document.ErrQuestionNotFound, args[0])
			}
			file.Document = editor.Snapshot()
			return c.saveFile(file)
		},
	}
}

func newTitleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "title <title>",
		Short: "Rename the form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			editor := c.editor(file)
			editor.SetTitle(strings.Join(args, " "))
			file.Document = editor.Snapshot()
			return c.saveFile(file)
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the form title and its questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, lipgloss.NewStyle().Bold(true).Render(file.Document.Title))
			if len(file.Document.Questions) == 0 {
				fmt.Fprintln(c.out, "No questions yet")
				return nil
			}
			fmt.Fprintln(c.out, questionTable(file.Document.Questions))
			return nil
		},
	}
}

func questionTable(questions []document.Question) string {
	rows := make([][]string, 0, len(questions))
	for idx, q := range questions {
		required := ""
		if q.Required {
			required = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(idx + 1),
			q.ID,
			q.Type.Label(),
			q.Label,
			required,
			strings.Join(q.Options, ", "),
		})
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "Type", "Label", "Required", "Options").
		Rows(rows...).
		StyleFunc(func(int, int) lipgloss.Style { return cell }).
		String()
}

func newEditCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			editor := c.editor(file)
			interactive, err := session.NewInteractive(editor, c.promptDriver())
			if err != nil {
				return err
			}
			if err := interactive.Run(cmd.Context()); err != nil {
				return err
			}
			file.Document = editor.Snapshot()
			if err := c.saveFile(file); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Saved %s\n", c.cfg.Document)
			return nil
		},
	}
}
