package model

// Decorator enriches a form model after the document has been projected,
// e.g. to add placeholders or descriptions.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Placeholders returns a decorator that fills empty placeholders from the
// supplied map keyed by question type. Choice and file fields are skipped.
func Placeholders(byType map[string]string) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		if form == nil {
			return nil
		}
		for idx := range form.Fields {
			field := &form.Fields[idx]
			if field.Placeholder != "" || len(field.Enum) > 0 || field.Format == FormatBinary {
				continue
			}
			if text, ok := byType[field.Metadata[MetaQuestionType]]; ok {
				field.Placeholder = text
			}
		}
		return nil
	})
}
