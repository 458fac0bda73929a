package components

import "github.com/goliatone/go-formbuilder/pkg/widgets"

// Canonical component names used by the vanilla renderer. They match the
// widget identifiers resolved by pkg/widgets.
const (
	NameText     = widgets.WidgetText
	NameTextarea = widgets.WidgetTextarea
	NameRadio    = widgets.WidgetRadio
	NameSelect   = widgets.WidgetSelect
	NameNumber   = widgets.WidgetNumber
	NameFile     = widgets.WidgetFile
)
