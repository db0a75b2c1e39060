package render

import (
	"github.com/diogo/tutorchat/internal/config"
)

// OptionsFromConfig builds render options from the markdown section of the
// user configuration. GLAMOUR_STYLE is already applied by config.LoadConfig.
// An unusable style is reported and replaced by the default one.
func OptionsFromConfig(md config.MarkdownConfig) (Options, error) {
	opts := DefaultOptions()
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	if md.Style == "" {
		return opts, nil
	}
	if err := ValidateStyle(md.Style); err != nil {
		return opts, err
	}
	return opts.WithStyle(md.Style), nil
}
