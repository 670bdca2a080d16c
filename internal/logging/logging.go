// Package logging wires loggo for the dotlab binaries. Library packages take
// a core.Logger; commands hand them a logger obtained from Get.
package logging

import (
	"fmt"
	"io"

	"github.com/juju/loggo"
)

// Root prefixes every logger name created through Get.
const Root = "dotlab"

// Get returns the named logger under the dotlab root, e.g. Get("dots")
// logs as "dotlab.dots".
func Get(name string) loggo.Logger {
	if name == "" {
		return loggo.GetLogger(Root)
	}
	return loggo.GetLogger(Root + "." + name)
}

// Configure applies a loggo level specification such as "INFO" or
// "dotlab=WARNING;dotlab.reaction=DEBUG". When w is non-nil the default
// writer is replaced so output goes to w.
func Configure(spec string, w io.Writer) error {
	if w != nil {
		if _, err := loggo.ReplaceDefaultWriter(loggo.NewSimpleWriter(w, loggo.DefaultFormatter)); err != nil {
			return fmt.Errorf("replace log writer: %w", err)
		}
	}
	if spec == "" {
		return nil
	}
	if err := loggo.ConfigureLoggers(spec); err != nil {
		return fmt.Errorf("configure loggers %q: %w", spec, err)
	}
	return nil
}
