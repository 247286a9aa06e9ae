package skemaform

import (
	"time"

	"github.com/reoring/skemaform/i18n"
)

// Options configures a rendered form. The zero value is usable: lookups fail
// (and degrade silently), events are dropped, and messages are in English.
type Options struct {
	Lookup     Lookup
	Observer   Observer
	Translator i18n.Translator
	// LookupTimeout bounds each lookup. Zero means no deadline.
	LookupTimeout time.Duration
	// DisplayKey is the record attribute shown for options. Default "name".
	DisplayKey string
	// DefaultPrimaryKey is the identity attribute when none is declared.
	// Default "id".
	DefaultPrimaryKey string
}

func (o Options) withDefaults() Options {
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
	if o.Translator == nil {
		o.Translator = i18n.Current()
	}
	if o.DisplayKey == "" {
		o.DisplayKey = "name"
	}
	if o.DefaultPrimaryKey == "" {
		o.DefaultPrimaryKey = "id"
	}
	return o
}
