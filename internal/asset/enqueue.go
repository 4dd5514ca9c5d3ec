// enqueue.go queues the registry script on a page.
//
// Separated from document.go because this is the one place delivery meets
// the hook registry: the URL is filtered and queuing fires an action.

package asset

import (
	"github.com/jpl-au/wphooks/hook"
)

// Options configures EnqueueScripts.
type Options struct {
	BaseURL  string // plugin root URL
	Minified bool   // serve the .min.js build
	Version  string // explicit version token
	File     string // local copy of the script, hashed when Version is empty
	Head     bool   // print in the head instead of the footer
}

// Resolve returns the script EnqueueScripts would queue, with the version
// token worked out but no hooks applied.
func (o Options) Resolve() (Script, error) {
	version := o.Version
	if version == "" && o.File != "" {
		v, err := VersionToken(o.File)
		if err != nil {
			return Script{}, err
		}
		version = v
	}
	return Script{
		Handle:   Handle,
		Src:      ScriptURL(o.BaseURL, o.Minified),
		Version:  version,
		InFooter: !o.Head,
	}, nil
}

// EnqueueScripts queues the registry script on doc, in the footer unless
// opts.Head is set, with no dependencies, and returns its handle.
//
// The URL passes through FilterScriptSrc (a non-string result is ignored)
// and ActionEnqueueScripts fires once the script is queued. Queuing twice
// keeps the first registration but still fires the action. reg may be nil.
func EnqueueScripts(reg *hook.Registry, doc *Document, opts Options) (string, error) {
	s, err := opts.Resolve()
	if err != nil {
		return "", err
	}
	if reg != nil {
		if src, ok := reg.ApplyFilters(FilterScriptSrc, s.Src, s.Handle).(string); ok {
			s.Src = src
		}
	}
	doc.Enqueue(s)
	if reg != nil {
		reg.DoAction(ActionEnqueueScripts, s.Handle)
	}
	return s.Handle, nil
}
