package batch

import "io"

type Option func(c *Converter)

// WithContinueOnError keeps converting after a failed file. Run then returns
// every failure combined instead of stopping at the first one.
func WithContinueOnError() Option {
	return func(c *Converter) {
		c.keepGoing = true
	}
}

// WithAtomicWrite writes each output under a temporary name and renames it
// into place, so an interrupted run never leaves a truncated file behind.
func WithAtomicWrite() Option {
	return func(c *Converter) {
		c.atomic = true
	}
}

func WithProgress(w io.Writer) Option {
	return func(c *Converter) {
		c.progress = w
	}
}

// WithManifest records the dimensions of every converted file in a YAML
// manifest with the given name in the destination directory.
func WithManifest(name string) Option {
	return func(c *Converter) {
		c.manifest = name
	}
}
