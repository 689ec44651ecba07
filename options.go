//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import "github.com/sirupsen/logrus"

// Option configures a Converter or LetterboxScaler.
type Option func(*options)

type options struct {
	engine Engine
	logger *logrus.Entry
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.engine == nil {
		o.engine = Swscale()
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// WithEngine replaces the libswscale backend.
func WithEngine(e Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithLogger sets the logger that receives engine diagnostics.
func WithLogger(l *logrus.Entry) Option {
	return func(o *options) {
		o.logger = l
	}
}
