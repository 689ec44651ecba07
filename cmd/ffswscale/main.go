//go:build !ios && !android && (amd64 || arm64)

// Command ffswscale converts or letterboxes a raw video stream.
//
// Usage:
//
//	ffswscale --mode letterbox --size 1920x1080 --target 1280x720 < in.yuv > out.yuv
//	ffswscale --mode convert --size 640x480 --input-format NV12 --output-format RGBA --input in.nv12 --output out.rgba
//
// Frames are headerless and tightly packed. Logs go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/obinnaokechukwu/ffswscale"
	"github.com/obinnaokechukwu/ffswscale/internal/config"
	"github.com/obinnaokechukwu/ffswscale/internal/rawvideo"
)

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.WithFields(logrus.Fields{
			"kind": ffswscale.Kind(err),
		}).WithError(err).Error("ffswscale failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := pflag.NewFlagSet("ffswscale", pflag.ContinueOnError)
	flags := config.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(cfg)
	job, err := cfg.Validate()
	if err != nil {
		return err
	}

	log.SetLevel(job.LogLevel)
	ffswscale.SetLogger(log.WithField("component", "ffswscale"))

	if err := ffswscale.Init(); err != nil {
		return err
	}
	if err := ffswscale.SetLogLevel(job.FFmpegLogLevel); err != nil {
		return err
	}

	process, frameSize, closer, err := newProcessor(job)
	if err != nil {
		return err
	}
	defer closer.Close()

	in, closeIn, err := openInput(job.Input, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(job.Output, stdout)
	if err != nil {
		return err
	}

	r, err := rawvideo.NewReader(in, frameSize)
	if err != nil {
		closeOut()
		return err
	}
	w := rawvideo.NewWriter(out)

	start := time.Now()
	n, err := rawvideo.Pump(ctx, r, w, process)
	if cerr := closeOut(); err == nil {
		err = cerr
	}

	log.WithFields(logrus.Fields{
		"mode":    job.Mode,
		"frames":  n,
		"bytes":   w.Bytes(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("done")
	return err
}

// newProcessor builds the per-frame function for job and returns the input
// frame size.
func newProcessor(job config.Job) (rawvideo.FrameFunc, int, io.Closer, error) {
	switch job.Mode {
	case config.ModeConvert:
		c, err := ffswscale.NewConverterWithConfig(ffswscale.ConverterConfig{
			SrcWidth:  job.Size.Width,
			SrcHeight: job.Size.Height,
			SrcFormat: job.InputFormat,
			DstWidth:  job.Target.Width,
			DstHeight: job.Target.Height,
			DstFormat: job.OutputFormat,
			Algorithm: job.Algorithm,
		})
		if err != nil {
			return nil, 0, nil, err
		}
		log.WithField("converter", c.String()).Debug("created")
		return c.Process, c.InputSize(), c, nil

	case config.ModeLetterbox:
		s, err := ffswscale.NewLetterboxScaler(job.Size.Width, job.Size.Height, job.Target.Width, job.Target.Height)
		if err != nil {
			return nil, 0, nil, err
		}
		log.WithField("scaler", s.String()).Debug("created")
		return s.Scale, s.InputSize(), s, nil
	}
	return nil, 0, nil, fmt.Errorf("unknown mode %q", job.Mode)
}

func openInput(path string, stdin io.Reader) (io.Reader, func() error, error) {
	if path == "-" {
		return stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
