package internal

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/korneil/launchif/internal/launch"
	"github.com/korneil/launchif/internal/watcher"
	"github.com/mingrammer/cfmt"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type submission struct {
	input  launch.Input
	source string

	// set for messages that could not be turned into an input
	warning string
}

// Context runs submissions from the stdin stream and the request watcher one
// at a time on the goroutine calling Wait.
type Context struct {
	Config Config

	Notifier launch.Notifier
	Log      zerolog.Logger
	Writer   *launch.Writer

	context context.Context
	cancel  context.CancelFunc

	signals     chan os.Signal
	submissions chan submission

	watching bool
	watcher  watcher.Context
}

func Init(x *Context) (err error) {
	x.context, x.cancel = context.WithCancel(context.Background())

	x.signals = make(chan os.Signal, 2)
	x.submissions = make(chan submission)

	if x.Notifier == nil {
		x.Notifier = ConsoleNotifier{}
	}

	x.Writer = launch.NewWriter(x.Config.Workspace, x.Notifier, x.Log)
	if x.Config.ConfigDir != "" {
		x.Writer.Dir = x.Config.ConfigDir
	}
	if x.Config.File != "" {
		x.Writer.File = x.Config.File
	}
	x.Writer.Template = x.Config.Template

	signal.Notify(x.signals, os.Interrupt, syscall.SIGTERM)

	return
}

// Submit writes one launch configuration synchronously.
func (x *Context) Submit(in launch.Input) error {
	_, err := x.Writer.Write(in)
	return err
}

// RunStream feeds saveConfig messages read line by line from r into Wait.
// Wait returns once r is exhausted and the last message has been handled.
// The reader goroutine is left behind if Wait ends on a signal first.
func (x *Context) RunStream(r io.Reader) {
	go func() {
		defer x.cancel()

		lr := NewLineReader(r)
		for x.context.Err() == nil {
			line, err := lr.ReadLine(x.context)
			if len(line) > 0 {
				x.handleMessage(line)
			}
			if err != nil {
				if err != io.EOF {
					x.Log.Err(err).Msg("reading messages")
				}
				return
			}
		}
	}()
}

func (x *Context) handleMessage(line []byte) {
	s := submission{source: "stdin"}
	m, err := ParseMessage(line)
	switch {
	case err != nil:
		s.warning = err.Error()
	case m.Command != CommandSaveConfig:
		s.warning = "Ignoring unknown command " + m.Command
	default:
		s.input = m.Input
	}

	select {
	case x.submissions <- s:
	case <-x.context.Done():
	}
}

// RunWatch submits every settled change of a request file.
func (x *Context) RunWatch() (err error) {
	x.watcher.Config = x.Config.Watch
	x.watcher.Log = x.Log
	if err = x.watcher.Init(); err != nil {
		return
	}
	if err = x.watcher.Start(); err != nil {
		x.watcher.Close()
		return
	}
	x.watching = true

	cfmt.Infof("Watching %s for request files\n", x.watcher.Config.Root)
	return nil
}

func (x *Context) Close() {
	x.cancel()
	if x.watching {
		x.watcher.Close()
	}
	signal.Stop(x.signals)
}

// Wait handles submissions until the input is exhausted or the user
// interrupts. It returns the number of failed submissions.
func (x *Context) Wait() (failed int) {
signalLoop:
	for {
		select {
		case s := <-x.submissions:
			if s.warning != "" {
				x.Notifier.Warning(s.warning)
				continue
			}
			x.Log.Debug().Str("source", s.source).Str("device", s.input.DeviceName).Msg("submission")
			if err := x.Submit(s.input); err != nil {
				failed++
			}

		case path := <-x.watcher.Changed:
			in, err := ReadRequest(path)
			if err != nil {
				x.Notifier.Warning(err.Error())
				continue
			}
			x.Log.Debug().Str("source", path).Str("device", in.DeviceName).Msg("submission")
			if err = x.Submit(in); err != nil {
				failed++
			}

		case <-x.signals:
			break signalLoop

		case <-x.context.Done():
			break signalLoop
		}
	}

	cfmt.Infoln("Shutting down")
	x.Close()

	return failed
}

func (x *Context) GetConfigYAML() (o []byte) {
	o, _ = yaml.Marshal(&x.Config)
	return
}
