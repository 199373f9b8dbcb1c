package internal

import (
	"github.com/mingrammer/cfmt"
)

// ConsoleNotifier prints write outcomes to the terminal.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Info(msg string) {
	cfmt.Successln(msg)
}

func (ConsoleNotifier) Warning(msg string) {
	cfmt.Warningln(msg)
}

func (ConsoleNotifier) Error(msg string) {
	cfmt.Errorln(msg)
}
