package main

import (
	"errors"
	"flag"
	"testing"

	"github.com/lixenwraith/pixel-timer/config"
)

func TestRun_RejectsInvalidConfig(t *testing.T) {
	err := run([]string{"-fps", "0"})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestRun_Help(t *testing.T) {
	err := run([]string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"config", "color", "debug", "cell-size", "gap", "fps", "debounce",
		"audio", "volume", "sample-rate", "alarm", "alarm-repeat", "glow", "glow-max", "start"} {
		if cmd.FlagSet.Lookup(name) == nil {
			t.Errorf("Expected flag -%s", name)
		}
	}
	if cmd.FlagSet.ErrorHandling() != flag.ContinueOnError {
		t.Error("Expected ContinueOnError so errors reach main")
	}
}
