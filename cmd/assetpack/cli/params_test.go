// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

type sharedParams struct {
	Config string `flag:"config" desc:"config file"`
}

type compositeParams struct {
	sharedParams
	Level   int      `flag:"level" desc:"compression level" default:"9"`
	Names   []string `flag:"name" desc:"names" default:"a,b"`
	Ignored string
}

func TestBindFlags_Composite(t *testing.T) {
	var params compositeParams
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&params, flagSet); err != nil {
		t.Fatalf("BindFlags failed: %v", err)
	}

	for _, name := range []string{"config", "level", "name"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("flag --%s not bound", name)
		}
	}
	if params.Level != 9 {
		t.Errorf("Level default = %d, want 9", params.Level)
	}
	if len(params.Names) != 2 {
		t.Errorf("Names default = %v, want [a b]", params.Names)
	}

	if err := flagSet.Parse([]string{"--config", "x.yaml", "--level", "3"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if params.Config != "x.yaml" || params.Level != 3 {
		t.Errorf("params = %+v", params)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)

	if err := BindFlags(compositeParams{}, flagSet); err == nil {
		t.Error("non-pointer params should fail")
	}

	var badDefault struct {
		Stamp bool `flag:"stamp" default:"maybe"`
	}
	if err := BindFlags(&badDefault, flagSet); err == nil {
		t.Error("unparseable bool default should fail")
	}

	var unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	if err := BindFlags(&unsupported, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("unsupported field type should fail")
	}
}
