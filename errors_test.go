// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"duplicate name",
			&DuplicateNameError{Kind: "pass", Name: "opaque"},
			"framegraph: duplicate pass name: opaque",
		},
		{
			"not found",
			&NotFoundError{Kind: "sink", Name: "input"},
			"framegraph: sink not found: input",
		},
		{
			"config",
			&ConfigError{Graph: "forward", Detail: "sink a.input was never linked"},
			"framegraph: graph forward: sink a.input was never linked",
		},
		{
			"not supported",
			&NotSupportedError{Feature: "pass-owned attachment regeneration"},
			"framegraph: not supported: pass-owned attachment regeneration",
		},
		{
			"resource",
			&ResourceError{Pass: "opaque", Err: errors.New("out of memory")},
			"framegraph: target for pass opaque: out of memory",
		},
		{
			"render",
			&RenderError{Pass: "opaque", Err: errors.New("device lost")},
			"framegraph: pass opaque failed: device lost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResourceErrorUnwrap(t *testing.T) {
	cause := errors.New("out of memory")
	err := &ResourceError{Pass: "a", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(ResourceError, cause) = false")
	}
	var re *ResourceError
	if !errors.As(error(err), &re) || re.Pass != "a" {
		t.Error("errors.As failed to recover *ResourceError")
	}
}

func TestRenderErrorUnwrap(t *testing.T) {
	cause := &NotSupportedError{Feature: "compute dispatch"}
	err := &RenderError{Pass: "a", Err: cause}

	var ns *NotSupportedError
	if !errors.As(error(err), &ns) {
		t.Error("errors.As failed to reach the wrapped *NotSupportedError")
	}
	if ns.Feature != "compute dispatch" {
		t.Errorf("Feature = %q, want \"compute dispatch\"", ns.Feature)
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFinalized, ErrAlreadyFinalized, ErrNilPlatform, ErrNilDelegate}
	for i, a := range sentinels {
		if !strings.HasPrefix(a.Error(), "framegraph: ") {
			t.Errorf("sentinel %d message %q lacks the framegraph prefix", i, a.Error())
		}
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d matches sentinel %d", i, j)
			}
		}
	}
}
