// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package xiter_test

import (
	"errors"
	"testing"

	"github.com/zshehov/adk-python-sub001/internal/xiter"
)

func TestCollect(t *testing.T) {
	a, b := 1, 2
	got, err := xiter.Collect(xiter.Of(&a, &b))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 2 || *got[0] != 1 || *got[1] != 2 {
		t.Errorf("Collect = %v, want [1 2]", got)
	}

	errBoom := errors.New("boom")
	got, err = xiter.Collect(xiter.Error[int](errBoom))
	if !errors.Is(err, errBoom) {
		t.Errorf("Collect err = %v, want %v", err, errBoom)
	}
	if len(got) != 0 {
		t.Errorf("Collect = %v, want empty", got)
	}
}

func TestOfStops(t *testing.T) {
	a, b, c := 1, 2, 3
	n := 0
	for range xiter.Of(&a, &b, &c) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterations = %d, want 2", n)
	}
}
