// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package workpool

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewWorkers(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{4, 4},
		{1, 1},
		{0, runtime.GOMAXPROCS(0)},
		{-3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		p := New(tt.in)
		if got := p.Workers(); got != tt.want {
			t.Errorf("New(%d).Workers() = %d, want %d", tt.in, got, tt.want)
		}
		p.Close()
	}
}

func TestEachRunsEveryIndexOnce(t *testing.T) {
	p := New(4)
	defer p.Close()

	const n = 200
	var seen [n]atomic.Int32
	if !p.Each(n, func(i int) { seen[i].Add(1) }) {
		t.Fatal("Each on a running pool returned false")
	}
	for i := range seen {
		if c := seen[i].Load(); c != 1 {
			t.Errorf("index %d ran %d times", i, c)
		}
	}
}

func TestEachWaits(t *testing.T) {
	p := New(2)
	defer p.Close()

	var done atomic.Int32
	p.Each(6, func(int) {
		time.Sleep(5 * time.Millisecond)
		done.Add(1)
	})
	if got := done.Load(); got != 6 {
		t.Errorf("Each returned with %d of 6 jobs finished", got)
	}
}

func TestEachEmpty(t *testing.T) {
	p := New(2)
	defer p.Close()
	if !p.Each(0, func(int) { t.Error("job ran") }) {
		t.Error("Each(0) = false")
	}
}

func TestStealing(t *testing.T) {
	p := New(2)
	defer p.Close()

	// Jobs with even indexes land on worker 0; one slow job there must not
	// hold back the rest.
	start := time.Now()
	p.Each(8, func(i int) {
		if i == 0 {
			time.Sleep(50 * time.Millisecond)
		}
	})
	if d := time.Since(start); d > 2*time.Second {
		t.Errorf("Each took %v", d)
	}
}

func TestClose(t *testing.T) {
	p := New(3)
	p.Close()
	p.Close()

	if p.Each(5, func(int) { t.Error("job ran on closed pool") }) {
		t.Error("Each on closed pool = true")
	}
}
