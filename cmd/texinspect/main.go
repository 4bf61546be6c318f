// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command texinspect loads the textures listed in a TOML manifest and
// reports their geometry, cache sharing and release accounting.
//
// Usage:
//
//	texinspect [-device soft] [-log debug] [-j 4] manifest.toml
//
// See testdata/example.toml for the manifest format.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gogpu/texres/internal/boot"
)

func main() {
	var (
		device = flag.String("device", "", "device kind: auto, soft or vulkan (overrides the manifest)")
		level  = flag.String("log", "", "log level (overrides the manifest)")
		jobs   = flag.Int("j", 0, "concurrent loaders (overrides the manifest)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] manifest.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *device, *level, *jobs); err != nil {
		log.Fatal(err)
	}
}

func run(manifest, device, level string, jobs int) error {
	m, err := LoadManifest(manifest)
	if err != nil {
		return err
	}
	if device != "" {
		m.Device = device
	}
	if level != "" {
		m.Log = level
	}
	if jobs > 0 {
		m.Workers = jobs
	}
	if err := boot.SetupLogging(m.Log); err != nil {
		return err
	}

	src, closeSrc, err := boot.OpenSource(m.Data...)
	if err != nil {
		return err
	}
	defer closeSrc()
	dev, closeDev, err := boot.OpenDevice(m.Device)
	if err != nil {
		return err
	}
	defer closeDev()

	rep, err := inspect(os.Stdout, m, dev, src)
	if err != nil {
		return err
	}
	if rep.Failed > 0 {
		log.Printf("%d of %d textures failed to load", rep.Failed, rep.Failed+rep.Loaded)
	}
	return nil
}
