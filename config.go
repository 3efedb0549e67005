package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/peterbourgon/ff"

	"github.com/a-bouts/earthwalker/demo"
	"github.com/a-bouts/earthwalker/walk"
	"github.com/a-bouts/earthwalker/xmpp"
)

type config struct {
	Demo          demo.Name
	A             float64
	Radius        float64
	MaxIterations int
	LogLevel      string
	Every         uint64
	Listen        string
	CPUProfile    bool
	Xmpp          xmpp.Config
}

func names() string {
	s := make([]string, len(demo.Names))
	for i, n := range demo.Names {
		s[i] = string(n)
	}
	return strings.Join(s, ", ")
}

// parseConfig reads flags, then EARTHWALKER_* environment variables, then the
// optional -config file.
func parseConfig(args []string) (config, error) {
	fs := flag.NewFlagSet("earthwalker", flag.ContinueOnError)
	var (
		demoName      = fs.String("demo", string(demo.Default), "demonstration to run: "+names())
		a             = fs.Float64("a", 1, "colatitude in radians walked by the solve demo")
		radius        = fs.Float64("radius", walk.RadiusOfEarthMiles, "radius used to scale lengths, in miles")
		maxIterations = fs.Int("max-iterations", walk.DefaultMaxIterations, "iterations allowed per search, 0 for no limit")
		logLevel      = fs.String("log-level", "info", "log level")
		every         = fs.Uint64("every", 0, "run the demo again every n seconds")
		listen        = fs.String("listen", "", "serve the walks over http on this address")
		cpuprofile    = fs.Bool("cpuprofile", false, "write a cpu profile")
		xmppHost      = fs.String("xmpp-host", "", "")
		xmppJid       = fs.String("xmpp-jid", "", "")
		xmppPassword  = fs.String("xmpp-password", "", "")
		xmppTo        = fs.String("xmpp-to", "", "")
		_             = fs.String("config", "", "config file")
	)
	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("EARTHWALKER"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser))
	if err != nil {
		return config{}, err
	}

	name, err := demo.ParseName(*demoName)
	if err != nil {
		return config{}, err
	}
	if *maxIterations < 0 {
		return config{}, fmt.Errorf("max-iterations must not be negative: %d", *maxIterations)
	}

	return config{
		Demo:          name,
		A:             *a,
		Radius:        *radius,
		MaxIterations: *maxIterations,
		LogLevel:      *logLevel,
		Every:         *every,
		Listen:        *listen,
		CPUProfile:    *cpuprofile,
		Xmpp:          xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo},
	}, nil
}
