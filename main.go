// Command NamedCache is built as a C shared library:
//
//	go build -buildmode=c-shared -o namedcache.dll .    (Windows)
//	go build -buildmode=c-shared -o libnamedcache.so .  (Linux)
//
// The generated header declares the exported calls in exports.go and
// exports_legacy.go; struct layouts and status codes are in include/namedcache.h.
// Settings come from NAMEDCACHE_* environment variables (see package config).
package main

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/VanDung-dev/NamedCache/bridge"
	"github.com/VanDung-dev/NamedCache/config"
)

// Version information
const (
	Version = "0.1.0"
	Name    = "NamedCache"
)

// lib is the process-wide adapter. It lives until the host process exits.
var lib = openLibrary()

func openLibrary() *bridge.Adapter {
	cfg, err := config.FromEnv()
	if err != nil {
		glog.Warningf("config: %v; using defaults", err)
		cfg = config.Default()
	}
	if err := cfg.ApplyLogging(); err != nil {
		glog.Warningf("config: %v", err)
	}

	a, err := bridge.Open(cfg)
	if err != nil {
		glog.Errorf("open: %v; using defaults", err)
		a = bridge.NewAdapter(nil, nil)
	}
	return a
}

func main() {
	fmt.Printf("%s v%s\n", Name, Version)
	fmt.Println("Named map/set cache; build with -buildmode=c-shared")
}
