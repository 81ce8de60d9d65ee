//  Copyright 2024 SUSE LLC. All Rights Reserved.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package config stores and retrieves configuration settings for
// os-update.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/logger"
)

// Default configuration file locations. The vendor file ships with the
// package, the admin file overrides it.
const (
	VendorFile = "/usr/etc/os-update.conf"
	AdminFile  = "/etc/os-update.conf"
)

// Set is a collection of service names with exact-match membership.
type Set map[string]bool

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	return s[name]
}

func parseSet(s string) Set {
	set := Set{}
	for _, f := range strings.Fields(s) {
		set[f] = true
	}
	return set
}

// Config holds the merged settings for one update run. It is built once
// at startup and not modified afterwards.
type Config struct {
	PkgManager   string
	UpdateCmd    string
	RebootCmd    string
	RebootMethod string

	RestartServices           bool
	IgnoreServicesFromRestart Set
	ServicesTriggeringReboot  Set
	ServicesTriggeringSoft    Set
}

func defaults() *Config {
	return &Config{
		PkgManager:                "zypper",
		UpdateCmd:                 "auto",
		RebootCmd:                 "auto",
		RebootMethod:              "auto",
		RestartServices:           true,
		IgnoreServicesFromRestart: Set{},
		ServicesTriggeringReboot:  Set{},
		ServicesTriggeringSoft:    Set{},
	}
}

// enabled interprets sysconfig style booleans.
func enabled(s string) bool {
	switch strings.ToLower(s) {
	case "yes":
		return true
	case "no":
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		// Bad entry returns as not enabled.
		return false
	}
	return b
}

func (c *Config) apply(key, value string) {
	switch key {
	case "PKG_MANAGER":
		c.PkgManager = value
	case "UPDATE_CMD":
		c.UpdateCmd = value
	case "REBOOT_CMD":
		c.RebootCmd = value
	case "REBOOT_METHOD":
		c.RebootMethod = value
	case "RESTART_SERVICES":
		c.RestartServices = enabled(value)
	case "IGNORE_SERVICES_FROM_RESTART":
		c.IgnoreServicesFromRestart = parseSet(value)
	case "SERVICES_TRIGGERING_REBOOT":
		c.ServicesTriggeringReboot = parseSet(value)
	case "SERVICES_TRIGGERING_SOFT_REBOOT":
		c.ServicesTriggeringSoft = parseSet(value)
	default:
		logger.Warningf("Ignoring unknown configuration key %q.", key)
	}
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry := strings.SplitN(line, "=", 2)
		if len(entry) != 2 {
			logger.Warningf("Ignoring malformed configuration line %q in %s.", line, path)
			continue
		}
		c.apply(strings.TrimSpace(entry[0]), strings.Trim(strings.TrimSpace(entry[1]), `"`))
	}
	return scanner.Err()
}

// Load builds a Config from the built-in defaults and the given files
// in order, later files overriding earlier ones. Missing files are
// skipped.
func Load(paths ...string) (*Config, error) {
	cfg := defaults()
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("error loading %s: %v", path, err)
		}
		logger.Infof("Loaded configuration from %s.", path)
	}
	return cfg, nil
}
