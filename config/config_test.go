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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("error writing %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Config{
		PkgManager:                "zypper",
		UpdateCmd:                 "auto",
		RebootCmd:                 "auto",
		RebootMethod:              "auto",
		RestartServices:           true,
		IgnoreServicesFromRestart: Set{},
		ServicesTriggeringReboot:  Set{},
		ServicesTriggeringSoft:    Set{},
	}
	if diff := pretty.Compare(want, cfg); diff != "" {
		t.Errorf("Config diff (-want +got):\n%s", diff)
	}
}

func TestLoadMergesLaterFilesOverEarlier(t *testing.T) {
	td := t.TempDir()
	vendor := writeFile(t, td, "vendor.conf", "UPDATE_CMD=up\nREBOOT_CMD=rebootmgr\nSERVICES_TRIGGERING_REBOOT=\"dbus udev\"\n")
	admin := writeFile(t, td, "admin.conf", "# local override\nUPDATE_CMD=\"dup\"\nRESTART_SERVICES=no\n")

	cfg, err := Load(vendor, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.UpdateCmd != "dup" {
		t.Errorf("UpdateCmd: got %q, want %q", cfg.UpdateCmd, "dup")
	}
	if cfg.RebootCmd != "rebootmgr" {
		t.Errorf("RebootCmd: got %q, want %q", cfg.RebootCmd, "rebootmgr")
	}
	if cfg.RestartServices {
		t.Errorf("RestartServices: got true, want false")
	}
	want := Set{"dbus": true, "udev": true}
	if diff := pretty.Compare(want, cfg.ServicesTriggeringReboot); diff != "" {
		t.Errorf("ServicesTriggeringReboot diff (-want +got):\n%s", diff)
	}
}

func TestLoadSkipsMissingFiles(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.conf")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnabled(t *testing.T) {
	var tests = []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{"Yes", true},
		{"no", false},
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		if got := enabled(tt.in); got != tt.want {
			t.Errorf("enabled(%q) = %t, want %t", tt.in, got, tt.want)
		}
	}
}

func TestSetContains(t *testing.T) {
	s := parseSet("dbus  sshd\tauditd")
	for _, name := range []string{"dbus", "sshd", "auditd"} {
		if !s.Contains(name) {
			t.Errorf("Contains(%q) = false, want true", name)
		}
	}
	if s.Contains("cups") {
		t.Errorf("Contains(%q) = true, want false", "cups")
	}
}
