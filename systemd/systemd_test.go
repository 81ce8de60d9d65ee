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

package systemd

import (
	"context"
	"testing"
)

func TestUnitName(t *testing.T) {
	var tests = []struct {
		in, want string
	}{
		{"sshd", "sshd.service"},
		{"dbus", "dbus.service"},
		{"cron.service", "cron.service"},
		{"soft-reboot.target", "soft-reboot.target"},
	}
	for _, tt := range tests {
		if got := UnitName(tt.in); got != tt.want {
			t.Errorf("UnitName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWaitJob(t *testing.T) {
	var tests = []struct {
		desc    string
		result  string
		wantErr bool
	}{
		{"job done", "done", false},
		{"job failed", "failed", true},
		{"job timed out", "timeout", true},
	}
	for _, tt := range tests {
		ch := make(chan string, 1)
		ch <- tt.result
		err := waitJob(context.Background(), ch, "sshd.service")
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error state: %v", tt.desc, err)
		}
	}
}

func TestWaitJobContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The result channel never delivers, the context bounds the wait.
	if err := waitJob(ctx, make(chan string), "sshd.service"); err == nil {
		t.Errorf("did not get expected error")
	}
}
