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

// Package rebootmgr drives rebootmgrd, the reboot coordinator that
// schedules reboots into configured maintenance windows.
package rebootmgr

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/logger"
)

var rebootmgrctl = "/usr/sbin/rebootmgrctl"

type runFunc func(cmd *exec.Cmd) ([]byte, int, error)

var run runFunc = realRun

func realRun(cmd *exec.Cmd) ([]byte, int, error) {
	logger.Infof("Running %q with args %q", cmd.Path, cmd.Args[1:])
	out, err := cmd.CombinedOutput()
	if err != nil {
		if eerr, ok := err.(*exec.ExitError); ok {
			return out, eerr.ExitCode(), nil
		}
		return out, 0, fmt.Errorf("error running %q with args %q: %v", cmd.Path, cmd.Args, err)
	}
	return out, 0, nil
}

// Installed reports whether rebootmgrctl is present on the host.
func Installed() bool {
	if _, err := os.Stat(rebootmgrctl); os.IsNotExist(err) {
		return false
	}
	return true
}

// Active reports whether rebootmgrd is running and accepting reboot
// requests.
func Active() bool {
	_, code, err := run(exec.Command(rebootmgrctl, "is-active", "--quiet"))
	if err != nil {
		logger.Errorf("Unable to query rebootmgrd: %v", err)
		return false
	}
	return code == 0
}

// RequestReboot asks rebootmgrd to schedule a reboot. With soft set,
// a userspace-only soft-reboot is requested instead of a full one.
func RequestReboot(soft bool) error {
	op := "reboot"
	if soft {
		op = "soft-reboot"
	}
	out, code, err := run(exec.Command(rebootmgrctl, op))
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("rebootmgrctl %s exited with code %d: %s", op, code, out)
	}
	return nil
}
