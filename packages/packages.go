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

// Package packages wraps the zypper and rpm invocations performed
// during an update run.
package packages

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/logger"
)

type runFunc func(cmd *exec.Cmd) ([]byte, int, error)

var run runFunc = realRun

// realRun executes cmd and returns its combined output and exit code.
// An error is only returned if the command could not be run at all.
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

// Exists reports whether the named executable is present on the host.
func Exists(name string) bool {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return false
	}
	return true
}
