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

package packages

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/logger"
)

var (
	zypper = "/usr/bin/zypper"

	zypperRefreshArgs = []string{"refresh"}
	zypperPatchArgs   = []string{"--non-interactive", "patch", "--no-refresh"}
	zypperUpArgs      = []string{"--non-interactive", "up", "--no-refresh"}
	zypperDupArgs     = []string{"--non-interactive", "dup", "--no-refresh"}
	zypperPsArgs      = []string{"ps", "-sss"}
)

// Exit codes documented in zypper(8).
const (
	zypperExitOK               = 0
	zypperExitInfRebootNeeded  = 102
	zypperExitInfRestartNeeded = 103
	zypperExitInfReposSkipped  = 106
)

// Result is the interpretation of a zypper exit code.
type Result int

const (
	// Success means the operation completed cleanly.
	Success Result = iota
	// SuccessNeedsReboot means the operation completed but zypper
	// advises a reboot or restart to run the new code.
	SuccessNeedsReboot
	// Failure means the operation did not complete.
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case SuccessNeedsReboot:
		return "success, reboot advised"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Classify maps a zypper exit code to a Result. Both Success and
// SuccessNeedsReboot are non-failing.
func Classify(code int) Result {
	switch code {
	case zypperExitOK:
		return Success
	case zypperExitInfRebootNeeded, zypperExitInfRestartNeeded:
		return SuccessNeedsReboot
	}
	return Failure
}

// Tolerated reports whether a failing exit code still allows the run to
// continue. Exit code 106 means one or more repositories were skipped
// during the operation, which is worth an error but not an abort.
func Tolerated(code int) bool {
	return code == zypperExitInfReposSkipped
}

// Refresh refreshes all repository metadata.
func Refresh() (int, error) {
	out, code, err := run(exec.Command(zypper, zypperRefreshArgs...))
	if err != nil {
		return 0, err
	}
	logger.Infof("Zypper refresh output:\n%s", indent(out))
	return code, nil
}

// Patch installs all pending patches, security updates only.
func Patch() (int, error) {
	return apply(zypperPatchArgs)
}

// Up updates all installed packages to their latest versions.
func Up() (int, error) {
	return apply(zypperUpArgs)
}

// Dup performs a full distribution upgrade.
func Dup() (int, error) {
	return apply(zypperDupArgs)
}

func apply(args []string) (int, error) {
	out, code, err := run(exec.Command(zypper, args...))
	if err != nil {
		return 0, err
	}
	logger.Infof("Zypper %s output:\n%s", args[1], indent(out))
	return code, nil
}

// ServiceRestarts lists the services holding handles to files deleted
// by the update, one unit per line of `zypper ps -sss` output. A
// non-zero exit produces an error, never service names: the output of
// a failed invocation is diagnostics, not units.
func ServiceRestarts() ([]string, error) {
	out, code, err := run(exec.Command(zypper, zypperPsArgs...))
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, fmt.Errorf("zypper ps exited with code %d, output:\n%s", code, indent(out))
	}

	var services []string
	for _, ln := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		services = append(services, ln)
	}
	return services, nil
}

func indent(out []byte) string {
	var msg string
	for _, s := range strings.Split(string(out), "\n") {
		msg += "  " + s + "\n"
	}
	return msg
}
