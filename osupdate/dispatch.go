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

package osupdate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/logger"

	"github.com/tacerus/os-update/rebootmgr"
	"github.com/tacerus/os-update/systemd"
)

// ExecMode is the REBOOT_CMD setting: which privileged actor executes a
// required reboot.
type ExecMode int

const (
	// ModeAuto delegates to rebootmgrd when it is installed and active,
	// and falls back to the service manager.
	ModeAuto ExecMode = iota
	// ModePreferCoordinator requires rebootmgrd, with no fallback.
	ModePreferCoordinator
	// ModeDirect always goes through the service manager.
	ModeDirect
	// ModeSuppressed logs the required reboot and takes no action.
	ModeSuppressed
)

// ParseExecMode maps a REBOOT_CMD setting to an ExecMode.
func ParseExecMode(s string) (ExecMode, error) {
	switch s {
	case "auto":
		return ModeAuto, nil
	case "rebootmgr":
		return ModePreferCoordinator, nil
	case "reboot":
		return ModeDirect, nil
	case "no":
		return ModeSuppressed, nil
	}
	return 0, fmt.Errorf("unknown REBOOT_CMD %q", s)
}

// MethodOverride is the REBOOT_METHOD setting: auto keeps the detected
// method, hard and soft force one.
type MethodOverride int

const (
	OverrideAuto MethodOverride = iota
	OverrideHard
	OverrideSoft
)

// ParseMethodOverride maps a REBOOT_METHOD setting to a MethodOverride.
func ParseMethodOverride(s string) (MethodOverride, error) {
	switch s {
	case "auto":
		return OverrideAuto, nil
	case "hard", "reboot":
		return OverrideHard, nil
	case "soft", "soft-reboot":
		return OverrideSoft, nil
	}
	return 0, fmt.Errorf("unknown REBOOT_METHOD %q", s)
}

// apply forces the configured method onto a required decision.
func (o MethodOverride) apply(d Decision) Decision {
	if !d.Required {
		return d
	}
	switch o {
	case OverrideHard:
		d.Method = MethodReboot
	case OverrideSoft:
		d.Method = MethodSoftReboot
	}
	return d
}

var (
	coordinatorInstalled = rebootmgr.Installed
	coordinatorActive    = rebootmgr.Active
	coordinatorReboot    = rebootmgr.RequestReboot
)

// dispatchReboot hands a required reboot to the configured actor. A
// decision that does not require a reboot is a no-op.
func (r *Run) dispatchReboot(ctx context.Context, d Decision, mode ExecMode) error {
	if !d.Required {
		logger.Infof("No reboot required.")
		return nil
	}
	switch mode {
	case ModeSuppressed:
		logger.Infof("A %s is required, not executing it as configured.", d.Method)
		return nil
	case ModeDirect:
		return r.rebootDirect(ctx, d.Method)
	case ModePreferCoordinator:
		if !coordinatorInstalled() {
			return errors.New("REBOOT_CMD is rebootmgr but rebootmgrctl is not installed")
		}
		if !coordinatorActive() {
			return errors.New("REBOOT_CMD is rebootmgr but rebootmgrd is not active")
		}
		logger.Infof("Delegating the %s to rebootmgrd.", d.Method)
		return coordinatorReboot(d.Method == MethodSoftReboot)
	case ModeAuto:
		if coordinatorInstalled() && coordinatorActive() {
			logger.Infof("Delegating the %s to rebootmgrd.", d.Method)
			return coordinatorReboot(d.Method == MethodSoftReboot)
		}
		return r.rebootDirect(ctx, d.Method)
	}
	return fmt.Errorf("unhandled reboot execution mode %d", mode)
}

func (r *Run) rebootDirect(ctx context.Context, m Method) error {
	target := systemd.RebootTarget
	if m == MethodSoftReboot {
		target = systemd.SoftRebootTarget
	}
	logger.Infof("Executing the %s via the service manager.", m)
	return r.mgr.StartTarget(ctx, target)
}
