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
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/logger"

	"github.com/tacerus/os-update/osinfo"
	"github.com/tacerus/os-update/packages"
)

// Method is how the host gets rebooted.
type Method int

const (
	// MethodReboot is a full reboot through the firmware.
	MethodReboot Method = iota
	// MethodSoftReboot is a userspace-only reboot, the kernel keeps
	// running.
	MethodSoftReboot
)

func (m Method) String() string {
	if m == MethodSoftReboot {
		return "soft-reboot"
	}
	return "reboot"
}

// Decision is the outcome of reboot-necessity detection.
type Decision struct {
	Required bool
	Method   Method
}

// merge combines two decisions. A reboot is required if either side
// requires one, and a full reboot always wins over a soft one.
func (d Decision) merge(other Decision) Decision {
	out := Decision{Required: d.Required || other.Required}
	if !out.Required {
		return out
	}
	if (d.Required && d.Method == MethodReboot) || (other.Required && other.Method == MethodReboot) {
		out.Method = MethodReboot
	} else {
		out.Method = MethodSoftReboot
	}
	return out
}

var (
	needsRestarting = "/usr/bin/needs-restarting"
	sentinelFile    = "/run/reboot-needed"

	runProbe         = realRunProbe
	installedKernels = packages.InstalledKernels
)

// realRunProbe runs the needs-restarting probe and returns its exit
// code.
func realRunProbe(path string) (int, error) {
	err := exec.Command(path, "-r").Run()
	if err == nil {
		return 0, nil
	}
	if eerr, ok := err.(*exec.ExitError); ok {
		return eerr.ExitCode(), nil
	}
	return 0, fmt.Errorf("error running %q: %v", path, err)
}

// detectReboot decides whether the host must be rebooted to run the
// updated code and by which method. When the needs-restarting probe is
// installed it has the last word, otherwise the installed kernel
// packages are compared against the running kernel.
func detectReboot(dist *osinfo.DistributionInfo) Decision {
	if packages.Exists(needsRestarting) {
		return probeReboot()
	}
	return kernelReboot(dist)
}

func probeReboot() Decision {
	code, err := runProbe(needsRestarting)
	if err != nil {
		logger.Errorf("Unable to run %s: %v", needsRestarting, err)
		return Decision{}
	}
	if code != 1 {
		logger.Infof("%s exited with code %d, no reboot required.", needsRestarting, code)
		return Decision{}
	}
	return Decision{Required: true, Method: sentinelMethod()}
}

// sentinelMethod reads the reboot-needed sentinel to pick the reboot
// method. Anything but the literal soft-reboot token escalates to a
// full reboot.
func sentinelMethod() Method {
	b, err := os.ReadFile(sentinelFile)
	if err != nil {
		return MethodReboot
	}
	content := strings.TrimSpace(string(b))
	switch content {
	case "":
		return MethodReboot
	case "soft-reboot":
		return MethodSoftReboot
	}
	logger.Infof("%s requests %q, executing a full reboot.", sentinelFile, content)
	return MethodReboot
}

// kernelReboot signals a full reboot when a kernel package newer than
// the running kernel is installed. This path never yields a soft
// reboot.
func kernelReboot(dist *osinfo.DistributionInfo) Decision {
	version, flavor := osinfo.SplitKernelRelease(dist.Kernel)
	if flavor == "" {
		logger.Warningf("Unable to determine the kernel flavor from release %q, assuming no reboot is needed.", dist.Kernel)
		return Decision{}
	}
	kernels, err := installedKernels(flavor)
	if err != nil {
		logger.Errorf("Unable to list installed kernels: %v", err)
		return Decision{}
	}
	running := version + ".1." + dist.Architecture
	for _, k := range kernels {
		if k > running {
			logger.Infof("Installed kernel %q is newer than the running %q, reboot required.", k, running)
			return Decision{Required: true, Method: MethodReboot}
		}
	}
	return Decision{}
}
