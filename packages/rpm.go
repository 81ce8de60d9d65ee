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
	"os/exec"
	"strings"

	"github.com/google/logger"
)

var (
	rpmquery = "/usr/bin/rpmquery"

	kernelQueryFormat = `%{VERSION}-%{RELEASE}.%{ARCH}\n`
)

// InstalledKernels returns the version-release.arch string of every
// installed kernel package of the given flavor. A flavor with no
// installed kernel package yields an empty list.
func InstalledKernels(flavor string) ([]string, error) {
	out, code, err := run(exec.Command(rpmquery, "--queryformat", kernelQueryFormat, "kernel-"+flavor))
	if err != nil {
		return nil, err
	}
	if code != 0 {
		// rpmquery exits non-zero when the package is not installed.
		logger.Infof("No kernel-%s packages installed.", flavor)
		return nil, nil
	}

	/*
	   5.14.21-150500.55.28.1.x86_64
	   5.14.21-150500.55.31.1.x86_64
	*/
	var kernels []string
	for _, ln := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		kernels = append(kernels, ln)
	}
	return kernels, nil
}
