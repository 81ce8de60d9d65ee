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

// Package osinfo reports the identity of the running distribution and
// kernel.
package osinfo

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const osRelease = "/etc/os-release"

// DistributionInfo describes the running system.
type DistributionInfo struct {
	Name, ShortName, PrettyName, Version string
	Kernel                               string
	Architecture                         string
}

// Architecture normalizes the given architecture name.
func Architecture(arch string) string {
	switch arch {
	case "amd64", "64-bit":
		arch = "x86_64"
	case "i386", "i686", "32-bit":
		arch = "x86_32"
	}
	return arch
}

func parseOsRelease(path string) (*DistributionInfo, error) {
	di := &DistributionInfo{}
	b, err := os.ReadFile(path)
	if err != nil {
		return di, fmt.Errorf("unable to obtain release info: %v", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		entry := strings.SplitN(scanner.Text(), "=", 2)
		if len(entry) != 2 {
			continue
		}
		switch entry[0] {
		case "NAME":
			di.Name = strings.Trim(entry[1], `"`)
		case "PRETTY_NAME":
			di.PrettyName = strings.Trim(entry[1], `"`)
		case "VERSION_ID":
			di.Version = strings.Trim(entry[1], `"`)
		case "ID":
			di.ShortName = strings.Trim(entry[1], `"`)
		}
	}

	if di.ShortName == "" {
		di.ShortName = "linux"
	}

	return di, nil
}

// GetDistributionInfo reports DistributionInfo.
func GetDistributionInfo() (*DistributionInfo, error) {
	di, err := parseOsRelease(osRelease)
	if err != nil {
		return nil, err
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return nil, fmt.Errorf("uname: %v", err)
	}
	di.Kernel = unix.ByteSliceToString(uts.Release[:])
	di.Architecture = Architecture(unix.ByteSliceToString(uts.Machine[:]))

	return di, nil
}

// SplitKernelRelease splits a kernel release string of the form
// <version>-<flavor> at the last hyphen. A release without a hyphen
// yields an empty flavor.
func SplitKernelRelease(release string) (version, flavor string) {
	i := strings.LastIndex(release, "-")
	if i < 0 {
		return release, ""
	}
	return release[:i], release[i+1:]
}
