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
	"strings"

	"github.com/tacerus/os-update/osinfo"
)

// Strategy selects the update operation.
type Strategy int

const (
	// StrategyAuto resolves to StrategyUp or StrategyDup based on the
	// running distribution.
	StrategyAuto Strategy = iota
	// StrategySecurity installs pending patches only.
	StrategySecurity
	// StrategyUp updates all packages to their latest versions.
	StrategyUp
	// StrategyDup performs a full distribution upgrade.
	StrategyDup
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySecurity:
		return "security"
	case StrategyUp:
		return "up"
	case StrategyDup:
		return "dup"
	}
	return "unknown"
}

// ParseStrategy maps an UPDATE_CMD setting to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "auto":
		return StrategyAuto, nil
	case "security":
		return StrategySecurity, nil
	case "up":
		return StrategyUp, nil
	case "dup":
		return StrategyDup, nil
	}
	return 0, fmt.Errorf("unknown UPDATE_CMD %q", s)
}

// Resolve maps the Auto strategy onto the right update operation for
// the running distribution. Any other strategy is returned unchanged.
func Resolve(s Strategy, dist *osinfo.DistributionInfo) (Strategy, error) {
	if s != StrategyAuto {
		return s, nil
	}
	switch {
	case dist.Name == "SLES", strings.HasPrefix(dist.Name, "openSUSE Leap"):
		return StrategyUp, nil
	case dist.Name == "openSUSE Tumbleweed":
		return StrategyDup, nil
	}
	return 0, fmt.Errorf("unsupported distribution %q, set UPDATE_CMD explicitly", dist.Name)
}
