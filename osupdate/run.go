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

// Package osupdate implements one update-and-reboot run: apply package
// updates, restart services holding deleted files, and reboot the host
// if the updates require it.
package osupdate

import (
	"context"

	"github.com/google/logger"

	"github.com/tacerus/os-update/config"
	"github.com/tacerus/os-update/osinfo"
	"github.com/tacerus/os-update/packages"
	"github.com/tacerus/os-update/systemd"
)

var (
	zypperRefresh       = packages.Refresh
	zypperPatch         = packages.Patch
	zypperUp            = packages.Up
	zypperDup           = packages.Dup
	listServiceRestarts = packages.ServiceRestarts
)

// Run holds the state of a single update run.
type Run struct {
	cfg  *config.Config
	dist *osinfo.DistributionInfo
	mgr  systemd.Manager

	// failed records a tolerated failure: the run continues but the
	// final status is non-zero.
	failed bool
}

// New builds a Run over the given configuration, distribution identity
// and service manager connection.
func New(cfg *config.Config, dist *osinfo.DistributionInfo, mgr systemd.Manager) *Run {
	return &Run{cfg: cfg, dist: dist, mgr: mgr}
}

// Execute performs one complete update run and returns the process exit
// status: 0 on success, 1 on any fatal or tolerated failure.
func (r *Run) Execute(ctx context.Context) int {
	if r.cfg.PkgManager != "zypper" {
		logger.Errorf("Unsupported PKG_MANAGER %q.", r.cfg.PkgManager)
		return 1
	}
	strategy, err := ParseStrategy(r.cfg.UpdateCmd)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	mode, err := ParseExecMode(r.cfg.RebootCmd)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	override, err := ParseMethodOverride(r.cfg.RebootMethod)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	strategy, err = Resolve(strategy, r.dist)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}

	logger.Infof("Updating %s with strategy %q.", r.dist.PrettyName, strategy)
	code, err := zypperRefresh()
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	if code != 0 {
		logger.Errorf("Repository refresh failed with exit code %d.", code)
		return 1
	}

	code, err = r.applyUpdate(strategy)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	switch res := packages.Classify(code); res {
	case packages.Failure:
		if !packages.Tolerated(code) {
			logger.Errorf("Update failed with exit code %d.", code)
			return 1
		}
		logger.Errorf("Update finished with warnings (exit code %d), continuing.", code)
		r.failed = true
	default:
		logger.Infof("Update finished: %v (exit code %d).", res, code)
	}

	decision := r.servicePhase(ctx).merge(detectReboot(r.dist))
	decision = override.apply(decision)
	if err := r.dispatchReboot(ctx, decision, mode); err != nil {
		logger.Errorf("%v", err)
		return 1
	}

	if r.failed {
		return 1
	}
	return 0
}

func (r *Run) applyUpdate(strategy Strategy) (int, error) {
	switch strategy {
	case StrategySecurity:
		return zypperPatch()
	case StrategyUp:
		return zypperUp()
	case StrategyDup:
		return zypperDup()
	}
	// Resolve never returns StrategyAuto.
	logger.Fatalf("Strategy %v cannot be applied.", strategy)
	return 0, nil
}
