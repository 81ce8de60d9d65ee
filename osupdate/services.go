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

	"github.com/google/logger"

	"github.com/tacerus/os-update/config"
	"github.com/tacerus/os-update/systemd"
)

const (
	// ownService must never be restarted mid run, it would kill this
	// process.
	ownService = "os-update"

	// zypper ps reports PID 1 under this name when the service manager
	// itself holds deleted files.
	managerService = "systemd"
)

// Classification partitions the services reported as holding deleted
// files. The same input always yields the same classification.
type Classification struct {
	Excluded      []string
	SoftTrigger   []string
	HardTrigger   []string
	Restart       []string
	ReexecManager bool
}

// classifyServices sorts the reported services into the restart policy
// buckets. The trigger lists are both evaluated before the exclusion
// list gets a say, and exclusion only ever suppresses the restart, not
// the reboot signal.
func classifyServices(services []string, cfg *config.Config) Classification {
	var c Classification
	for _, s := range services {
		if s == managerService {
			c.ReexecManager = true
			continue
		}
		soft := cfg.ServicesTriggeringSoft.Contains(s)
		hard := cfg.ServicesTriggeringReboot.Contains(s)
		if soft {
			c.SoftTrigger = append(c.SoftTrigger, s)
		}
		if hard {
			c.HardTrigger = append(c.HardTrigger, s)
		}
		excluded := cfg.IgnoreServicesFromRestart.Contains(s)
		if excluded {
			c.Excluded = append(c.Excluded, s)
			continue
		}
		if soft || hard || s == ownService {
			continue
		}
		c.Restart = append(c.Restart, s)
	}
	return c
}

// decision derives the reboot signal carried by the classification.
func (c Classification) decision() Decision {
	switch {
	case len(c.HardTrigger) > 0:
		return Decision{Required: true, Method: MethodReboot}
	case len(c.SoftTrigger) > 0:
		return Decision{Required: true, Method: MethodSoftReboot}
	}
	return Decision{}
}

// servicePhase lists the services holding deleted files, re-executes
// the service manager if needed, restarts what may be restarted, and
// returns the reboot signal the services carry. Restart failures are
// logged and do not abort the run.
func (r *Run) servicePhase(ctx context.Context) Decision {
	services, err := listServiceRestarts()
	if err != nil {
		logger.Errorf("Unable to list services needing restart: %v", err)
		return Decision{}
	}
	c := classifyServices(services, r.cfg)

	if c.ReexecManager {
		logger.Infof("The service manager holds deleted files, re-executing it.")
		if err := r.mgr.Reexecute(); err != nil {
			logger.Errorf("Unable to re-execute the service manager: %v", err)
		}
	}
	for _, s := range c.HardTrigger {
		logger.Infof("%s requires a reboot.", s)
	}
	for _, s := range c.SoftTrigger {
		logger.Infof("%s requires a soft-reboot.", s)
	}
	for _, s := range c.Excluded {
		logger.Infof("Not restarting %s: excluded by configuration.", s)
	}

	if r.cfg.RestartServices {
		for _, s := range c.Restart {
			unit := systemd.UnitName(s)
			if err := r.mgr.RestartUnit(ctx, unit); err != nil {
				logger.Errorf("Unable to restart %s: %v", unit, err)
			}
		}
	}

	return c.decision()
}
