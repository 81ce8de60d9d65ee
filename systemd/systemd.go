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

// Package systemd talks to the service manager over D-Bus.
package systemd

import (
	"context"
	"strings"

	sd "github.com/coreos/go-systemd/v22/dbus"
	dbus "github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

// Targets started to carry out a reboot, matching what systemctl
// requests for `systemctl reboot` and `systemctl soft-reboot`.
const (
	RebootTarget     = "reboot.target"
	SoftRebootTarget = "soft-reboot.target"
)

// Manager is the subset of the service manager used during an update
// run.
type Manager interface {
	// RestartUnit restarts the named unit and waits for the queued job
	// to finish.
	RestartUnit(ctx context.Context, unit string) error
	// StartTarget irreversibly starts the named target. Used for the
	// reboot targets only.
	StartTarget(ctx context.Context, target string) error
	// Reexecute asks the service manager to serialize its state and
	// re-execute itself.
	Reexecute() error
	// Close releases the underlying bus connection.
	Close()
}

type conn struct {
	sysd *sd.Conn
}

// Connect opens a connection to the system service manager.
func Connect(ctx context.Context) (Manager, error) {
	c, err := sd.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to the service manager")
	}
	return &conn{sysd: c}, nil
}

func (c *conn) RestartUnit(ctx context.Context, unit string) error {
	ch := make(chan string, 1)
	if _, err := c.sysd.RestartUnitContext(ctx, unit, "replace", ch); err != nil {
		return errors.Wrapf(err, "unable to restart %s", unit)
	}
	return waitJob(ctx, ch, unit)
}

// waitJob waits for the queued job result without outliving the
// context.
func waitJob(ctx context.Context, ch <-chan string, unit string) error {
	select {
	case result := <-ch:
		if result != "done" {
			return errors.Errorf("restart job for %s finished as %q", unit, result)
		}
		return nil
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "restart job for %s did not finish", unit)
	}
}

func (c *conn) StartTarget(ctx context.Context, target string) error {
	if _, err := c.sysd.StartUnitContext(ctx, target, "replace-irreversibly", nil); err != nil {
		return errors.Wrapf(err, "unable to start %s", target)
	}
	return nil
}

func (c *conn) Reexecute() error {
	// Reexecute is not wrapped by go-systemd, issue the call directly.
	bus, err := dbus.SystemBus()
	if err != nil {
		return errors.Wrap(err, "unable to connect to the system bus")
	}
	obj := bus.Object("org.freedesktop.systemd1", dbus.ObjectPath("/org/freedesktop/systemd1"))
	call := obj.Call("org.freedesktop.systemd1.Manager.Reexecute", 0)
	return errors.Wrap(call.Err, "unable to re-execute the service manager")
}

func (c *conn) Close() {
	c.sysd.Close()
}

// UnitName appends the service suffix to a bare unit name, as reported
// by zypper ps.
func UnitName(name string) string {
	if strings.ContainsRune(name, '.') {
		return name
	}
	return name + ".service"
}
