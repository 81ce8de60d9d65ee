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

// os-update applies pending package updates, restarts services holding
// deleted files, and reboots the host when the updates require it.
package main

import (
	"context"
	"io"
	"os"

	"github.com/google/logger"
	"github.com/spf13/cobra"

	"github.com/tacerus/os-update/config"
	"github.com/tacerus/os-update/osinfo"
	"github.com/tacerus/os-update/osupdate"
	"github.com/tacerus/os-update/systemd"
)

// version is overridden at build time.
var version = "devel"

type options struct {
	debug      bool
	logFile    string
	configFile string

	updateCmd    string
	rebootCmd    string
	rebootMethod string
}

func newCommand(opts *options, status *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "os-update",
		Short:        "Apply package updates and reboot or restart whatever must run the new code",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*status = update(opts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "set debug log verbosity")
	cmd.Flags().StringVar(&opts.logFile, "logfile", "", "additionally log to this file")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "additional configuration file, loaded last")
	cmd.Flags().StringVar(&opts.updateCmd, "update-cmd", "", "override UPDATE_CMD (auto, dup, up, security)")
	cmd.Flags().StringVar(&opts.rebootCmd, "reboot-cmd", "", "override REBOOT_CMD (auto, rebootmgr, reboot, no)")
	cmd.Flags().StringVar(&opts.rebootMethod, "reboot-method", "", "override REBOOT_METHOD (auto, hard, soft)")
	return cmd
}

func update(opts *options) int {
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0640)
		if err != nil {
			logger.Errorf("Unable to open log file: %v", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	lg := logger.Init("os-update", opts.debug, true, logOut)
	defer lg.Close()

	paths := []string{config.VendorFile, config.AdminFile}
	if opts.configFile != "" {
		paths = append(paths, opts.configFile)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	if opts.updateCmd != "" {
		cfg.UpdateCmd = opts.updateCmd
	}
	if opts.rebootCmd != "" {
		cfg.RebootCmd = opts.rebootCmd
	}
	if opts.rebootMethod != "" {
		cfg.RebootMethod = opts.rebootMethod
	}

	dist, err := osinfo.GetDistributionInfo()
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}

	ctx := context.Background()
	mgr, err := systemd.Connect(ctx)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	defer mgr.Close()

	return osupdate.New(cfg, dist, mgr).Execute(ctx)
}

func main() {
	opts := &options{}
	status := 0
	if err := newCommand(opts, &status).Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(status)
}
