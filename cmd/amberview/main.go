// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command amberview opens a window showing the models and skybox
// named in its config file.
package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/egospodinova/amber-engine/base/logx"
	"github.com/spf13/cobra"

	_ "github.com/egospodinova/amber-engine/model/collada"
	_ "github.com/egospodinova/amber-engine/model/obj"
)

func init() {
	// GL calls must all be made on the main thread
	runtime.LockOSThread()
}

// flags are the command line flags.
type flags struct {
	config    string
	vv, v, q  bool
	watch     bool
	models    []string
	writeConf string
}

func newRootCmd() *cobra.Command {
	fl := &flags{}
	cmd := &cobra.Command{
		Use:   "amberview [model files]",
		Short: "View 3D models",
		Long: `amberview opens a window rendering the models given as arguments
and in the config file, with an optional skybox. Supported model
formats are listed by the formats command.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(fl.vv, fl.v, fl.q)
			logx.SetDefaultLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fl.config)
			if err != nil {
				return err
			}
			cfg.Models = append(cfg.Models, args...)
			if fl.watch {
				cfg.Watch = true
			}
			if fl.writeConf != "" {
				return saveConfig(cfg, fl.writeConf)
			}
			return run(cfg)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&fl.config, "config", "", "config file, .toml or .yaml (default is "+configName+" in "+defaultConfigDir()+")")
	pf.BoolVarP(&fl.v, "verbose", "v", false, "log info messages")
	pf.BoolVar(&fl.vv, "vv", false, "log debug messages")
	pf.BoolVarP(&fl.q, "quiet", "q", false, "log errors only")
	cmd.Flags().BoolVar(&fl.watch, "watch", false, "reload the program when its shader files change")
	cmd.Flags().StringVar(&fl.writeConf, "write-config", "", "write the resulting config to the given file and exit")
	cmd.AddCommand(newFormatsCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
