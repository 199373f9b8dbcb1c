package main

import (
	"fmt"
	"os"

	"github.com/korneil/launchif/internal"
	"github.com/korneil/launchif/internal/launch"
	"github.com/mingrammer/cfmt"
	"github.com/spf13/cobra"
)

func writeCmd() *cobra.Command {
	var in launch.Input

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Add one launch configuration to the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := newContext()
			if err != nil {
				return err
			}
			defer x.Close()

			if err = x.Submit(in); err != nil {
				return errReported
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.DeviceName, "device", "", "device name, e.g. STM32F407VG")
	f.StringVar(&in.ExecutablePath, "executable", "", "path to the ELF file")
	f.StringVar(&in.InterfaceFile, "interface", "", "OpenOCD interface file")
	f.StringVar(&in.TargetFile, "target", "", "OpenOCD target file")
	f.StringVar(&in.SVDFilePath, "svd", "", "SVD file")
	f.StringVar(&in.AdapterSpeed, "speed", "", "adapter speed in kHz")

	return cmd
}

func submitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Read saveConfig messages from stdin, one JSON object per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := newContext()
			if err != nil {
				return err
			}

			x.RunStream(os.Stdin)
			x.Wait()
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Add a launch configuration whenever a request file is saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := newContext()
			if err != nil {
				return err
			}

			if err = x.RunWatch(); err != nil {
				x.Close()
				return err
			}
			x.Wait()
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configurations in the launch document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := newContext()
			if err != nil {
				return err
			}
			defer x.Close()

			path, err := x.Writer.Path()
			if err != nil {
				return err
			}
			doc, err := x.Writer.Load()
			if err != nil {
				return err
			}
			internal.PrintList(os.Stdout, path, doc)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the launch document and running debug servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := newContext()
			if err != nil {
				return err
			}
			defer x.Close()

			if path, err := x.Writer.Path(); err != nil {
				cfmt.Warningln(err)
			} else if doc, err := x.Writer.Load(); err != nil {
				cfmt.Warningf("%s: %v\n", path, err)
			} else {
				cfmt.Infof("%s: %d configurations\n", path, len(doc.Configurations))
			}

			procs, err := internal.RunningServers(x.Config.Servers)
			if err != nil {
				return err
			}
			if len(procs) == 0 {
				cfmt.Infoln("No debug server running")
			}
			for _, p := range procs {
				cfmt.Warningf("%s is running (pid %d)\n", p.Executable(), p.Pid())
			}
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := newContext()
			if err != nil {
				return err
			}
			defer x.Close()

			cfmt.Successln("Running with config:")
			fmt.Print(string(x.GetConfigYAML()))
			return nil
		},
	}
}
