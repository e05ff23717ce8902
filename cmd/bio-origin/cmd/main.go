// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/mosaic/origin"
	"github.com/grailbio/mosaic/snpcall"
	"v.io/x/lib/cmdline"
)

// addSegmentFlags binds the flags shared by all subcommands to opts.
func addSegmentFlags(cmd *cmdline.Command, opts *origin.Opts) {
	cmd.Flags.IntVar(&opts.MinRunP1, "min-run-p1", origin.DefaultOpts.MinRunP1, "Minimum number of consecutive P1 SNPs needed to switch to P1")
	cmd.Flags.IntVar(&opts.MinRunP2, "min-run-p2", origin.DefaultOpts.MinRunP2, "Minimum number of consecutive P2 SNPs needed to switch to P2")
	cmd.Flags.Int64Var(&opts.LongFragment, "long-fragment", origin.DefaultOpts.LongFragment, "Fragments of the minimal parent longer than this are reported as long")
	cmd.Flags.BoolVar(&opts.SkipMalformed, "skip-malformed", origin.DefaultOpts.SkipMalformed, "Skip rows with malformed SNP patterns instead of failing")
}

func newCmdRun() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "run",
		Short:    "Segment both orientations, write reports and decide which parent is the receptor",
		ArgsName: "p1sorted p2sorted",
	}
	opts := origin.DefaultOpts
	addSegmentFlags(cmd, &opts)
	cmd.Flags.StringVar(&opts.Format, "format", origin.DefaultOpts.Format, "Report format; 'xlsx', 'tsv' and 'tsv-bgz' supported")
	cmd.Flags.StringVar(&opts.OutDir, "out", origin.DefaultOpts.OutDir, "Report directory.  Defaults to the directory of each input")
	cmd.Flags.BoolVar(&opts.Timestamp, "timestamp", origin.DefaultOpts.Timestamp, "Append the date and time to report names")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("run takes p1sorted p2sorted, but got %v", argv)
		}
		v, err := origin.Run(vcontext.Background(), argv[0], argv[1], opts)
		if err != nil {
			return err
		}
		for _, r := range v.Orientations {
			for _, p := range r.Paths {
				fmt.Fprintln(env.Stdout, p)
			}
		}
		fmt.Fprintf(env.Stdout, "%v is the receptor and %v the donor\n", v.Receptor, v.Donor)
		return nil
	})
	return cmd
}

func newCmdSegment() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "segment",
		Short:    "Print the intervals of one orientation as TSV",
		ArgsName: "table",
	}
	opts := origin.DefaultOpts
	addSegmentFlags(cmd, &opts)
	receptor := cmd.Flags.String("receptor", "P1", "Receptor parent, P1 or P2; the table must be sorted by its positions")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("segment takes one table argument, but got %v", argv)
		}
		l, err := snpcall.ParseLabel(*receptor)
		if err != nil {
			return err
		}
		return segmentTable(vcontext.Background(), env.Stdout, argv[0], l, opts)
	})
	return cmd
}

func newCmdLocate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "locate",
		Short: "Print the intervals overlapping a region",
		Long: `
The region is one of
  <genome>:<first pos>-<last pos>
  <genome>:<pos>
  <genome>
where genome is P1, P2 or R and positions are 1-based and inclusive.`,
		ArgsName: "table region",
	}
	opts := origin.DefaultOpts
	addSegmentFlags(cmd, &opts)
	receptor := cmd.Flags.String("receptor", "P1", "Receptor parent, P1 or P2; the table must be sorted by its positions")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("locate takes table region, but got %v", argv)
		}
		l, err := snpcall.ParseLabel(*receptor)
		if err != nil {
			return err
		}
		return locateRegion(vcontext.Background(), env.Stdout, argv[0], argv[1], l, opts)
	})
	return cmd
}

// Run is the entry point of bio-origin.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-origin",
			Short:    "Identify the parental origin of the regions of a recombinant genome",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdRun(),
				newCmdSegment(),
				newCmdLocate(),
			},
		})
}
