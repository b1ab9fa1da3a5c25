// Copyright 2025 The unsq Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command pagecheck sweeps the unsq algorithms over slices placed flush
// against inaccessible guard pages and compares every result with a scalar
// reference.
//
// Usage:
//
//	pagecheck                                  # host width, all lane types
//	pagecheck --width 256 --types int8,uint32  # one width, two types
//	pagecheck --max-len 200 --offsets 64 --log-level debug
//
// Any load that strays outside the pages holding the slice faults and is
// reported as an error, as is any write outside the slice.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-unsq/unsq/simd"
)

type options struct {
	width    int
	types    []string
	maxLen   int
	offsets  int
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "pagecheck",
		Short: "Check unsq algorithms against guard pages",
		Long: "pagecheck runs Find, Count, Remove, Sum, MinValue, MaxValue and Strlen over\n" +
			"slices of every length up to --max-len, padded 0..--offsets bytes away from\n" +
			"a leading or trailing guard page, and compares each result with a scalar loop.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupLogger(cmd, opts.logLevel); err != nil {
				return err
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.width, "width", simd.HostWidth(), "register width in bits (128, 256 or 512)")
	flags.StringSliceVar(&opts.types, "types", laneTypeNames(), "comma-separated lane types")
	flags.IntVar(&opts.maxLen, "max-len", 0, "longest slice checked, in elements (default: three registers)")
	flags.IntVar(&opts.offsets, "offsets", 0, "largest padding from a guard page, in bytes (default: one register)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	return cmd
}

func setupLogger(cmd *cobra.Command, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return errors.Wrapf(err, "invalid --log-level %q", level)
	}
	simd.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})))
	return nil
}

func run(cmd *cobra.Command, opts *options) error {
	sweeps, err := checkersForWidth(opts.width)
	if err != nil {
		return err
	}
	var selected []string
	for _, name := range opts.types {
		name = strings.TrimSpace(name)
		if _, ok := sweeps[name]; !ok {
			return errors.Errorf("unknown lane type %q, want one of %s", name, strings.Join(laneTypeNames(), ","))
		}
		selected = append(selected, name)
	}

	simd.Logger().Info("pagecheck starting", "width", opts.width, "host", simd.HostName(), "types", selected)
	failed := 0
	for _, name := range selected {
		sweep := sweeps[name]
		cfg := sweepConfig{maxLen: opts.maxLen, offsets: opts.offsets}
		stats, err := sweep(cfg)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %dbit/%s: %v\n", opts.width, name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok   %dbit/%s: %d placements\n", opts.width, name, stats.placements)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d lane types failed", failed, len(selected))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pagecheck:", err)
		os.Exit(1)
	}
}
