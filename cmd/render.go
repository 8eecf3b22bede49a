/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/k1LoW/txtshot"
	"github.com/k1LoW/txtshot/config"
	"github.com/k1LoW/txtshot/handler/dot"
	"github.com/pkg/browser"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

var (
	outPrefix string
	parallel  int
	part      string
	watch     bool
	open      bool
)

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	// Command line flags take precedence
	if outPrefix != "" {
		cfg.OutputPrefix = outPrefix
	}
	if parallel > 0 {
		cfg.Concurrency = parallel
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	shot, err := txtshot.New(txtshot.WithConfig(cfg), txtshot.WithLogger(logger))
	if err != nil {
		return err
	}
	defer shot.Close()

	stored, err := render(ctx, cmd, shot, cfg)
	if err != nil {
		return err
	}
	if open && len(stored) > 0 {
		if err := browser.OpenFile(stored[0].Name); err != nil {
			return fmt.Errorf("failed to open %s: %w", stored[0].Name, err)
		}
	}
	if !watch {
		return nil
	}
	return txtshot.Watch(ctx, cfg.Input, logger, func(ctx context.Context) error {
		_, err := render(ctx, cmd, shot, cfg)
		return err
	})
}

// render renders the transcript and stores the selected parts.
func render(ctx context.Context, cmd *cobra.Command, shot *txtshot.Shot, cfg *config.Config) ([]*txtshot.Part, error) {
	lines, err := txtshot.ReadTranscript(cfg.Input)
	if err != nil {
		if errors.Is(err, txtshot.ErrTranscriptNotFound) {
			return nil, fmt.Errorf("input file %q not found: %w", cfg.Input, txtshot.ErrTranscriptNotFound)
		}
		return nil, err
	}
	parts, err := shot.Render(ctx, lines)
	if err != nil {
		return nil, err
	}
	numbers, err := partToParts(part, len(parts))
	if err != nil {
		return nil, err
	}
	selected := make([]*txtshot.Part, 0, len(numbers))
	for _, n := range numbers {
		selected = append(selected, parts[n-1])
	}
	if err := shot.Store(ctx, selected); err != nil {
		return nil, err
	}
	for _, p := range selected {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Screenshot part saved to '%s'\n", p.Name)
	}
	return selected, nil
}

func newLogger() (*slog.Logger, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	dh, err := dot.New(slog.NewTextHandler(os.Stdout, nil))
	if err != nil {
		return nil, err
	}
	return slog.New(slogmulti.Fanout(
		dh,
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)), nil
}

// partToParts expands a part selection like "1,3-5" into part numbers.
// An empty selection selects every part.
func partToParts(part string, total int) ([]int, error) {
	if part == "" {
		parts := make([]int, total)
		for i := 0; i < total; i++ {
			parts[i] = i + 1
		}
		return parts, nil
	}

	var result []int
	for _, p := range strings.Split(part, ",") {
		if strings.Contains(p, "-") {
			rangeParts := strings.Split(p, "-")
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid range format: %s", p)
			}
			start, end := rangeParts[0], rangeParts[1]
			var startPart, endPart int
			var err error
			if start == "" {
				// Open start range: "-5"
				startPart = 1
			} else {
				startPart, err = strconv.Atoi(start)
				if err != nil {
					return nil, fmt.Errorf("invalid part number: %s", start)
				}
			}
			if end == "" {
				// Open end range: "3-"
				endPart = total
			} else {
				endPart, err = strconv.Atoi(end)
				if err != nil {
					return nil, fmt.Errorf("invalid part number: %s", end)
				}
			}
			if startPart < 1 || startPart > total || endPart < 1 || endPart > total || startPart > endPart {
				return nil, fmt.Errorf("invalid part range: %s (total parts: %d)", p, total)
			}
			for i := startPart; i <= endPart; i++ {
				result = append(result, i)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid part number: %s", p)
		}
		if n < 1 || n > total {
			return nil, fmt.Errorf("part number out of range: %d (total parts: %d)", n, total)
		}
		result = append(result, n)
	}
	return result, nil
}

func init() {
	rootCmd.Flags().StringVarP(&outPrefix, "out-prefix", "o", "", "output file prefix, parts are written to <prefix>_<n>.png")
	rootCmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "number of parts rendered at once")
	rootCmd.Flags().StringVarP(&part, "part", "", "", "parts to write, e.g. 1,3-5")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the transcript changes")
	rootCmd.Flags().BoolVarP(&open, "open", "", false, "open the first written part")
}
