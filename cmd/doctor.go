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
	"os"

	"github.com/fatih/color"
	"github.com/k1LoW/txtshot"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check txtshot environment and configuration",
	Long:  `Check txtshot environment and configuration to ensure everything is set up correctly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Color setup
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file
		cmd.Print("🔧 Checking configuration ... ")
		cfg, err := loadConfig()
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			return nil
		}
		green.Println("✓ OK")

		// 2. Check preferred font
		cmd.Print("🔤 Checking font ... ")
		f, err := txtshot.LoadPreferredFace(txtshot.FaceOptions{
			Font:     cfg.Font,
			FontDirs: cfg.FontDirs,
			Size:     cfg.FontSize,
		})
		if err != nil {
			fallback := txtshot.NewFallbackFace(cfg.FontSize)
			yellow.Println("⚠️ FALLBACK")
			cmd.Printf("   %s was not found, %s will be used\n", cfg.Font, fallback.Name())
			_ = fallback.Close()
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Font file: %s\n", f.Name())
			_ = f.Close()
		}

		// 3. Check input transcript
		cmd.Print("📄 Checking transcript ... ")
		if _, err := os.Stat(cfg.Input); err != nil {
			yellow.Println("⚠️ NOT FOUND")
			cmd.Printf("   Expected at: %s\n", cfg.Input)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Transcript: %s\n", cfg.Input)
		}

		// Final message
		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use txtshot")
			bold.Println(".")
		} else {
			yellow.Println("⚠️  Some checks need attention. Fix the items above or pass the transcript path as an argument.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
