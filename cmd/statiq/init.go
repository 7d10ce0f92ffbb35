package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config.yaml interactively",
	Long: `Write a starter configuration file by answering a few prompts:
  - HTTP port
  - Search roots (ordered, comma separated)
  - Directory allow-list (optional)
  - Cache-Control max-age

An existing file is only overwritten after confirmation.`,
	RunE: runInit,
}

var initOutput string

func init() {
	initCmd.Flags().StringVar(&initOutput, "output", "config.yaml", "output file path")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("%s exists, overwrite", initOutput),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				return nil
			}
			return fmt.Errorf("confirm overwrite: %w", err)
		}
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: "5709",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	rootsPrompt := promptui.Prompt{
		Label:   "Search roots (comma separated, ordered)",
		Default: ".",
	}
	rootsStr, err := rootsPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt roots: %w", err)
	}

	dirsPrompt := promptui.Prompt{
		Label: "Directory allow-list (comma separated, empty allows any path)",
	}
	dirsStr, err := dirsPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt dirs: %w", err)
	}

	expiresPrompt := promptui.Prompt{
		Label:   "Cache-Control max-age in seconds (0 disables)",
		Default: "0",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return errors.New("expires must be a non-negative integer")
			}
			return nil
		},
	}
	expiresStr, err := expiresPrompt.Run()
	if err != nil {
		return fmt.Errorf("prompt expires: %w", err)
	}
	expires, _ := strconv.Atoi(expiresStr)

	static := map[string]any{
		"include_path": splitList(rootsStr),
		"expires":      expires,
	}
	if dirs := splitList(dirsStr); len(dirs) > 0 {
		static["dirs"] = dirs
	}

	doc := map[string]any{
		"server": map[string]any{
			"port":    port,
			"logging": true,
		},
		"static": static,
		"log": map[string]any{
			"level": "info",
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(initOutput, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", initOutput, err)
	}

	fmt.Printf("wrote %s\n", initOutput)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
