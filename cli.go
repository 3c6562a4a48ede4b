package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chisel-editor/chisel/editor"
)

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "chisel", "config.yaml")
	}
	return ""
}

func loadConfig(fs afero.Fs, path string) (editor.Config, error) {
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return editor.DefaultConfig(), nil
	}
	return editor.LoadConfig(fs, path)
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "chisel",
		Short:         "Text-buffer tooling for the chisel editor engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config dir)")

	fs := afero.NewOsFs()
	root.AddCommand(newSearchCmd(fs, &configPath))
	root.AddCommand(newReplaceCmd(fs, &configPath))
	root.AddCommand(newStatCmd(fs, &configPath))
	return root
}

func newSearchCmd(fs afero.Fs, configPath *string) *cobra.Command {
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "search <query> <file>...",
		Short: "Find literal matches in files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fs, *configPath)
			if err != nil {
				return err
			}
			query := args[0]
			caseSensitive := cfg.CaseSensitiveSearch && !ignoreCase

			total := 0
			for _, path := range args[1:] {
				sess := editor.NewSession(fs, cfg)
				if _, err := sess.OpenFile(path); err != nil {
					return err
				}
				buf := sess.Tabs.Active()
				for _, m := range editor.FindAll(buf, editor.NewSearchState(query, caseSensitive)) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d: %s\n",
						path, m.Pos.Line+1, m.Pos.Col+1, buf.Line(m.Pos.Line))
					total++
				}
			}
			if total == 0 {
				return fmt.Errorf("no matches for %q", query)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "case-insensitive match")
	return cmd
}

func newReplaceCmd(fs afero.Fs, configPath *string) *cobra.Command {
	var (
		ignoreCase bool
		write      bool
	)

	cmd := &cobra.Command{
		Use:   "replace <query> <replacement> <file>...",
		Short: "Replace literal matches in files (dry run unless --write)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fs, *configPath)
			if err != nil {
				return err
			}
			query, replacement := args[0], args[1]
			caseSensitive := cfg.CaseSensitiveSearch && !ignoreCase

			for _, path := range args[2:] {
				sess := editor.NewSession(fs, cfg)
				if _, err := sess.OpenFile(path); err != nil {
					return err
				}
				sess.FindOpen(query, caseSensitive)
				n, err := sess.ReplaceAll(replacement)
				if err != nil {
					return err
				}
				if write && n > 0 {
					if err := sess.SaveActive(); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d replaced\n", path, n)
			}
			if !write {
				fmt.Fprintln(cmd.OutOrStdout(), "dry run; pass --write to save")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "case-insensitive match")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write changes back to disk")
	return cmd
}

func newStatCmd(fs afero.Fs, configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat <file>...",
		Short: "Report language, indentation, and structure for files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fs, *configPath)
			if err != nil {
				return err
			}
			for _, path := range args {
				sess := editor.NewSession(fs, cfg)
				if _, err := sess.OpenFile(path); err != nil {
					return err
				}
				buf := sess.Tabs.Active()
				regions := editor.RegionsFromIndent(buf, cfg.TabSize)
				fmt.Fprintf(cmd.OutOrStdout(),
					"%s: language=%s lines=%d indent=%s eol=%s foldable=%d\n",
					path, sess.Language(), buf.LineCount(),
					editor.DetectIndentStyle(buf), buf.LineEnding(), len(regions))
			}
			return nil
		},
	}
	return cmd
}
