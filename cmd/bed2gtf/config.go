package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKeys are the converter defaults honored by the root command. All of
// them are booleans; unknown keys in the config file are ignored.
var configKeys = map[string]string{
	"convert.no_gene": "use transcript names as gene names (default for --no-gene)",
	"output.compress": "gzip the output stream regardless of the output extension",
	"log.verbose":     "enable debug logging (default for --verbose)",
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bed2gtf configuration",
		Long:  "Show, get, set, or unset converter defaults. Config is stored in ~/.bed2gtf.yaml.",
		Example: `  bed2gtf config                           # show effective settings
  bed2gtf config set convert.no_gene true  # default to no-gene mode
  bed2gtf config unset output.compress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a converter default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get the effective value of a converter default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a converter default from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigUnset(args[0])
		},
	})

	return cmd
}

// runConfigShow prints the effective value of every known key, config-file
// and environment overrides applied.
func runConfigShow(w io.Writer) error {
	effective := make(map[string]bool, len(configKeys))
	for key := range configKeys {
		effective[key] = viper.GetBool(key)
	}

	out, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

func runConfigSet(key, value string) error {
	v, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, v)

	path, err := configFilePath()
	if err != nil {
		return err
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %t in %s\n", key, v, path)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	if _, ok := configKeys[key]; !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	fmt.Fprintln(w, viper.GetBool(key))
	return nil
}

func runConfigUnset(key string) error {
	if _, ok := configKeys[key]; !ok {
		return fmt.Errorf("unknown config key %q", key)
	}

	settings := viper.AllSettings()
	if !deleteKey(settings, strings.Split(key, ".")) {
		return fmt.Errorf("key %q is not set", key)
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path, err := configFilePath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Unset %s in %s\n", key, path)
	return nil
}

// parseConfigValue validates a key/value pair. Every known key is a boolean;
// the accepted spellings follow the usual yaml truthiness set.
func parseConfigValue(key, value string) (bool, error) {
	if _, ok := configKeys[key]; !ok {
		return false, fmt.Errorf("unknown config key %q", key)
	}
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("value %q for %s is not a boolean", value, key)
}

// deleteKey removes a dotted key from a nested settings map, pruning section
// maps that become empty. Returns false if the key was not present.
func deleteKey(settings map[string]any, path []string) bool {
	if len(path) == 1 {
		if _, ok := settings[path[0]]; !ok {
			return false
		}
		delete(settings, path[0])
		return true
	}

	section, ok := settings[path[0]].(map[string]any)
	if !ok {
		return false
	}
	if !deleteKey(section, path[1:]) {
		return false
	}
	if len(section) == 0 {
		delete(settings, path[0])
	}
	return true
}

func configFilePath() (string, error) {
	if path := viper.ConfigFileUsed(); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".bed2gtf.yaml"), nil
}
