// config.go implements the "flexarc config" command for configuration
// management.
//
// Config follows a cascade model similar to git: local config
// (.flexarc/config.yaml) takes precedence over global (~/.flexarc/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ib-tools/flexarc/internal/config"
	"github.com/ib-tools/flexarc/internal/log"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "View or set config values",
	Long: `View or set config values.

  flexarc config                        # show config
  flexarc config archive.dir            # show archive.dir value
  flexarc config archive.dir ~/reports  # set archive.dir

Configuration locations:
  Global: ~/.flexarc/config.yaml
  Local:  .flexarc/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool("local")

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		if JSON() {
			log.Event("config", "list").Author(Author()).Write(nil)
			return PrintJSON(cfg.All())
		}
		for _, k := range config.ValidKeys() {
			v, _ := cfg.Get(k)
			fmt.Fprintf(Out(), "%s: %s\n", k, v)
		}
		log.Event("config", "list").Author(Author()).Write(nil)

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("config", "get").Author(Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if JSON() {
			return PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("config", "set").Author(Author()).Detail("key", args[0]).Write(err)
			return PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("config", "set").Author(Author()).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if JSON() {
			return PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scopeName})
		}
		fmt.Fprintf(Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}

func init() {
	configCmd.Flags().Bool("local", false, "Use local config (.flexarc/config.yaml)")
	rootCmd.AddCommand(configCmd)
}
