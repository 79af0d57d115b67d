// Package cli wires the timeid commands.
package cli

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/yudaprama/timeid/internal/config"
	"github.com/yudaprama/timeid/internal/idgenerator"
	"github.com/yudaprama/timeid/internal/logger"
	"github.com/yudaprama/timeid/internal/models"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	configPath string
	nodeID     int64
	logLevel   string

	cfg *models.Config
	lg  *zap.Logger
}

// NewRoot constructs the root command with all subcommands registered.
func NewRoot() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "timeid",
		Short:         "Time-ordered unique identifiers",
		Long:          "timeid mints 64-bit identifiers that sort by creation time and encodes them as 12 base62 characters.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.lg != nil {
				_ = a.lg.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a JSON or TOML config file")
	flags.Int64Var(&a.nodeID, "node", 0, "node id, overrides config and TIMEID_NODE_ID")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides config and TIMEID_LOG_LEVEL")

	root.AddCommand(
		newGenerateCommand(a),
		newDecodeCommand(a),
		newStampCommand(a),
		newBenchCommand(a),
		newLayoutCommand(a),
	)
	return root
}

// load resolves configuration in order: defaults, file, .env and process
// environment, then flags.
func (a *app) load(cmd *cobra.Command) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return fmt.Errorf("unable to load configuration file: %w", err)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("node") {
		cfg.NodeID = a.nodeID
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.lg = logger.New(cfg.Log, cmd.ErrOrStderr())
	return nil
}

func (a *app) options() ([]idgenerator.Option, error) {
	opts, err := config.GeneratorOptions(a.cfg)
	if err != nil {
		return nil, err
	}
	return append(opts, idgenerator.WithLogger(a.lg)), nil
}

func (a *app) generator() (*idgenerator.IDGenerator, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	return idgenerator.NewIDGenerator(a.cfg.EffectiveNodeID(), opts...)
}

func (a *app) stamper() (*idgenerator.Stamper, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	var keeper idgenerator.CountKeeper
	if size := a.cfg.Stamp.CounterSize; size > 0 {
		if keeper, err = idgenerator.NewLimitedCounter(size); err != nil {
			return nil, err
		}
	}
	return idgenerator.NewStamper(a.cfg.EffectiveNodeID(), keeper, opts...)
}

func formatID(id idgenerator.ID, format string) (string, error) {
	switch format {
	case "", "text":
		return id.String(), nil
	case "hex":
		return id.Hex(), nil
	case "int":
		return fmt.Sprint(id.Uint64()), nil
	default:
		return "", fmt.Errorf("unknown format %q, want text, hex or int", format)
	}
}

func printIDs(w io.Writer, ids []idgenerator.ID, format string) error {
	for _, id := range ids {
		s, err := formatID(id, format)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
