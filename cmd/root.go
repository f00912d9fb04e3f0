package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/CroosRRAF/ChefSync-sub005/internal/replay"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chefsync-geo",
	Short: "Location-aware delivery fee and proximity engine",
	Long: `chefsync-geo tracks customer locations, resolves them to addresses,
ranks the catalog by supplier proximity, and quotes delivery fees. The root
command replays a simulated device track through the full pipeline and
publishes the resulting events to the configured destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		opts := replay.DefaultOptions()
		opts.Seed = viper.GetInt64("seed")
		opts.Readings = viper.GetInt("readings")
		opts.SensorInterval = viper.GetDuration("sensor_interval")

		session, err := replay.NewSession(cfg, opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return session.Run(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON, YAML, or TOML)")

	rootCmd.Flags().Int64("seed", 42, "Random seed for generated data")
	rootCmd.Flags().Int("readings", 30, "Number of sensor readings to replay")
	rootCmd.Flags().Duration("sensor-interval", 200*time.Millisecond, "Delay between sensor readings")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish events to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-path", "", "Base path for file output (if not using Kafka)")
	rootCmd.Flags().String("output-format", "json", "File output format: json, csv or parquet")

	viper.BindPFlag("seed", rootCmd.Flags().Lookup("seed"))
	viper.BindPFlag("readings", rootCmd.Flags().Lookup("readings"))
	viper.BindPFlag("sensor_interval", rootCmd.Flags().Lookup("sensor-interval"))
	viper.BindPFlag("kafka_enabled", rootCmd.Flags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.Flags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output_path", rootCmd.Flags().Lookup("output-path"))
	viper.BindPFlag("output_format", rootCmd.Flags().Lookup("output-format"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
