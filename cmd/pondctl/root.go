package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log = logrus.New()
	cfg = viper.New()
)

// snapshotName is the single pool state pondctl operates on; every
// subcommand loads it at the start and saves it back at the end, so a
// session spans process invocations the way a real on-disk pool would span
// restarts.
const snapshotName = "current"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pondctl",
		Short: "Inspect and drive a pond.Pool[string] from the command line",
	}

	pflags := root.PersistentFlags()
	pflags.String("store", "pondctl.db", "path to the badger snapshot store")
	pflags.Bool("verbose", false, "enable debug logging")
	cfg.BindPFlag("store", pflags.Lookup("store"))
	cfg.BindPFlag("verbose", pflags.Lookup("verbose"))
	cfg.SetEnvPrefix("PONDCTL")
	cfg.AutomaticEnv()

	root.PersistentPreRun = func(*cobra.Command, []string) {
		if cfg.GetBool("verbose") {
			log.SetLevel(logrus.DebugLevel)
		}
		log.SetOutput(os.Stderr)
	}

	root.AddCommand(
		newAllocCmd(),
		newWriteCmd(),
		newGetCmd(),
		newReleaseCmd(),
		newDefragCmd(),
		newTrimCmd(),
		newDumpCmd(),
		newSeedCmd(),
	)
	return root
}

func storePath() string { return cfg.GetString("store") }
