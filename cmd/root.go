package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"novelreader/api"
	"novelreader/auth"
	"novelreader/config"
	"novelreader/log"
	"novelreader/model"
	"novelreader/store"
)

var RootCmd = &cobra.Command{
	Use:               "novelreader",
	Short:             "Read and discuss serialized fiction from the terminal",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if st != nil {
			st.Close()
		}
	},
}

var (
	cfgFile string

	cfg         *config.Config
	client      *api.Client
	st          *store.Store
	currentUser *model.User
)

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}
	log.Setup(cfg.LogFile)

	st, err = store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open local store: %v", err)
	}

	client = api.New(cfg.APIBaseURL)

	token, err := st.Token()
	if err != nil {
		return fmt.Errorf("failed to read saved token: %v", err)
	}
	if token != "" {
		client.SetToken(token)
		currentUser, err = auth.UserFromToken(token)
		if err != nil {
			// A stale token falls back to anonymous; login again to fix it.
			log.Warn("ignoring unreadable saved token", zap.Error(err))
			currentUser = nil
		}
	}
	return nil
}
