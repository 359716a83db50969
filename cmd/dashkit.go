package cmd

import (
	"log"
	"net/http"
	"os"
	"time"

	"dashkit/config"
	"dashkit/engine"
	"dashkit/handlers"
	"dashkit/metrics"
	"dashkit/models"
	"dashkit/store"
	"dashkit/utils"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var configFilePath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config-path", "./config.yaml", "dashkit's config file path")
}

var rootCmd = &cobra.Command{
	Use:   "dashkit",
	Short: "Dashkit serves dashboards built from external API data sources",
	Run: func(cmd *cobra.Command, args []string) {
		// set the path for yaml config file.
		viper.SetConfigType("yaml")
		viper.SetConfigFile(configFilePath)
		config := &config.Config{}
		if err := viper.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				utils.Logger.Fatal("config file is missing", zap.String("config_file_path", configFilePath))
			}
			utils.Logger.Fatal("error while reading config file", zap.String("err_msg", err.Error()))
		}
		viper.Unmarshal(config)
		if err := config.Validate(); err != nil {
			utils.Logger.Fatal("error while validating config file", zap.String("err_msg", err.Error()))
		}
		db, err := utils.GetDB(config)
		if err != nil {
			utils.Logger.Fatal("error while connecting with postgres database", zap.String("err_msg", err.Error()))
		}
		models.Migrate(db)
		store, err := store.NewStore(db)
		if err != nil {
			utils.Logger.Fatal("error while creating store interface", zap.String("err_msg", err.Error()))
		}
		collector := metrics.NewCollector()
		go collector.Start(time.Duration(config.ReportInterval) * time.Minute)
		h := handlers.Handlers{
			Store:   store,
			Cfg:     config,
			Runner:  engine.NewRunner(),
			Metrics: collector,
		}
		router := mux.NewRouter()
		h.Init(router)
		utils.Logger.Info("starting dashkit", zap.String("listen_port", config.ListenPort))
		log.Fatal(http.ListenAndServe(config.ListenPort, router))
	},
}

func Execute() error {
	return rootCmd.Execute()
}
