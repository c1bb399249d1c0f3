package cmd

import (
	"log"

	"cinegate/config"
	"cinegate/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Connect to MySQL and create the users and movies tables without starting the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.DB.Close()

		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database with GORM: %v", err)
		}
		defer db.CloseGormDB()

		if err := db.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := db.MigrateMovies(); err != nil {
			log.Fatalf("Failed to migrate movies table: %v", err)
		}

		log.Println("Migration completed.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
