package adapter

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	db "github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/database"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
)

var (
	Database  *db.Database
	mySQLOnce sync.Once
)

// InitMySQLClient connects once and brings the fee event schema up to
// date before any journal write.
func InitMySQLClient(dsn string) error {
	if dsn == "" {
		return errors.New("MySQL DSN is empty")
	}

	var initError error

	mySQLOnce.Do(func() {
		database, err := db.Open(dsn, config.MySqlDbName)
		if err != nil {
			initError = err
			return
		}

		applied, err := database.Migrate()
		if err != nil {
			database.MysqlClient.Close()
			initError = err
			return
		}

		log := logger.GetForComponent("mysql")
		log.Info().Str("database", config.MySqlDbName).Strs("migrations", applied).Msg("schema ready")

		Database = database
	})

	return initError
}

func GetMySQLClient() (*sql.DB, error) {
	if Database == nil {
		return nil, errors.New("MySQL client is not initialized. call InitMySQLClient first")
	}

	return Database.MysqlClient, nil
}
