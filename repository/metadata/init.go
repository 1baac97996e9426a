package metadata

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/utils"
)

type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Database string
}

func (c *MySQLConfig) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Database)
}

type Config struct {
	Driver string
	MySQL  MySQLConfig
	// database file for the sqlite driver, ":memory:" for a private in-memory database
	SQLitePath     string
	CheckMigration bool
	// statements slower than this are logged as warnings, 200ms when zero
	SlowQuery time.Duration
}

// GenerateTestConfig gives a fresh in-memory database on every CreateDatabase call.
func GenerateTestConfig() *Config {
	return &Config{
		Driver:         DriverSQLite,
		SQLitePath:     ":memory:",
		CheckMigration: true,
	}
}

var db *gorm.DB

func CreateDatabase(config *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: newSQLLogger(logging.NewLogger(), config.SlowQuery),
	}

	var dialector gorm.Dialector
	switch config.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(config.SQLitePath)
	case DriverMySQL, "":
		dialector = mysql.Open(config.MySQL.dsn())
	default:
		return nil, fmt.Errorf("unknown metadata driver [%s]", config.Driver)
	}

	database, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, utils.WrapError(err, "db connection fail")
	}

	if config.Driver == DriverSQLite {
		// one connection: every pooled connection would otherwise see its own in-memory database
		sqlDB, err := database.DB()
		if err != nil {
			return nil, utils.WrapError(err, "get sql.DB fail")
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if config.CheckMigration {
		err = migration(database, config.Driver)
		if err != nil {
			return nil, utils.WrapError(err, "migration fail")
		}
	}

	return database, nil
}

func migration(db *gorm.DB, driver string) error {
	tables := []interface{}{
		&AnalysisTask{}, &AnalysisTaskItem{},
		&Article{}, &Sentence{}, &Candidate{},
	}

	if driver != DriverSQLite {
		db = db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci")
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return utils.WrapError(err, "AutoMigrate fail")
	}

	return nil
}

func Init(config *Config) {
	database, err := CreateDatabase(config)
	if err != nil {
		panic(err)
	}

	db = database
}

func DatabaseRaw() *gorm.DB {
	return db
}
