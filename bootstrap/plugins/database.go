package plugins

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/openuploader/uploadproxy/app/models"
	"github.com/openuploader/uploadproxy/bootstrap"
	"github.com/openuploader/uploadproxy/config"
	"github.com/openuploader/uploadproxy/config/plugins"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var upDB = map[string]*ProxyDB{}

// ProxyDB gorm connection singleton, one per configured database
type ProxyDB struct {
	Once *sync.Once
	DB   *gorm.DB
}

func newProxyDB() *ProxyDB {
	return &ProxyDB{
		DB:   &gorm.DB{},
		Once: &sync.Once{},
	}
}

// Use selects a database by name
func (up *ProxyDB) Use(dbName string) *ProxyDB {
	if db, ok := upDB[dbName]; ok {
		return db
	} else {
		bootstrap.NewLogger().Logger.Error("unknown database name", zap.String("db", dbName))
		panic(ok)
	}
}

func (up *ProxyDB) NewDB() *gorm.DB {
	return up.DB
}

func (up *ProxyDB) Name() string {
	return "DB"
}

// New connects every configured database
func (up *ProxyDB) New() interface{} {
	conf := bootstrap.NewConfig("")
	for _, db := range conf.Database {
		upDB[db.DBName] = newProxyDB()
		upDB[db.DBName].initializeDB(db, conf)
	}
	return upDB
}

func (up *ProxyDB) Health() {
	for dbName, db := range upDB {
		tx := db.DB.Exec("select now();")

		if tx.Error != nil {
			bootstrap.NewLogger().Logger.Error("db connect failed,", zap.String("db", dbName),
				zap.Any("err", tx.Error))
		}
	}
}

// Close .
func (up *ProxyDB) Close() {}

// Flag .
func (up *ProxyDB) Flag() bool { return true }

func init() {
	p := &ProxyDB{}
	RegisteredPlugin(p)
}

func (up *ProxyDB) initializeDB(db *plugins.Database, conf *config.Configuration) {
	up.Once.Do(func() {
		switch db.Driver {
		case "mysql":
			initMySqlGorm(db, conf)
		case "postgres":
			initPGGorm(db, conf)
		default:
			initMySqlGorm(db, conf)
		}
	})
}

func initPGGorm(dbConfig *plugins.Database, conf *config.Configuration) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		dbConfig.Host,
		dbConfig.UserName,
		dbConfig.Password,
		dbConfig.Database,
		strconv.Itoa(dbConfig.Port),
	)

	if db, err := gorm.Open(postgres.Open(dsn), getGormConfig(dbConfig, conf)); err != nil {
		bootstrap.NewLogger().Logger.Error("postgres connect failed, err:", zap.Any("err", err))
		panic(err)
	} else {
		sqlDB, _ := db.DB()
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
		initTables(db)
		upDB[dbConfig.DBName].DB = db
	}
}

func initMySqlGorm(dbConfig *plugins.Database, conf *config.Configuration) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		dbConfig.UserName,
		dbConfig.Password,
		dbConfig.Host,
		strconv.Itoa(dbConfig.Port),
		dbConfig.Database,
		dbConfig.Charset,
	)

	if db, err := gorm.Open(mysql.Open(dsn), getGormConfig(dbConfig, conf)); err != nil {
		bootstrap.NewLogger().Logger.Error("mysql connect failed, err:", zap.Any("err", err))
		panic(err)
	} else {
		sqlDB, _ := db.DB()
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
		initTables(db)
		upDB[dbConfig.DBName].DB = db
	}
}

// TranslateError maps driver duplicate-key errors onto gorm.ErrDuplicatedKey,
// the fingerprint registry relies on it.
func getGormConfig(dbConfig *plugins.Database, conf *config.Configuration) *gorm.Config {
	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	}
	if dbConfig.EnableSqlLog {
		gormConfig.Logger = getGormLogger(dbConfig, conf)
	}
	if gormConfig.NamingStrategy == nil {
		gormConfig.NamingStrategy = schema.NamingStrategy{
			SingularTable: true,
		}
	}
	return gormConfig
}

func getGormLogger(dbConfig *plugins.Database, conf *config.Configuration) logger.Interface {
	var logMode logger.LogLevel

	switch dbConfig.LogMode {
	case "silent":
		logMode = logger.Silent
	case "error":
		logMode = logger.Error
	case "warn":
		logMode = logger.Warn
	case "info":
		logMode = logger.Info
	default:
		logMode = logger.Info
	}

	return logger.New(getGormLogWriter(dbConfig, conf), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logMode,
		IgnoreRecordNotFoundError: false,
		Colorful:                  !dbConfig.EnableFileLogWriter,
	})
}

// sql log goes to file or console
func getGormLogWriter(dbConfig *plugins.Database, conf *config.Configuration) logger.Writer {
	var writer io.Writer

	if dbConfig.EnableFileLogWriter {
		writer = &lumberjack.Logger{
			Filename:   conf.Log.RootDir + "/" + dbConfig.LogFilename,
			MaxSize:    conf.Log.MaxSize,
			MaxBackups: conf.Log.MaxBackups,
			MaxAge:     conf.Log.MaxAge,
			Compress:   conf.Log.Compress,
		}
	} else {
		writer = os.Stdout
	}
	return log.New(writer, "\r\n", log.LstdFlags)
}

func initTables(db *gorm.DB) {
	err := db.AutoMigrate(
		models.UploadSession{},
		models.ChunkReceipt{},
		models.TaskInfo{},
		models.TaskLog{},
	)
	if err != nil {
		bootstrap.NewLogger().Logger.Error("migrate table failed", zap.Any("err", err))
		panic(err.Error())
	}
}
