package bootstrap

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openuploader/uploadproxy/config"
	"github.com/openuploader/uploadproxy/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const loggerKey = iota

var (
	level    zapcore.Level
	options  []zap.Option
	upLogger = new(ProxyLogger)
)

// ProxyLogger logger singleton
type ProxyLogger struct {
	Logger *zap.Logger
	Once   *sync.Once
}

// newProxyLogger .
func newProxyLogger() *ProxyLogger {
	return &ProxyLogger{
		Logger: &zap.Logger{},
		Once:   &sync.Once{},
	}
}

// NewLogger returns the global logger, building it on first use
func NewLogger() *ProxyLogger {
	if upLogger.Logger != nil {
		return upLogger
	} else {
		upLogger = newProxyLogger()
		upLogger.initProxyLogger(upConfig.Conf)
		return upLogger
	}
}

func (up *ProxyLogger) initProxyLogger(conf *config.Configuration) {
	up.Once.Do(
		func() {
			up.Logger = initializeLog(conf)
		},
	)
}

// NewContext stores a request-scoped logger with extra fields on the gin context
func (up *ProxyLogger) NewContext(ctx *gin.Context, fields ...zapcore.Field) {
	ctx.Set(strconv.Itoa(loggerKey), up.WithContext(ctx).With(fields...))
}

// WithContext pulls the request-scoped logger back out, falling back to the global one
func (up *ProxyLogger) WithContext(ctx *gin.Context) *zap.Logger {
	if ctx == nil {
		return up.Logger
	}
	l, _ := ctx.Get(strconv.Itoa(loggerKey))
	ctxLogger, ok := l.(*zap.Logger)
	if ok {
		return ctxLogger
	}
	return up.Logger
}

func initializeLog(conf *config.Configuration) *zap.Logger {
	createRootDir(conf)
	setLogLevel(conf)

	if conf.Log.ShowLine {
		options = append(options, zap.AddCaller())
	}

	return zap.New(getZapCore(conf), options...)
}

func createRootDir(conf *config.Configuration) {
	logFileDir := conf.Log.RootDir
	if !filepath.IsAbs(logFileDir) {
		logFileDir = filepath.Join(rootPath, logFileDir)
	}

	if ok, _ := utils.Exists(logFileDir); !ok {
		_ = os.Mkdir(conf.Log.RootDir, os.ModePerm)
	}
}

func setLogLevel(conf *config.Configuration) {
	switch conf.Log.Level {
	case "debug":
		level = zap.DebugLevel
		options = append(options, zap.AddStacktrace(level))
	case "info":
		level = zap.InfoLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
		options = append(options, zap.AddStacktrace(level))
	case "dpanic":
		level = zap.DPanicLevel
	case "panic":
		level = zap.PanicLevel
	case "fatal":
		level = zap.FatalLevel
	default:
		level = zap.InfoLevel
	}
}

func getZapCore(conf *config.Configuration) zapcore.Core {
	var encoder zapcore.Encoder

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(time time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(time.Format("[" + "2006-01-02 15:04:05.000" + "]"))
	}
	encoderConfig.EncodeLevel = func(l zapcore.Level, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(conf.App.Env + "." + l.String())
	}

	if conf.Log.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// console always, file when enabled
	var multiWS zapcore.WriteSyncer
	if conf.Log.EnableFile {
		multiWS = zapcore.NewMultiWriteSyncer(getLogWriter(conf), zapcore.AddSync(os.Stdout))
	} else {
		multiWS = zapcore.AddSync(os.Stdout)
	}

	return zapcore.NewCore(encoder, multiWS, level)
}

// lumberjack handles rotation
func getLogWriter(conf *config.Configuration) zapcore.WriteSyncer {
	file := &lumberjack.Logger{
		Filename:   conf.Log.RootDir + "/" + conf.Log.Filename,
		MaxSize:    conf.Log.MaxSize,
		MaxBackups: conf.Log.MaxBackups,
		MaxAge:     conf.Log.MaxAge,
		Compress:   conf.Log.Compress,
	}
	return zapcore.AddSync(file)
}
