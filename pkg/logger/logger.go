package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop()

// Init 初始化全局 logger；development 模式用彩色控制台输出
func Init(level string, development bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		cfg := zap.NewDevelopmentConfig()
		if err = cfg.Level.UnmarshalText([]byte(level)); err != nil {
			return err
		}
		l, err = cfg.Build()
	} else {
		cfg := zap.NewProductionConfig()
		if err = cfg.Level.UnmarshalText([]byte(level)); err != nil {
			return err
		}
		l, err = cfg.Build()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L 暴露底层 logger，便于挂载到第三方库
func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

func Sync() { _ = log.Sync() }
