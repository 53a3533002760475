package logger

import (
	"log"

	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

// Init builds the global logger. Production gets JSON output, everything else
// the development console encoder.
func Init(environment string) {
	var (
		zl  *zap.Logger
		err error
	)

	if environment == "production" {
		zl, err = zap.NewProduction(zap.AddCallerSkip(1))
	} else {
		zl, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	sugar = zl.Sugar()
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// keysAndValues tolerates a trailing bare error or value so call sites can do
// logger.Error("failed to do x", err).
func keysAndValues(args []interface{}) []interface{} {
	if len(args)%2 == 0 {
		return args
	}
	last := args[len(args)-1]
	args = args[:len(args)-1]
	if err, ok := last.(error); ok {
		return append(args, "error", err)
	}
	return append(args, "detail", last)
}

func Info(msg string, args ...interface{}) {
	get().Infow(msg, keysAndValues(args)...)
}

func Warn(msg string, args ...interface{}) {
	get().Warnw(msg, keysAndValues(args)...)
}

func Error(msg string, args ...interface{}) {
	get().Errorw(msg, keysAndValues(args)...)
}

func Fatal(msg string, args ...interface{}) {
	get().Fatalw(msg, keysAndValues(args)...)
}
