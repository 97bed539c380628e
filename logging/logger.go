package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logrus instance shared by all packages.
var Logger = logrus.New()

var once sync.Once

// CustomFormatter implements logrus.Formatter with the flat event format used
// across the service logs.
type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))

	if len(entry.Data) > 0 {
		for k, v := range entry.Data {
			b.WriteString(fmt.Sprintf(", %s: %v", k, v))
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger routes the global logger through a rotated file. When the log
// directory cannot be created the logger keeps writing to stderr.
func InitLogger(logFile string) {
	once.Do(func() {
		Logger.SetFormatter(&CustomFormatter{SystemName: "project-manager"})
		Logger.SetLevel(logrus.InfoLevel)

		dir := filepath.Dir(logFile)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			Logger.Warnf("Failed to create log directory %s, logging to stderr: %v", dir, err)
			return
		}

		Logger.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})

		Logger.Infof("Logger initialized, output to: %s", logFile)
	})
}
