package logcat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/netbirdio/netstatus/formatter/levels"
)

// Formatter formats logs for logcat, which adds its own timestamp
type Formatter struct {
	levelDesc []string
}

// NewLogcatFormatter create new Formatter instance
func NewLogcatFormatter() *Formatter {
	return &Formatter{
		levelDesc: levels.ValidLevelDesc,
	}
}

// Format renders a single log entry
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "source" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var fields string
	if len(keys) > 0 {
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s: %v", k, entry.Data[k]))
		}
		fields = fmt.Sprintf("[%s] ", strings.Join(pairs, ", "))
	}

	var level string
	if int(entry.Level) < len(f.levelDesc) {
		level = f.levelDesc[entry.Level]
	}

	return []byte(fmt.Sprintf("[%s] %s%s: %s\n", level, fields, entry.Data["source"], entry.Message)), nil
}
