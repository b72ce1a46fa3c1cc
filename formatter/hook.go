package formatter

import (
	"fmt"
	"path"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

const fallbackModuleDir = "netstatus/"

// ContextHook adds the caller's source path, relative to the module root, as the "source" field
type ContextHook struct {
	goModuleName string
}

// NewContextHook instantiate a new context hook
func NewContextHook() *ContextHook {
	return &ContextHook{goModuleName: mainModule() + "/"}
}

// Levels set the supported levels for this hook
func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire sets the source field. Entries logged without ReportCaller are left untouched.
func (hook ContextHook) Fire(entry *logrus.Entry) error {
	if entry.Caller == nil {
		return nil
	}
	entry.Data["source"] = fmt.Sprintf("%s:%d", hook.parseSrc(entry.Caller.File), entry.Caller.Line)
	return nil
}

func mainModule() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Path != "" {
		return info.Main.Path
	}
	return "github.com/netbirdio/netstatus"
}

func (hook ContextHook) parseSrc(filePath string) string {
	for _, root := range []string{hook.goModuleName, fallbackModuleDir} {
		if parts := strings.SplitAfter(filePath, root); len(parts) > 1 {
			return parts[len(parts)-1]
		}
	}

	// external package or a checkout under another directory name
	_, pkg := path.Split(path.Dir(filePath))
	return pkg + "/" + path.Base(filePath)
}
