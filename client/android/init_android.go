//go:build android

package android

import (
	log "github.com/sirupsen/logrus"

	"github.com/netbirdio/netstatus/formatter"
)

func init() {
	formatter.SetLogcatFormatter(log.StandardLogger())
}
