// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

// LongHelp es la descripción extendida del comando scan.
const LongHelp = `Probe a catalog of web services for a phone number.

Every catalog category runs as one task in a bounded worker pool; the
endpoints of a category are probed one after another. An endpoint is
"found" when it answers HTTP 200, "not found" for any other status and
"unreachable" when every attempt failed at the transport level.

IMPORTANT:
  Results only mean the endpoint answered 200; a generic search page that
  always answers 200 counts as found. Treat hits as leads, not evidence.

CONFIGURATION PRECEDENCE:
  defaults < config file < environment (PHONEPROBE_*) < flags

  Config file lookup: --config, $PHONEPROBE_CONFIG, ./phoneprobe.yaml,
  $XDG_CONFIG_HOME/phoneprobe/config.yaml

ENVIRONMENT VARIABLES:
  Every key can be set with the PHONEPROBE_ prefix, dots become underscores:

  PHONEPROBE_CORE_WORKERS=8          Concurrent categories
  PHONEPROBE_CORE_TIMEOUT=15s        Per-attempt timeout
  PHONEPROBE_CORE_RETRIES=2          Attempts per endpoint
  PHONEPROBE_CORE_RETRY_DELAY=1s     Delay between attempts
  PHONEPROBE_HTTP_INSECURE=true      Skip TLS verification
  PHONEPROBE_HTTP_PROXY=http://...   Proxy URL
  PHONEPROBE_OUTPUT_DIR=/path        Output directory
  PHONEPROBE_LOG_LEVEL=debug         Log level

  Note: CLI flags override environment variables.

TLS:
  Certificate verification is ON by default. --insecure disables it, which
  turns certificate failures into normal responses.`

// ExampleHelp ejemplos para el comando scan.
const ExampleHelp = `  Basic scan, CSV written to results.csv:
    phoneprobe scan +15551234567 -o results.csv

  Only social and messaging, faster failure detection:
    phoneprobe scan +15551234567 --categories social_networks,messaging_apps -t 5s -r 2

  Extend the catalog and export every format:
    phoneprobe scan 79001234567 --catalog extra.yaml --formats csv,json,yaml,markdown

  Quiet mode, JSON only, debug logs:
    phoneprobe scan +15551234567 -q --no-table --formats json --log-level debug`

// PrintVersion escribe la información de versión.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "phoneprobe %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
