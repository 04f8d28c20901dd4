package utils

import (
	"log"
	"strings"
)

// logTag prefixes every line so jelantahgo output is easy to grep when
// several services share one log stream.
const logTag = "jelantahgo"

// LogEvent prints a standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s:%s] action=%s request_id=%s msg=%s", logTag, strings.ToUpper(module), action, req, message)
}
