package logger

import (
	"fmt"
	"log"
	"os"
)

// New returns a stdlib logger with a component prefix, used where a
// dependency expects a Printf-style logger (the cron driver).
func New(component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(os.Stdout, prefix, log.LstdFlags)
}
