package notifier

import "log"

// ConsoleNotifier logs the report instead of delivering it externally, used
// when no webhook URL is configured.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier { return &ConsoleNotifier{} }

func (c *ConsoleNotifier) Send(text string) error {
	log.Printf("[INFO] batch report:\n%s", text)
	return nil
}
