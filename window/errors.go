package window

import (
	"fmt"
	"time"
)

var timeZero time.Time

func errCapacity(capacity int) error {
	return fmt.Errorf("window: capacity must be positive, got %d", capacity)
}
