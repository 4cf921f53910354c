// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provides Comparers related to time
package differs

import "time"

// RFC3339NanoTime matches the timestamps written by pkg/log.
func RFC3339NanoTime() CustomComparer {
	return Customf(func(o interface{}) bool {
		if s, ok := o.(string); ok {
			_, err := time.Parse(time.RFC3339Nano, s)
			return err == nil
		}
		return false
	})
}
