package exchange

import "time"

func timeFromMillis(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}

	return time.UnixMilli(millis).UTC()
}
