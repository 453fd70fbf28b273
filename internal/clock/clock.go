// Package clock exposes the monotonic nanosecond clock microserial's
// readiness worker uses to timestamp its trace log of received
// chunks. It wraps agilira/go-timecache's cached reader instead of
// calling time.Now on every sample, since the worker samples it on
// every chunk it reads from the device.
package clock

import (
	"time"

	timecache "github.com/agilira/go-timecache"
)

var (
	cache = timecache.NewWithResolution(time.Microsecond)
	epoch = cache.CachedTime()
)

// NowNS returns nanoseconds since an unspecified, process-local epoch.
// The value is monotonic and unaffected by wall-clock changes, backed
// by time.Time's own monotonic reading.
func NowNS() uint64 {
	return uint64(cache.CachedTime().Sub(epoch).Nanoseconds())
}
