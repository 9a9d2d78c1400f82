package workers

import "github.com/MKhiriev/note-hub/internal/logger"

// CacheGC collects unused query cache entries.
type CacheGC struct {
	collector Collector
	logger    *logger.Logger
}

func NewCacheGC(collector Collector, log *logger.Logger) *CacheGC {
	return &CacheGC{collector: collector, logger: log.WithComponent("cache_gc")}
}

func (w *CacheGC) Run() {
	if n := w.collector.GC(); n > 0 {
		w.logger.Debug().Int("removed", n).Msg("cache entries collected")
	}
}
