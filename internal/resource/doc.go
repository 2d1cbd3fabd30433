// Package resource limits what a running search may consume.
//
// Worker scratch is reserved up front against an optional memory limit
// (golang.org/x/sync/semaphore). Reserve never blocks: a search that does
// not fit fails to start with ErrMemoryLimitExceeded.
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	res, err := rc.Reserve(size)
//	if err != nil {
//		return err
//	}
//	defer res.Release()
//
// Batch claims are paced by a token bucket (golang.org/x/time/rate) shared
// by all workers, so a long search can run in the background at a fixed
// batch rate. The bucket holds a single token.
package resource
