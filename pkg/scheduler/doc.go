// Package scheduler provides the task queue the reconciler uses to defer
// work out of the current call stack.
//
// A Queue runs tasks in FIFO order on whichever goroutine calls Flush.
// Tasks may enqueue further tasks; Flush keeps going until the queue is
// empty. Enqueue is safe from any goroutine, which lets a server hand
// work to the goroutine that owns a component tree:
//
//	q := scheduler.NewQueue()
//	go func() {
//	    for range q.Ready() {
//	        q.Flush()
//	    }
//	}()
package scheduler
