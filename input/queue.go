package input

import "context"

// Queue buffers presses produced by a background reader until they are polled
type Queue struct {
	presses chan Press
	// err is set before presses is closed
	err error
}

func NewQueue(size int) *Queue {
	return &Queue{presses: make(chan Press, size)}
}

// Push queues a press, blocking while the queue is full
func (q *Queue) Push(p Press) {
	q.presses <- p
}

// Close marks the queue exhausted; Poll reports err once the buffered presses are drained.
// It must be called once, by the goroutine that pushes.
func (q *Queue) Close(err error) {
	q.err = err
	close(q.presses)
}

// Poll returns every press queued since the last call, waiting for the first one
func (q *Queue) Poll(ctx context.Context) ([]Press, error) {
	var batch []Press
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case p, ok := <-q.presses:
		if !ok {
			return nil, q.err
		}
		batch = append(batch, p)
	}

	for {
		select {
		case p, ok := <-q.presses:
			if !ok {
				// the error surfaces on the next Poll
				return batch, nil
			}
			batch = append(batch, p)
		default:
			return batch, nil
		}
	}
}
