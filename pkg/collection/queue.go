package collection

// FIFOQueue is a plain slice-backed first-in first-out queue.
// It is not safe for concurrent use; callers guard it.
type FIFOQueue[T any] []T

func NewFIFOQueue[T any]() *FIFOQueue[T] {
	return &FIFOQueue[T]{}
}

func (f *FIFOQueue[T]) Enqueue(item T) {
	*f = append(*f, item)
}

// return false on the second returned values if queue is empty
func (f *FIFOQueue[T]) Dequeue() (T, bool) {
	var zero T
	if len(*f) == 0 {
		return zero, false
	}
	first := (*f)[0]
	// release the reference held by the backing array
	(*f)[0] = zero
	*f = (*f)[1:]
	return first, true
}

// Peek returns the head without removing it.
func (f *FIFOQueue[T]) Peek() (T, bool) {
	var zero T
	if len(*f) == 0 {
		return zero, false
	}
	return (*f)[0], true
}

func (f *FIFOQueue[T]) Size() int {
	return len(*f)
}
