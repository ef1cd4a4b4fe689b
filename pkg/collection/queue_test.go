package collection_test

import (
	"testing"

	"github.com/rohmanhakim/flowmap/pkg/collection"
)

type queueItem struct {
	url   string
	depth int
}

func TestEnqueueDequeue(t *testing.T) {
	queue := collection.NewFIFOQueue[queueItem]()

	first := queueItem{url: "https://example.com", depth: 0}
	second := queueItem{url: "https://example.com/a", depth: 1}
	third := queueItem{url: "https://example.com/b", depth: 1}

	if size := queue.Size(); size != 0 {
		t.Errorf("should have zero size, got: %d", size)
	}

	queue.Enqueue(first)
	queue.Enqueue(second)
	queue.Enqueue(third)

	if size := queue.Size(); size != 3 {
		t.Errorf("should have size 3, got: %d", size)
	}

	for i, expected := range []queueItem{first, second, third} {
		output, ok := queue.Dequeue()
		if !ok {
			t.Fatalf("dequeue %d: should return ok", i)
		}
		if output != expected {
			t.Errorf("dequeue %d: should dequeue %v, got: %v", i, expected, output)
		}
	}

	if size := queue.Size(); size != 0 {
		t.Errorf("should have zero size, got: %d", size)
	}

	if _, ok := queue.Dequeue(); ok {
		t.Error("should not return ok on empty queue")
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	queue := collection.NewFIFOQueue[int]()
	if _, ok := queue.Peek(); ok {
		t.Error("peek on empty queue should not return ok")
	}

	queue.Enqueue(7)
	queue.Enqueue(8)

	head, ok := queue.Peek()
	if !ok || head != 7 {
		t.Errorf("expected head 7, got %d (ok=%v)", head, ok)
	}
	if queue.Size() != 2 {
		t.Errorf("peek should not change size, got %d", queue.Size())
	}
}
