package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestPublishFansOut(t *testing.T) {
	pub := NewInMemory(4)
	a, stopA := pub.SubscribeSession()
	b, stopB := pub.SubscribeSession()
	defer stopB()

	pub.PublishSession(context.Background(), SessionEvent{Kind: SessionStarted, SID: "s1"})
	for name, ch := range map[string]<-chan SessionEvent{"a": a, "b": b} {
		select {
		case evt := <-ch:
			if evt.SID != "s1" || evt.At.IsZero() {
				t.Errorf("%s got %+v", name, evt)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s got nothing", name)
		}
	}

	stopA()
	stopA()
	pub.PublishSession(context.Background(), SessionEvent{Kind: SessionEnded, SID: "s1"})
	select {
	case evt := <-a:
		t.Fatalf("detached subscriber got %+v", evt)
	default:
	}
	if evt := <-b; evt.Kind != SessionEnded {
		t.Fatalf("b got %+v", evt)
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	pub := NewInMemory(1)
	_, stop := pub.SubscribeSession()
	defer stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			pub.PublishSession(context.Background(), SessionEvent{Kind: SessionStarted})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatchLogsEvents(t *testing.T) {
	pub := NewInMemory(4)
	var buf syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Watch(ctx, pub, slog.New(slog.NewTextHandler(&buf, nil)))
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(buf.String(), "sid=abc") && time.Now().Before(deadline) {
		pub.PublishSession(context.Background(), SessionEvent{Kind: SessionEnded, SID: "abc", Reason: "logout"})
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	if out := buf.String(); !strings.Contains(out, "kind=session.ended") || !strings.Contains(out, "reason=logout") {
		t.Fatalf("log = %q", out)
	}
}
