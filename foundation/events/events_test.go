package events_test

import (
	"testing"

	"github.com/ardanlabs/chainsync/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out events to registered receivers.")
	{
		evts := events.New()

		ch1 := evts.Acquire("one")
		ch2 := evts.Acquire("two")

		if evts.Acquire("one") != ch1 {
			t.Fatalf("\t%s\tShould get back the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould get back the same channel for the same id.", success)

		if sent := evts.Send("state: AppendBlock: blk[1]"); sent != 2 {
			t.Fatalf("\t%s\tShould deliver the event to both receivers: got %d", failed, sent)
		}

		for i, ch := range []<-chan string{ch1, ch2} {
			if msg := <-ch; msg != "state: AppendBlock: blk[1]" {
				t.Logf("\t\tgot: %s", msg)
				t.Fatalf("\t%s\tShould receive the event on channel %d.", failed, i)
			}
		}
		t.Logf("\t%s\tShould receive the event on every channel.", success)

		if err := evts.Release("one"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a channel : %s", failed, err)
		}
		if _, open := <-ch1; open {
			t.Fatalf("\t%s\tShould close a released channel.", failed)
		}
		t.Logf("\t%s\tShould close a released channel.", success)

		if err := evts.Release("one"); err == nil {
			t.Fatalf("\t%s\tShould not release a channel twice.", failed)
		}
		t.Logf("\t%s\tShould not release a channel twice.", success)

		evts.Shutdown()
		if _, open := <-ch2; open {
			t.Fatalf("\t%s\tShould close every channel on shutdown.", failed)
		}
		t.Logf("\t%s\tShould close every channel on shutdown.", success)

		if _, open := <-evts.Acquire("late"); open {
			t.Fatalf("\t%s\tShould hand a closed channel to a receiver arriving after shutdown.", failed)
		}
		t.Logf("\t%s\tShould hand a closed channel to a receiver arriving after shutdown.", success)
	}
}

func Test_SlowReceiver(t *testing.T) {
	t.Log("Given a receiver that stops draining its channel.")
	{
		evts := events.New()
		evts.Acquire("slow")

		var delivered int
		for i := 0; i < 150; i++ {
			delivered += evts.Send("event")
		}

		if delivered != 100 {
			t.Fatalf("\t%s\tShould only buffer up to the channel capacity: got %d", failed, delivered)
		}
		t.Logf("\t%s\tShould drop events instead of blocking.", success)
	}
}
