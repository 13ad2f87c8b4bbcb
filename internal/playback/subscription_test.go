package playback

import "testing"

func TestSubscription_DeliversEvents(t *testing.T) {
	s := newSubscription()

	s.sendState(StateChange{Previous: StateStopped, Current: StatePlaying})
	select {
	case e := <-s.StateChanged:
		if e.Current != StatePlaying {
			t.Errorf("StateChanged.Current = %v, want Playing", e.Current)
		}
	default:
		t.Error("no StateChange delivered")
	}

	s.sendProgress(ProgressChange{Elapsed: 42, Duration: 180})
	select {
	case e := <-s.ProgressChanged:
		if e.Elapsed != 42 {
			t.Errorf("ProgressChanged.Elapsed = %d, want 42", e.Elapsed)
		}
	default:
		t.Error("no ProgressChange delivered")
	}
}

func TestSubscription_DropsWhenFull(t *testing.T) {
	s := newSubscription()

	// Overfill the buffer; extra events drop instead of blocking.
	for i := range eventBufferSize + 5 {
		s.sendProgress(ProgressChange{Elapsed: i})
	}

	count := 0
	for {
		select {
		case <-s.ProgressChanged:
			count++
			continue
		default:
		}
		break
	}
	if count != eventBufferSize {
		t.Errorf("delivered %d events, want %d", count, eventBufferSize)
	}
}

func TestSubscription_CloseSignalsDone(t *testing.T) {
	s := newSubscription()

	select {
	case <-s.Done:
		t.Fatal("Done closed before close()")
	default:
	}

	s.close()

	select {
	case <-s.Done:
	default:
		t.Error("Done not closed after close()")
	}
}
