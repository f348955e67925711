package editsignal

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()
	var got1, got2 []string
	b.Subscribe(func(id string) { got1 = append(got1, id) })
	b.Subscribe(func(id string) { got2 = append(got2, id) })

	b.Publish("n-1")
	b.Publish("")

	for i, got := range [][]string{got1, got2} {
		if len(got) != 2 || got[0] != "n-1" || got[1] != "" {
			t.Fatalf("subscriber %d saw %v, want [n-1 \"\"]", i+1, got)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	var got []string
	cancel := b.Subscribe(func(id string) { got = append(got, id) })

	b.Publish("n-1")
	cancel()
	b.Publish("n-2")

	if len(got) != 1 || got[0] != "n-1" {
		t.Fatalf("saw %v, want only the pre-cancel signal", got)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	New().Publish("n-1")
}
