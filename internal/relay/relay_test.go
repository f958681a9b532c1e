package relay

import (
	"encoding/json"
	"testing"
)

func TestMemoryFanOut(t *testing.T) {
	m := NewMemory()
	var got [][]byte
	if err := m.Subscribe(ChannelGameEvents, func(p []byte) { got = append(got, p) }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := m.Subscribe(ChannelGameEvents, func(p []byte) { got = append(got, p) }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := m.Publish(ChannelGameEvents, []byte("hello")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected delivery to both subscribers, got %d", len(got))
	}
	for _, p := range got {
		if string(p) != "hello" {
			t.Fatalf("payload mangled: %q", p)
		}
	}
}

func TestMemoryTopicIsolation(t *testing.T) {
	m := NewMemory()
	hit := 0
	if err := m.Subscribe("other", func([]byte) { hit++ }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := m.Publish(ChannelGameEvents, []byte("x")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if hit != 0 {
		t.Fatalf("subscriber on another topic got %d deliveries", hit)
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	in := Envelope{
		Origin:  "instance-1",
		RoomID:  "AB12CD",
		Event:   "chat:message",
		Payload: json.RawMessage(`{"message":"hi"}`),
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Envelope
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Origin != in.Origin || out.RoomID != in.RoomID || out.Event != in.Event {
		t.Fatalf("envelope fields lost: %+v", out)
	}
	if string(out.Payload) != string(in.Payload) {
		t.Fatalf("payload lost: %s", out.Payload)
	}
}
