package rid

import (
	"testing"

	"github.com/segmentio/ksuid"
)

func TestRID_EncodeDecodeRoundTrip(t *testing.T) {
	r := RID{PageID: 123456, Slot: 42}
	got := DecodeRID(r.Encode())
	if got != r {
		t.Errorf("DecodeRID(Encode(%+v)) = %+v, want %+v", r, got, r)
	}
}

func TestRID_EncodeWidth(t *testing.T) {
	r := RID{PageID: 1, Slot: 1}
	if got := len(r.Encode()); got != Size {
		t.Errorf("len(Encode()) = %d, want %d", got, Size)
	}
}

func TestKSUID_EncodeDecodeRoundTrip(t *testing.T) {
	id := ksuid.New()
	got, err := DecodeKSUID(EncodeKSUID(id))
	if err != nil {
		t.Fatalf("DecodeKSUID() error = %v", err)
	}
	if got != id {
		t.Errorf("DecodeKSUID(EncodeKSUID(%v)) = %v, want %v", id, got, id)
	}
}
