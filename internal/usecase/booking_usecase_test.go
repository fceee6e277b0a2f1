package usecase

import (
	"testing"

	"github.com/google/uuid"
)

func TestBookingLockKeyScopedToSlot(t *testing.T) {
	kineID := uuid.New()

	same := bookingLockKey(kineID, "2030-06-03", "09:00")
	if got := bookingLockKey(kineID, "2030-06-03", "09:00"); got != same {
		t.Errorf("same slot produced different keys: %q vs %q", got, same)
	}

	// Disjoint slots on the same day must not contend for one lock.
	if got := bookingLockKey(kineID, "2030-06-03", "10:30"); got == same {
		t.Errorf("different slots share key %q", got)
	}
	if got := bookingLockKey(kineID, "2030-06-04", "09:00"); got == same {
		t.Errorf("different dates share key %q", got)
	}
	if got := bookingLockKey(uuid.New(), "2030-06-03", "09:00"); got == same {
		t.Errorf("different clinicians share key %q", got)
	}
}
