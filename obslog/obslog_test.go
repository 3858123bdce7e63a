package obslog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetOutput_RedirectsLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel)
	defer SetOutput(&buf, zerolog.Disabled)

	Logger.Info().Msg("hello")
	if buf.Len() == 0 {
		t.Errorf("SetOutput() did not redirect Logger output")
	}
}

func TestOpID_ReturnsDistinctIDs(t *testing.T) {
	a, b := OpID(), OpID()
	if a == b {
		t.Errorf("OpID() returned the same id twice: %q", a)
	}
	if len(a) == 0 {
		t.Errorf("OpID() returned an empty id")
	}
}
