package systems

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spaghettifunk/tesseract/engine/core"
)

func TestJobSystemRunsEveryJob(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	if err != nil {
		t.Fatalf("NewJobSystem: %v", err)
	}
	var started, completed, failed atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 100; i++ {
		fail := i%10 == 0
		err := js.Submit(JobTask{
			OnStart: func() error {
				started.Add(1)
				if fail {
					return boom
				}
				return nil
			},
			OnComplete: func() { completed.Add(1) },
			OnFailure: func(err error) {
				if errors.Is(err, boom) {
					failed.Add(1)
				}
			},
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if err := js.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if started.Load() != 100 || completed.Load() != 90 || failed.Load() != 10 {
		t.Fatalf("started=%d completed=%d failed=%d", started.Load(), completed.Load(), failed.Load())
	}
}

func TestJobSystemRejectsBadConfig(t *testing.T) {
	if _, err := NewJobSystem(0, 1); !errors.Is(err, ErrNoWorkers) {
		t.Fatalf("0 workers: %v", err)
	}
	if _, err := NewJobSystem(1, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Fatalf("negative channel: %v", err)
	}
}

func TestJobSystemSubmitAfterShutdown(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := js.Submit(JobTask{OnStart: func() error { return nil }}); !errors.Is(err, ErrJobSystemShutdown) {
		t.Fatalf("Submit after Shutdown = %v", err)
	}
	if err := js.Shutdown(); !errors.Is(err, ErrJobSystemShutdown) {
		t.Fatalf("second Shutdown = %v", err)
	}
}

func TestJobSystemLogsFailureVerbatim(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	defer core.SetLogOutput(os.Stderr)

	js, err := NewJobSystem(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := js.Submit(JobTask{OnStart: func() error { return errors.New("frame 100% %d failed") }}); err != nil {
		t.Fatal(err)
	}
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "frame 100% %d failed") {
		t.Fatalf("log output mangled the error: %q", buf.String())
	}
}
