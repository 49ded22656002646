package playground

import (
	"bytes"
	"context"
	"io"
	"os"
	gosync "sync"
	"testing"
	"time"

	"github.com/neekrasov/esync/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.MockLogger()
	os.Exit(m.Run())
}

type safeBuffer struct {
	mu  gosync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeLineReader struct {
	safeBuffer
	lines  []string
	closed bool
}

func (f *fakeLineReader) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}

	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeLineReader) Close() error {
	f.closed = true
	return nil
}

func TestPlayground_TryAndRelease(t *testing.T) {
	t.Parallel()

	pg := New(1, io.Discard)
	ctx := context.Background()

	response, done := pg.Handle(ctx, "try")
	assert.False(t, done)
	assert.Equal(t, "[ok] permit acquired", response)

	response, _ = pg.Handle(ctx, "try")
	assert.Equal(t, "[error] no permit available", response)
	assert.Equal(t, "permits=0 waiters=0 holders=1", pg.Status())

	response, _ = pg.Handle(ctx, "release 2")
	assert.Equal(t, "[ok] released 2", response)
	assert.Equal(t, "permits=2 waiters=0 holders=0", pg.Status())
}

func TestPlayground_WaitIsWokenByRelease(t *testing.T) {
	t.Parallel()

	out := &safeBuffer{}
	pg := New(0, out)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	response, _ := pg.Handle(ctx, "wait")
	assert.Equal(t, "[ok] waiter #1 queued", response)

	require.Eventually(t, func() bool {
		return pg.sem.Waiters() == 1
	}, time.Second, time.Millisecond)

	pg.Handle(ctx, "release")
	require.Eventually(t, func() bool {
		return out.String() == "[ok] waiter #1 acquired a permit\n"
	}, time.Second, time.Millisecond)
	assert.Equal(t, "permits=0 waiters=0 holders=1", pg.Status())
}

func TestPlayground_WaitTimeout(t *testing.T) {
	t.Parallel()

	out := &safeBuffer{}
	pg := New(0, out)

	response, _ := pg.Handle(context.Background(), "wait timeout 10ms")
	assert.Equal(t, "[ok] waiter #1 queued for 10ms", response)

	pg.wg.Wait()
	assert.Contains(t, out.String(), "waiter #1 gave up")
	assert.Equal(t, "permits=0 waiters=0 holders=0", pg.Status())
}

func TestPlayground_InvalidCommand(t *testing.T) {
	t.Parallel()

	pg := New(0, io.Discard)
	response, done := pg.Handle(context.Background(), "grab")
	assert.False(t, done)
	assert.Contains(t, response, "[error] invalid command")
}

func TestPlayground_Run(t *testing.T) {
	t.Parallel()

	rl := &fakeLineReader{lines: []string{"status", "", "try", "wait", "exit", "status"}}
	pg := New(1, io.Discard)

	require.NoError(t, pg.Run(context.Background(), rl))

	assert.True(t, rl.closed)
	assert.Equal(t,
		"[ok] permits=1 waiters=0 holders=0\n"+
			"[ok] permit acquired\n"+
			"[ok] waiter #1 queued\n"+
			"[ok] bye\n",
		rl.String())
	assert.Zero(t, pg.sem.Waiters())
}

func TestPlayground_RunUntilEOF(t *testing.T) {
	t.Parallel()

	rl := &fakeLineReader{lines: []string{"help"}}
	pg := New(1, io.Discard)

	require.NoError(t, pg.Run(context.Background(), rl))
	assert.Contains(t, rl.String(), "Available commands")
}
