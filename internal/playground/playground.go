package playground

import (
	"context"
	"errors"
	"fmt"
	"io"
	gosync "sync"

	"github.com/chzyer/readline"
	"github.com/neekrasov/esync/pkg/logger"
	"github.com/neekrasov/esync/pkg/sync"
	"go.uber.org/zap"
)

var ErrWriteLineFailed = errors.New("write line failed")

// LineReader - interactive line source, satisfied by *readline.Instance.
type LineReader interface {
	io.Writer
	Readline() (string, error)
	Close() error
}

// Playground - drives a single semaphore from typed commands.
type Playground struct {
	sem    *sync.Semaphore
	parser *Parser
	ids    *sync.IDGenerator

	out     io.Writer
	outMu   gosync.Mutex
	holders int
	wg      gosync.WaitGroup
}

// New - creates a playground over a semaphore with the given permits.
// Notifications from background waiters are written to out.
func New(permits int, out io.Writer) *Playground {
	return &Playground{
		sem:    sync.NewSemaphore(permits),
		parser: NewParser(),
		ids:    sync.NewIDGenerator(0),
		out:    out,
	}
}

// Handle - executes one command and returns the response line.
// The second result reports whether the session should end.
func (p *Playground) Handle(ctx context.Context, query string) (string, bool) {
	cmd, err := p.parser.Parse(query)
	if err != nil {
		return WrapError(err), false
	}

	switch cmd.Type {
	case CommandWAIT:
		return WrapOK(fmt.Sprintf("waiter #%d queued", p.spawn(ctx, cmd))), false
	case CommandWAITTIMEOUT:
		return WrapOK(fmt.Sprintf("waiter #%d queued for %s", p.spawn(ctx, cmd), cmd.Timeout)), false
	case CommandTRY:
		if !p.sem.TryWait() {
			return WrapError(errors.New("no permit available")), false
		}
		p.changeHolders(1)
		return WrapOK("permit acquired"), false
	case CommandRELEASE:
		for i := 0; i < cmd.Count; i++ {
			p.changeHolders(-1)
			p.sem.Release()
		}
		return WrapOK(fmt.Sprintf("released %d", cmd.Count)), false
	case CommandSTATUS:
		return WrapOK(p.Status()), false
	case CommandHELP:
		return HelpText, false
	case CommandEXIT:
		return WrapOK("bye"), true
	}

	return WrapError(ErrInvalidCommand), false
}

// Status - snapshot of the semaphore as seen by the playground.
func (p *Playground) Status() string {
	var holders int
	sync.WithLock(&p.outMu, func() {
		holders = p.holders
	})

	return fmt.Sprintf("permits=%d waiters=%d holders=%d",
		p.sem.AvailablePermits(), p.sem.Waiters(), holders)
}

// Run - reads commands from rl until exit, interrupt or EOF. Pending waiters are
// cancelled before Run returns.
func (p *Playground) Run(ctx context.Context, rl LineReader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		p.wg.Wait()
		rl.Close()
	}()

	for {
		query, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("failed to read stdin: %w", err)
		}

		if query == "" {
			continue
		}

		response, done := p.Handle(ctx, query)
		if err := p.writeLine(rl, response); err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

func (p *Playground) spawn(ctx context.Context, cmd Command) int64 {
	id := p.ids.Generate()
	log := logger.With(zap.Int64("waiter", id))

	waitCtx, cancel := ctx, context.CancelFunc(func() {})
	if cmd.Timeout > 0 {
		waitCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()

		if err := p.sem.WaitContext(waitCtx); err != nil {
			log.Debug("waiter gave up", zap.Error(err))
			if ctx.Err() == nil {
				p.notify(fmt.Sprintf("waiter #%d gave up: %v", id, err))
			}
			return
		}

		p.changeHolders(1)
		log.Debug("waiter acquired a permit")
		p.notify(fmt.Sprintf("waiter #%d acquired a permit", id))
	}()

	return id
}

func (p *Playground) changeHolders(delta int) {
	sync.WithLock(&p.outMu, func() {
		p.holders = max(p.holders+delta, 0)
	})
}

func (p *Playground) notify(msg string) {
	if err := p.writeLine(p.out, WrapOK(msg)); err != nil {
		logger.Warn("failed to write notification", zap.Error(err))
	}
}

func (p *Playground) writeLine(w io.Writer, line string) error {
	var err error
	sync.WithLock(&p.outMu, func() {
		_, err = io.WriteString(w, line+"\n")
	})

	if err != nil {
		return errors.Join(ErrWriteLineFailed, err)
	}

	return nil
}
