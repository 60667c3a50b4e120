package clipboard

import (
	"context"
	"fmt"
	"io"

	"github.com/fscs/prototool/pkg/core"
)

// ReadyFD is the descriptor the detached process reports on: ReadyOK once it owns the
// clipboard, otherwise the error text.
const ReadyFD = 3

// ReadyOK is written to the ready pipe when the clipboard is owned.
const ReadyOK = "ok"

// Serve reads the text to own from r, puts it on the clipboard, reports on ready, and blocks
// until another application overwrites the clipboard or ctx is done. It is the body of the
// detached background process. ready may be nil.
func Serve(ctx context.Context, r io.Reader, ready io.Writer) error {
	return serve(ctx, r, ready, systemBackend{})
}

func serve(ctx context.Context, r io.Reader, ready io.Writer, b backend) error {
	report := func(msg string) {
		if ready != nil {
			io.WriteString(ready, msg)
			if c, ok := ready.(io.Closer); ok {
				c.Close()
			}
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		err = fmt.Errorf("%w: failed to read text: %w", core.ErrClipboard, err)
		report(err.Error())
		return err
	}

	if err := b.Init(); err != nil {
		err = fmt.Errorf("%w: %w", core.ErrClipboard, err)
		report(err.Error())
		return err
	}

	changed := b.Write(data)
	report(ReadyOK)

	select {
	case <-changed:
	case <-ctx.Done():
	}
	return nil
}
