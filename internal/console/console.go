// Package console holds the terminal collaborators: the system clipboard and
// the yes/no confirmation prompt.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// CopiedAck acknowledges a clipboard write.
const CopiedAck = "報號文字已複製。"

type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard not supported on this system")
	}
	return clipboardWriteAll(text)
}

type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Prompt asks on Out and reads the answer from In.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "是", "確定":
		return true, nil
	}
	return false, nil
}

// Assume answers every question without asking.
type Assume bool

func (a Assume) Confirm(string) (bool, error) { return bool(a), nil }
