package recording

import (
	"bufio"
	"os"
	"sync"

	"github.com/yosytuvy/agario/common/utils"
)

// GameRecorder appends every broadcast frame as one JSON line to a file;
// the resulting record can be replayed against a headless client.
type GameRecorder struct {
	handle *os.File
	writer *bufio.Writer
	lock   *sync.Mutex
}

func MakeGameRecorder(filename string) *GameRecorder {
	handle, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	utils.Check(err, "Could not open record file "+filename)

	return &GameRecorder{
		handle: handle,
		writer: bufio.NewWriter(handle),
		lock:   &sync.Mutex{},
	}
}

func (r *GameRecorder) Record(msg string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, err := r.writer.WriteString(msg + "\n"); err != nil {
		return err
	}

	return nil
}

func (r *GameRecorder) Close() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.writer.Flush()
	r.handle.Close()

	utils.Debug("GameRecorder", "wrote game record")
}
