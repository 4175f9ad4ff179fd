package outcomelog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

// FileRecorder дописывает номер телефона в один из двух текстовых логов.
// Файлы только пополняются, программа их не читает.
type FileRecorder struct {
	successPath string // new_number.txt
	failurePath string // old_number.txt

	mu sync.Mutex
}

func NewFileRecorder(successPath, failurePath string) *FileRecorder {
	return &FileRecorder{successPath: successPath, failurePath: failurePath}
}

func (r *FileRecorder) Record(ctx context.Context, phone string, outcome domain.TerminationOutcome) error {
	path := r.failurePath
	if outcome == domain.TerminationSucceeded {
		path = r.successPath
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, "%s\n", phone); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	return f.Close()
}
