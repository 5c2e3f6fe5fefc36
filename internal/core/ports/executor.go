package ports

import (
	"context"
	"io"

	"go.trai.ch/pysync/internal/core/domain"
)

// CommandRunner runs external processes such as the environment's interpreter.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run executes cmd, streaming its output to stdout and stderr.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
	// Output executes cmd and returns its standard output.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)
}
