package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// codeOf maps ledger errors to Connect codes.
func codeOf(err error) connect.Code {
	switch {
	case models.IsValidation(err):
		return connect.CodeInvalidArgument
	case models.IsDomain(err):
		return connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	default:
		return connect.CodeInternal
	}
}

// fail logs a failed request and converts err into a Connect error.
// Caller mistakes log at Warn, everything else at Error.
func fail(logger *slog.Logger, msg string, err error, attrs ...any) error {
	code := codeOf(err)
	attrs = append(attrs, "error", err)
	if code == connect.CodeInternal {
		logger.Error(msg, attrs...)
	} else {
		logger.Warn(msg, attrs...)
	}
	return connect.NewError(code, err)
}
