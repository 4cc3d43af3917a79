package infra

import (
	"errors"
	"log/slog"

	"club-roster/internal/pkg/errs"
)

type RepositoryErrorKind string

// Infrastructure error kinds
const (
	KindNotFound        RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure       RepositoryErrorKind = "DB_FAILURE"
	KindUpstreamFailure RepositoryErrorKind = "UPSTREAM_FAILURE"
	KindDecodeFailure   RepositoryErrorKind = "DECODE_FAILURE"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr logs and wraps err with kind. A nil logger uses slog.Default.
func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	if slogger == nil {
		slogger = slog.Default()
	}

	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}
	slogger.Error("Infrastructure error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost RepositoryError in err's chain.
func KindOf(err error) (RepositoryErrorKind, bool) {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
