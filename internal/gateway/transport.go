package gateway

import (
	"context"
	stderrors "errors"
	"net"
	"syscall"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// classifyTransportError maps a failure to complete a call onto the NET
// family. parent is the caller's context and reqCtx the one carrying the
// per-call time bound.
func classifyTransportError(parent, reqCtx context.Context, endpoint string, err error) error {
	// The caller gave up; that is not ours to classify.
	if parent.Err() != nil {
		return parent.Err()
	}

	if stderrors.Is(reqCtx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(endpoint, err)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTimeoutError(endpoint, err)
	}

	if isUnreachable(err) {
		return errors.NewNetworkUnavailableError(err)
	}

	return errors.NewNetworkError(err)
}

func isUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return true
	}

	if stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, syscall.EHOSTUNREACH) ||
		stderrors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var opErr *net.OpError
	return stderrors.As(err, &opErr) && opErr.Op == "dial"
}
