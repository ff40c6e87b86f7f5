// Copyright © 2025 The cssls authors

package lsp

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// runSafe executes fn inside the failure boundary that wraps every
// query handler. Panics and errors are logged with the request method
// for context and the fallback is returned in their place; nothing
// propagates to the protocol layer. A cancelled ctx short-circuits to
// the fallback without logging, checked both before fn runs and after
// it returns. Each guarded request is recorded as a span.
func runSafe[T any](ctx context.Context, tracer trace.Tracer, log commonlog.Logger, what string, fallback T, fn func() (T, error)) (out T, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return fallback, nil
	}
	ctx, span := tracer.Start(ctx, what)
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("%s: panic: %v", what, r)
			span.SetStatus(codes.Error, fmt.Sprint(r))
			out = fallback
			err = nil
		}
	}()
	res, ferr := fn()
	if ferr != nil {
		log.Errorf("%s: %s", what, ferr)
		span.RecordError(ferr)
		span.SetStatus(codes.Error, ferr.Error())
		return fallback, nil
	}
	if ctx.Err() != nil {
		return fallback, nil
	}
	return res, nil
}
