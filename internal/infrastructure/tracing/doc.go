/*
Package tracing records request spans and logs them asynchronously.

A span is opened for every HTTP request by HTTPMiddleware and for every tool
invocation by the service registry. Trace context travels in the X-Trace-ID
and X-Span-ID headers; an inbound pair of valid IDs is continued, otherwise
a new trace starts.

# Usage

	tracer := tracing.New("termhost", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "terminal.spawn_shell")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

Finished spans are buffered (DefaultBuffer) and written by a single collector
goroutine; when the buffer is full a span is dropped with a warning.
*/
package tracing
