package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName       = "threadwell-api/api"
	boardSpanName    = "board.fetch"
	boardEventName   = "board.fetch"
	boardEventDomain = "board"
	boardRoute       = "/api/board"
)

// boardRequestMetrics collects timings for one board fetch and emits them
// as a structured observability event plus an OpenTelemetry span.
type boardRequestMetrics struct {
	logger         *log.Logger
	span           trace.Span
	start          time.Time
	loadDuration   time.Duration
	encodeDuration time.Duration
	listsReturned  int
	cardsReturned  int
	errorStage     string
}

func newBoardRequestMetrics(ctx context.Context, logger *log.Logger) (*boardRequestMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, boardSpanName)
	m := &boardRequestMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}
	return m, spanCtx
}

func (m *boardRequestMetrics) ObserveLoad(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.loadDuration = duration
}

func (m *boardRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *boardRequestMetrics) SetListsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.listsReturned = count
}

func (m *boardRequestMetrics) SetCardsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.cardsReturned = count
}

func (m *boardRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finalizes the span and writes the observability event. It must be
// called exactly once, after the response is committed.
func (m *boardRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	totalMS := durationToMillis(time.Since(m.start))
	severityText, severityNumber := severityForStatus(status, err)

	attrs := map[string]any{
		"http.route":                      boardRoute,
		"http.status_code":                status,
		"threadwell.board.total_ms":       totalMS,
		"threadwell.board.lists_returned": m.listsReturned,
		"threadwell.board.cards_returned": m.cardsReturned,
	}
	if m.loadDuration > 0 {
		attrs["threadwell.board.load_ms"] = durationToMillis(m.loadDuration)
	}
	if m.encodeDuration > 0 {
		attrs["threadwell.board.encode_ms"] = durationToMillis(m.encodeDuration)
	}
	if m.errorStage != "" {
		attrs["threadwell.board.error_stage"] = m.errorStage
	}
	if err != nil {
		attrs["error.message"] = err.Error()
	}

	if m.span != nil {
		spanAttrs := []attribute.KeyValue{
			attribute.String("http.route", boardRoute),
			attribute.Int("http.status_code", status),
			attribute.Float64("threadwell.board.total_ms", totalMS),
			attribute.Int("threadwell.board.lists_returned", m.listsReturned),
			attribute.Int("threadwell.board.cards_returned", m.cardsReturned),
		}
		if m.errorStage != "" {
			spanAttrs = append(spanAttrs, attribute.String("threadwell.board.error_stage", m.errorStage))
		}
		m.span.SetAttributes(spanAttrs...)

		eventAttrs := append([]attribute.KeyValue{
			attribute.String("event.name", boardEventName),
			attribute.String("event.domain", boardEventDomain),
			attribute.String("severity_text", severityText),
			attribute.Int("severity_number", severityNumber),
		}, spanAttrs...)
		if err != nil {
			eventAttrs = append(eventAttrs, attribute.String("error.message", err.Error()))
		}
		m.span.AddEvent("observability.event", trace.WithAttributes(eventAttrs...))

		if err != nil {
			m.span.SetStatus(codes.Error, err.Error())
		} else if status >= http.StatusInternalServerError {
			m.span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"event.name":      boardEventName,
		"event.domain":    boardEventDomain,
		"attributes":      attrs,
		"severity_text":   severityText,
		"severity_number": severityNumber,
	}
	if m.span != nil && m.span.SpanContext().HasTraceID() {
		fields["trace_id"] = m.span.SpanContext().TraceID().String()
	}
	entry := m.logger.WithFields(fields)
	switch severityText {
	case "ERROR":
		entry.Error("observability.event")
	case "WARN":
		entry.Warn("observability.event")
	default:
		entry.Info("observability.event")
	}
}

func severityForStatus(status int, err error) (string, int) {
	switch {
	case err != nil || status >= http.StatusInternalServerError:
		return "ERROR", 17
	case status >= http.StatusBadRequest:
		return "WARN", 13
	default:
		return "INFO", 9
	}
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
