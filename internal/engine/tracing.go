package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// startSpan opens a span for one engine operation.
func (e *Engine) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "engine."+name, trace.WithAttributes(attrs...))
}

// endSpan records err (with its domain code) on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.code", string(apperrors.CodeOf(err))))
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func keyAttrs(k model.AnswerKey) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("session.id", k.SessionID),
		attribute.String("question.id", k.QuestionID),
	}
	if k.CompartmentID != "" {
		attrs = append(attrs, attribute.String("answer.compartment_id", k.CompartmentID))
	}
	if k.ActivityType != "" {
		attrs = append(attrs, attribute.String("answer.activity_type", k.ActivityType))
	}
	return attrs
}
