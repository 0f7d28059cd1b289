package chem

import (
	"fmt"
	"net/http"
	"time"

	"chem-calc-api/internal/handlers"
	"chem-calc-api/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the chemistry domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("chem")

// GetMolarMass handles GET /molar-mass/{formula}.
func GetMolarMass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	formulaText := chi.URLParam(r, "formula")

	ctx, span := tracer.Start(ctx, "chem.molar_mass",
		trace.WithAttributes(
			attribute.String("chem.formula", formulaText),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	start := time.Now()
	mass, err := MolarMass(formulaText)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "molar_mass", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", "molar_mass"))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	massGauge.Record(ctx, mass.Value.Float64(), attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", mass.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("chem.molar_mass", mass.Value.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("molar mass computed",
		zap.String("formula", formulaText),
		zap.String("molar_mass", mass.Value.String()),
		zap.Int("sig_digits", mass.Value.SigDigits()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, MolarMassResponse{
		Formula:   formulaText,
		MolarMass: mass.Value.String(),
		Units:     mass.Units,
		SigDigits: mass.Value.SigDigits(),
	})
}

// RunCommands handles POST /run-commands — executes a batch of commands,
// creating a child span for every entry. A failing command does not fail the
// batch: its result carries status ERR and the failure message.
func RunCommands(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "chem.run_commands",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req RunCommandsRequest
	if err := handlers.ReadJSON(r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "run_commands", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("chem.commands_count", len(req.Commands)))

	logger.Info("starting command batch",
		zap.Int("commands", len(req.Commands)),
		zap.String("request_id", requestID),
	)

	results := make([]CommandResult, 0, len(req.Commands))

	for i, cmd := range req.Commands {
		_, cmdSpan := tracer.Start(ctx, fmt.Sprintf("chem.command.%d.%s", i, cmd.Command),
			trace.WithAttributes(
				attribute.Int("chem.command.index", i),
				attribute.String("chem.command.name", cmd.Command),
				attribute.String("chem.command.formula", cmd.Parameters.Formula),
			),
		)

		cmdStart := time.Now()
		value, err := runCommand(cmd)
		cmdElapsed := float64(time.Since(cmdStart).Microseconds()) / 1000.0

		attrs := metric.WithAttributes(attribute.String("operation", cmd.Command))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, cmdElapsed, attrs)

		if err != nil {
			cmdSpan.RecordError(err)
			cmdSpan.SetStatus(codes.Error, err.Error())
			cmdSpan.End()

			errorCounter.Add(ctx, 1, attrs)

			logger.Warn("command failed",
				zap.String("number", cmd.Number),
				zap.String("command", cmd.Command),
				zap.Error(err),
				zap.String("request_id", requestID),
			)

			results = append(results, CommandResult{
				Number: cmd.Number,
				Status: "ERR",
				Result: err.Error(),
			})
			continue
		}

		cmdSpan.AddEvent("command.complete", trace.WithAttributes(
			attribute.String("result", value),
		))
		cmdSpan.SetStatus(codes.Ok, "")
		cmdSpan.End()

		logger.Info("command completed",
			zap.String("number", cmd.Number),
			zap.String("command", cmd.Command),
			zap.String("result", value),
			zap.Float64("duration_ms", cmdElapsed),
		)

		results = append(results, CommandResult{
			Number: cmd.Number,
			Status: "OK",
			Result: value,
		})
	}

	span.AddEvent("batch.complete", trace.WithAttributes(
		attribute.Int("total_commands", len(req.Commands)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("command batch completed",
		zap.Int("commands", len(req.Commands)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, RunCommandsResponse{Results: results})
}

// runCommand dispatches a single batch entry to its implementation.
func runCommand(cmd Command) (string, error) {
	switch cmd.Command {
	case "molar_mass":
		mass, err := MolarMass(cmd.Parameters.Formula)
		if err != nil {
			return "", err
		}
		return mass.String(), nil
	case "flatten":
		return FlattenFormula(cmd.Parameters.Formula)
	default:
		return "", fmt.Errorf("%s not implemented", cmd.Command)
	}
}
