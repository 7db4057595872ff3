// Package logger builds the *slog.Logger used across orderrelay.
//
// New assembles a text or JSON handler from functional options, attaches
// static attributes (service name, environment) and wraps the result with
// LogHandlerDecorator so values stored in a context.Context are injected into
// every record logged with that context.
//
// Attribute helpers in attr.go keep key names uniform between the router,
// the delivery engine and the transports:
//
//	log := logger.New(logger.WithEnvironment(cfg.AppEnv, "orderrelay"))
//	log.InfoContext(ctx, "event routed",
//	    logger.EventType("order.ready"),
//	    logger.OrderRef("ORD-1"),
//	)
//
// Error returns an empty attribute for a nil error, so callers can pass the
// result of an operation without checking it first.
package logger
