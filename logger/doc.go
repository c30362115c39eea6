// Package logger provides zerolog-backed structured logging.
//
// It supports JSON and console output, level configuration, component
// scoped loggers, and context enrichment with trace, span and request ids.
//
// # Configuration
//
//	logging:
//	  service_name: "abiquo-client"
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("rest").WithContext(ctx)
//	log.Info("invocation complete", logger.RequestFields(op, method, uri))
package logger
