// Package messaging publishes messages to a broker without tying callers to
// one. Kafka, NATS, NSQ and Google Pub/Sub are supported, plus a noop driver
// for deployments that run without a broker.
package messaging
