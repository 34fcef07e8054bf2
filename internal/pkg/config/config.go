// Package config exposes typed, read-only access to the service settings.
package config

import (
	"io"
	"time"
)

// Config is the read side of the settings store. Missing keys yield the zero
// value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer number of minutes.
	GetMinute(key string) time.Duration

	// GetArray splits a comma separated value. Blank elements are dropped.
	GetArray(key string) []string
	// GetMap parses "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}
