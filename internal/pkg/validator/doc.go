// Package validator runs struct-tag validation for usecase inputs and
// returns per-field messages keyed in snake_case.
package validator
