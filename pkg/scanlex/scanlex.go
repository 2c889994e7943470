// Package scanlex is the public facade over internal/scanengine, the way
// the teacher repo exposes its compiler internals through thin pkg/
// wrappers: callers outside this module see only the stable, documented
// surface, while internal/scanengine stays free to change shape.
package scanlex

import "github.com/cwbudde/go-scanlex/internal/scanengine"

// Result is the wire-value result of Engine.ContinueExecution.
type Result = scanengine.Result

const (
	ResultNone                         = scanengine.ResultNone
	ResultStopAndFinalOnTokenProcessed = scanengine.ResultStopAndFinalOnTokenProcessed
	ResultBeforeTokenProcessed         = scanengine.ResultBeforeTokenProcessed
	ResultOnThenBeforeTokenProcessed   = scanengine.ResultOnThenBeforeTokenProcessed
)

// Token is a resolved, emitted token.
type Token = scanengine.Token

// SingleElementSpec, MultiElementSpec, Vocabulary, Limit and Configuration
// describe a vocabulary, generic over the element type T.
type (
	SingleElementSpec[T comparable] = scanengine.SingleElementSpec[T]
	MultiElementSpec[T comparable]  = scanengine.MultiElementSpec[T]
	Vocabulary[T comparable]        = scanengine.Vocabulary[T]
	Limit[T comparable]             = scanengine.Limit[T]
	Configuration[T comparable]     = scanengine.Configuration[T]
)

// Engine is the recognition engine. Construct one with New and drive it
// with InitString/ContinueExecution.
type Engine[T comparable] = scanengine.Engine[T]

// New constructs an Engine over cfg.
func New[T comparable](cfg Configuration[T]) *Engine[T] {
	return scanengine.New(cfg)
}
