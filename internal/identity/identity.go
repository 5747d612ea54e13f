// Package identity resolves the caller of an HTTP request.
//
// Resolution runs an ordered list of strategies and stops at the first one
// that reaches a verdict. A strategy that does not recognise the request
// returns Unauthenticated so that the next one can try.
package identity

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-keeper/models"
)

// Outcome is the verdict of a strategy.
type Outcome int

const (
	// Unauthenticated means the strategy found no credential it handles.
	Unauthenticated Outcome = iota
	// Authenticated means the credential was verified.
	Authenticated
	// Failed means a credential was present but rejected. The chain stops.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return "unauthenticated"
	}
}

// ErrNoCredentials is the error of an Unauthenticated chain result.
var ErrNoCredentials = errors.New("no credentials")

// Result is what a strategy resolved.
type Result struct {
	Outcome  Outcome
	Identity models.Identity
	// Strategy is the name of the strategy that produced the verdict.
	Strategy string
	Err      error
}

// Strategy resolves one kind of credential.
type Strategy interface {
	Name() string
	Resolve(r *http.Request) Result
}

// Chain tries its strategies in order.
type Chain struct {
	strategies []Strategy
}

// NewChain returns a chain that tries strategies in the given order.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Resolve returns the first result that is not Unauthenticated. When no
// strategy recognises the request the result is Unauthenticated with
// [ErrNoCredentials].
func (c *Chain) Resolve(r *http.Request) Result {
	for _, s := range c.strategies {
		res := s.Resolve(r)
		if res.Outcome == Unauthenticated {
			continue
		}
		res.Strategy = s.Name()
		return res
	}

	return Result{Outcome: Unauthenticated, Err: ErrNoCredentials}
}
